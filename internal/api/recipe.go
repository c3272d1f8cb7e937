package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkful/backend/internal/form"
	"github.com/forkful/backend/internal/middleware"
	"github.com/forkful/backend/internal/models"
	"github.com/forkful/backend/internal/service"
)

// RecipeHandler exposes the feed, detail and dashboard views and the
// ownership-guarded mutation actions. Mutations accept the form wire
// contract (JSON-encoded ingredients/steps fields) and answer with a
// redirect on success, mirroring how the frontend drives them.
type RecipeHandler struct {
	recipeService service.IRecipeService
	authService   service.IAuthService
	cache         *service.ViewCache
}

func NewRecipeHandler(recipeService service.IRecipeService, authService service.IAuthService, cache *service.ViewCache) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		authService:   authService,
		cache:         cache,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.Feed)
		recipes.GET("/:id", middleware.OptionalAuth(h.authService), h.Detail)
		recipes.POST("", middleware.RequireAuth(h.authService), h.Create)
		recipes.PUT("/:id", middleware.RequireAuth(h.authService), h.Update)
		recipes.POST("/:id", middleware.RequireAuth(h.authService), h.Update)
		recipes.DELETE("/:id", middleware.RequireAuth(h.authService), h.Delete)
	}
	router.GET("/dashboard", middleware.RequireAuth(h.authService), h.Dashboard)
}

// FeedResponse is the public feed page payload.
type FeedResponse struct {
	Recipes    []*models.Recipe `json:"recipes"`
	Categories []string         `json:"categories"`
}

func (h *RecipeHandler) Feed(c *gin.Context) {
	search := c.Query("search")
	category := c.Query("category")

	// Only the unfiltered feed is cached; filtered variants go straight
	// to the store.
	cacheable := search == "" && category == ""
	if cacheable {
		if data, ok := h.cache.Get(c.Request.Context(), service.FeedCacheKey()); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", data)
			return
		}
	}

	recipes, err := h.recipeService.Feed(c.Request.Context(), search, category)
	if err != nil {
		// Store errors render as an empty feed, not a visitor-facing failure.
		recipes = nil
	}
	categories, err := h.recipeService.Categories(c.Request.Context())
	if err != nil {
		categories = nil
	}

	resp := FeedResponse{Recipes: recipes, Categories: categories}
	if cacheable {
		if data, err := json.Marshal(resp); err == nil {
			h.cache.Set(c.Request.Context(), service.FeedCacheKey(), data)
		}
	}
	c.JSON(http.StatusOK, resp)
}

// DetailResponse is the recipe detail page payload.
type DetailResponse struct {
	Recipe  *models.Recipe  `json:"recipe"`
	Author  *models.Profile `json:"author,omitempty"`
	CanEdit bool            `json:"can_edit"`
}

func (h *RecipeHandler) Detail(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	var viewerID *uuid.UUID
	if id, ok := middleware.UserID(c); ok {
		viewerID = &id
	}

	// Cached only for anonymous viewers; owners see can_edit and private
	// records, which must not leak across identities.
	if viewerID == nil {
		if data, ok := h.cache.Get(c.Request.Context(), service.DetailCacheKey(recipeID)); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", data)
			return
		}
	}

	recipe, err := h.recipeService.Detail(c.Request.Context(), viewerID, recipeID)
	if err != nil {
		// A private record is indistinguishable from a missing one.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := DetailResponse{Recipe: recipe}
	if author, err := h.recipeService.Author(c.Request.Context(), recipe.UserID); err == nil {
		resp.Author = author
	}
	if viewerID != nil {
		canEdit, err := h.recipeService.CanEdit(c.Request.Context(), *viewerID, recipeID)
		if err == nil {
			resp.CanEdit = canEdit
		}
	}

	if viewerID == nil {
		if data, err := json.Marshal(resp); err == nil {
			h.cache.Set(c.Request.Context(), service.DetailCacheKey(recipeID), data)
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecipeHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	values, err := formValues(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := form.ParseRecipeForm(values)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), userID, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Redirect(http.StatusSeeOther, "/recipes/"+recipe.ID.String())
}

func (h *RecipeHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	values, err := formValues(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := form.ParseRecipeForm(values)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.recipeService.Update(c.Request.Context(), userID, recipeID, input); err != nil {
		if errors.Is(err, service.ErrNotOwned) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Redirect(http.StatusSeeOther, "/recipes/"+recipeID.String())
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), userID, recipeID); err != nil {
		if errors.Is(err, service.ErrNotOwned) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// DashboardResponse lists the caller's own recipes, any visibility.
type DashboardResponse struct {
	Recipes []*models.Recipe `json:"recipes"`
}

func (h *RecipeHandler) Dashboard(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if data, ok := h.cache.Get(c.Request.Context(), service.DashboardCacheKey(userID)); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
		return
	}

	recipes, err := h.recipeService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		recipes = nil
	}

	resp := DashboardResponse{Recipes: recipes}
	if data, err := json.Marshal(resp); err == nil {
		h.cache.Set(c.Request.Context(), service.DashboardCacheKey(userID), data)
	}
	c.JSON(http.StatusOK, resp)
}

// formValues extracts the submitted field set from either a urlencoded or
// multipart body.
func formValues(c *gin.Context) (url.Values, error) {
	if err := c.Request.ParseMultipartForm(1 << 20); err != nil && err != http.ErrNotMultipart {
		return nil, err
	}
	return c.Request.PostForm, nil
}
