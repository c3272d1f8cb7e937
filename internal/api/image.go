package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkful/backend/internal/middleware"
	"github.com/forkful/backend/internal/service"
)

// ImageHandler accepts multipart image uploads and hands back the stored
// object's public address.
type ImageHandler struct {
	imageService service.IImageService
	authService  service.IAuthService
	rateLimiter  *middleware.RateLimiter
}

func NewImageHandler(imageService service.IImageService, authService service.IAuthService, rateLimiter *middleware.RateLimiter) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
		authService:  authService,
		rateLimiter:  rateLimiter,
	}
}

func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	images := router.Group("/images")
	images.Use(middleware.RequireAuth(h.authService))
	if h.rateLimiter != nil {
		images.Use(h.rateLimiter.Middleware())
	}
	{
		images.POST("/recipe", h.uploadHandler(service.RecipeImage))
		images.POST("/avatar", h.uploadHandler(service.AvatarImage))
	}
}

// UploadResponse carries the public address of a stored image.
type UploadResponse struct {
	URL string `json:"url"`
}

func (h *ImageHandler) uploadHandler(kind service.ImageKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			return
		}

		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrNoFile.Error()})
			return
		}

		url, err := h.imageService.Upload(c.Request.Context(), userID, file, kind)
		if err != nil {
			if errors.Is(err, service.ErrNoFile) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, UploadResponse{URL: url})
	}
}
