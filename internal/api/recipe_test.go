package api

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/backend/internal/form"
	"github.com/forkful/backend/internal/models"
)

func recipeValues(title string) url.Values {
	values := url.Values{}
	values.Set(form.FieldTitle, title)
	values.Set(form.FieldDescription, "made in a test kitchen")
	values.Set(form.FieldIngredients, `["Eggs","Butter"]`)
	values.Set(form.FieldSteps, `["Whisk","Cook"]`)
	values.Set(form.FieldPrepTimeMins, "5")
	values.Set(form.FieldCookTimeMins, "10")
	values.Set(form.FieldCategory, "Breakfast")
	return values
}

// createRecipe posts the form and returns the new recipe's id from the
// redirect target.
func createRecipe(t *testing.T, env *testEnv, token, title string) uuid.UUID {
	t.Helper()
	w := env.postForm(t, "/api/v1/recipes", recipeValues(title), token)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())

	location := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/recipes/"), "location %q", location)
	id, err := uuid.Parse(strings.TrimPrefix(location, "/recipes/"))
	require.NoError(t, err)
	return id
}

func TestCreateRecipeRedirectsToDetail(t *testing.T) {
	env := setupAPI(t)
	token := env.registerUser(t, "cook@example.com", "The Cook")

	id := createRecipe(t, env, token, "Scrambled Eggs")

	var stored models.Recipe
	require.NoError(t, env.db.First(&stored, "id = ?", id).Error)
	assert.Equal(t, "Scrambled Eggs", stored.Title)
	assert.True(t, stored.IsPublic)
	assert.Equal(t, models.StringList{"Eggs", "Butter"}, stored.Ingredients)
}

func TestCreateRecipeRequiresAuth(t *testing.T) {
	env := setupAPI(t)

	w := env.postForm(t, "/api/v1/recipes", recipeValues("Anonymous Dish"), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Recipe{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCreateRecipeRejectsBlankLists(t *testing.T) {
	env := setupAPI(t)
	token := env.registerUser(t, "cook@example.com", "The Cook")

	values := recipeValues("Empty Dish")
	values.Set(form.FieldIngredients, `["",""]`)
	w := env.postForm(t, "/api/v1/recipes", values, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Rejected before anything is written.
	var count int64
	require.NoError(t, env.db.Model(&models.Recipe{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestFeedEndpoint(t *testing.T) {
	env := setupAPI(t)
	token := env.registerUser(t, "cook@example.com", "The Cook")
	createRecipe(t, env, token, "Scrambled Eggs")
	createRecipe(t, env, token, "Spicy Ramen")

	w := env.get(t, "/api/v1/recipes", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp FeedResponse
	decodeJSON(t, w, &resp)
	assert.Len(t, resp.Recipes, 2)
	assert.Equal(t, []string{"Breakfast"}, resp.Categories)

	// Search narrows the feed.
	w = env.get(t, "/api/v1/recipes?search=ramen", "")
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Spicy Ramen", resp.Recipes[0].Title)
}

func TestDetailEndpoint(t *testing.T) {
	env := setupAPI(t)
	token := env.registerUser(t, "cook@example.com", "The Cook")
	id := createRecipe(t, env, token, "Scrambled Eggs")

	// Anonymous visitors see the recipe and its author, no edit rights.
	w := env.get(t, "/api/v1/recipes/"+id.String(), "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp DetailResponse
	decodeJSON(t, w, &resp)
	require.NotNil(t, resp.Recipe)
	assert.Equal(t, "Scrambled Eggs", resp.Recipe.Title)
	require.NotNil(t, resp.Author)
	assert.Equal(t, "The Cook", resp.Author.DisplayName)
	assert.False(t, resp.CanEdit)

	// The owner gets the edit affordance.
	w = env.get(t, "/api/v1/recipes/"+id.String(), token)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	assert.True(t, resp.CanEdit)
}

func TestDetailUnknownRecipe(t *testing.T) {
	env := setupAPI(t)

	w := env.get(t, "/api/v1/recipes/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Malformed ids read the same as missing ones.
	w = env.get(t, "/api/v1/recipes/not-a-uuid", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDetailPrivateRecipeHiddenFromAnonymous(t *testing.T) {
	env := setupAPI(t)
	token := env.registerUser(t, "cook@example.com", "The Cook")
	id := createRecipe(t, env, token, "Family Secret")
	require.NoError(t, env.db.Model(&models.Recipe{}).Where("id = ?", id).Update("is_public", false).Error)

	w := env.get(t, "/api/v1/recipes/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.get(t, "/api/v1/recipes/"+id.String(), token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateRecipeByOwner(t *testing.T) {
	env := setupAPI(t)
	token := env.registerUser(t, "cook@example.com", "The Cook")
	id := createRecipe(t, env, token, "Scrambled Eggs")

	w := env.doForm(t, http.MethodPut, "/api/v1/recipes/"+id.String(), recipeValues("Perfect Scramble"), token)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/recipes/"+id.String(), w.Header().Get("Location"))

	var stored models.Recipe
	require.NoError(t, env.db.First(&stored, "id = ?", id).Error)
	assert.Equal(t, "Perfect Scramble", stored.Title)
}

func TestUpdateRecipeByOtherUserForbidden(t *testing.T) {
	env := setupAPI(t)
	ownerToken := env.registerUser(t, "owner@example.com", "Owner")
	otherToken := env.registerUser(t, "other@example.com", "Other")
	id := createRecipe(t, env, ownerToken, "Original")

	w := env.doForm(t, http.MethodPut, "/api/v1/recipes/"+id.String(), recipeValues("Hijacked"), otherToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var stored models.Recipe
	require.NoError(t, env.db.First(&stored, "id = ?", id).Error)
	assert.Equal(t, "Original", stored.Title)
}

func TestDeleteRecipe(t *testing.T) {
	env := setupAPI(t)
	ownerToken := env.registerUser(t, "owner@example.com", "Owner")
	otherToken := env.registerUser(t, "other@example.com", "Other")
	id := createRecipe(t, env, ownerToken, "Doomed")

	w := env.doForm(t, http.MethodDelete, "/api/v1/recipes/"+id.String(), nil, otherToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.doForm(t, http.MethodDelete, "/api/v1/recipes/"+id.String(), nil, ownerToken)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	var count int64
	require.NoError(t, env.db.Model(&models.Recipe{}).Where("id = ?", id).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDashboardEndpoint(t *testing.T) {
	env := setupAPI(t)
	ownerToken := env.registerUser(t, "owner@example.com", "Owner")
	otherToken := env.registerUser(t, "other@example.com", "Other")
	id := createRecipe(t, env, ownerToken, "Private Stash")
	require.NoError(t, env.db.Model(&models.Recipe{}).Where("id = ?", id).Update("is_public", false).Error)
	createRecipe(t, env, otherToken, "Someone Else's")

	w := env.get(t, "/api/v1/dashboard", ownerToken)
	require.Equal(t, http.StatusOK, w.Code)

	var resp DashboardResponse
	decodeJSON(t, w, &resp)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Private Stash", resp.Recipes[0].Title)
}

func TestDashboardRequiresAuth(t *testing.T) {
	env := setupAPI(t)

	w := env.get(t, "/api/v1/dashboard", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
