package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/forkful/backend/internal/models"
)

// Field names shared by the form and the server actions. Both ends must
// agree on these and on the JSON-encoded list shape.
const (
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldIngredients  = "ingredients"
	FieldSteps        = "steps"
	FieldPrepTimeMins = "prep_time_mins"
	FieldCookTimeMins = "cook_time_mins"
	FieldCategory     = "category"
	FieldImageURL     = "image_url"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrNoIngredients = errors.New("at least one ingredient is required")
	ErrNoSteps       = errors.New("at least one step is required")
)

// SuggestedCategories is the loose set offered by the form. The store does
// not enforce it.
var SuggestedCategories = []string{
	"Breakfast", "Lunch", "Dinner", "Dessert", "Snack", "Appetizer", "Beverage",
}

// RecipeForm holds the in-memory state of the recipe create/edit form:
// scalar fields, the two ordered list editors, and the image reference.
type RecipeForm struct {
	Title        string
	Description  string
	Ingredients  *ListEditor
	Steps        *ListEditor
	PrepTimeMins string
	CookTimeMins string
	Category     string

	imageURL  string
	uploading bool
}

// NewRecipeForm returns a blank form with one slot in each list.
func NewRecipeForm() *RecipeForm {
	return &RecipeForm{
		Ingredients: NewListEditor(nil),
		Steps:       NewListEditor(nil),
	}
}

// EditRecipeForm seeds the form from an existing recipe.
func EditRecipeForm(r *models.Recipe) *RecipeForm {
	f := &RecipeForm{
		Title:       r.Title,
		Description: r.Description,
		Ingredients: NewListEditor(r.Ingredients),
		Steps:       NewListEditor(r.Steps),
		Category:    r.Category,
		imageURL:    r.ImageURL,
	}
	if r.PrepTimeMins != nil {
		f.PrepTimeMins = strconv.Itoa(*r.PrepTimeMins)
	}
	if r.CookTimeMins != nil {
		f.CookTimeMins = strconv.Itoa(*r.CookTimeMins)
	}
	return f
}

// ImageURL returns the current image reference.
func (f *RecipeForm) ImageURL() string {
	return f.imageURL
}

// BeginUpload marks an image upload as in flight; submission is disabled
// until it finishes.
func (f *RecipeForm) BeginUpload() {
	f.uploading = true
}

// FinishUpload records the outcome of an upload. On success the returned
// address replaces the current reference; on failure the previous reference
// is retained unchanged.
func (f *RecipeForm) FinishUpload(url string, err error) {
	f.uploading = false
	if err == nil && url != "" {
		f.imageURL = url
	}
}

// CanSubmit reports whether submission is currently allowed.
func (f *RecipeForm) CanSubmit() bool {
	return !f.uploading
}

// Submit validates the form and encodes it into the wire field set. Both
// lists are filtered to drop blank entries; an empty filtered list rejects
// the submission before any network call.
func (f *RecipeForm) Submit() (url.Values, error) {
	if !f.CanSubmit() {
		return nil, errors.New("image upload in progress")
	}
	if strings.TrimSpace(f.Title) == "" {
		return nil, ErrTitleRequired
	}

	ingredients := f.Ingredients.Filtered()
	if len(ingredients) == 0 {
		return nil, ErrNoIngredients
	}
	steps := f.Steps.Filtered()
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}

	ingJSON, err := json.Marshal(ingredients)
	if err != nil {
		return nil, err
	}
	stepsJSON, err := json.Marshal(steps)
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set(FieldTitle, strings.TrimSpace(f.Title))
	values.Set(FieldDescription, strings.TrimSpace(f.Description))
	values.Set(FieldIngredients, string(ingJSON))
	values.Set(FieldSteps, string(stepsJSON))
	values.Set(FieldPrepTimeMins, strings.TrimSpace(f.PrepTimeMins))
	values.Set(FieldCookTimeMins, strings.TrimSpace(f.CookTimeMins))
	values.Set(FieldCategory, strings.TrimSpace(f.Category))
	values.Set(FieldImageURL, f.imageURL)
	return values, nil
}

// RecipeInput is the decoded, validated field set the mutation actions
// persist.
type RecipeInput struct {
	Title        string
	Description  string
	Ingredients  []string
	Steps        []string
	PrepTimeMins *int
	CookTimeMins *int
	Category     string
	ImageURL     string
}

// ParseRecipeForm decodes the wire field set produced by the form. The form
// already filters blank list entries, but the decode filters again
// defensively. Numeric time fields are coerced from text, empty meaning
// absent; negative or malformed values are rejected.
func ParseRecipeForm(values url.Values) (*RecipeInput, error) {
	title := strings.TrimSpace(values.Get(FieldTitle))
	if title == "" {
		return nil, ErrTitleRequired
	}

	ingredients, err := decodeList(values.Get(FieldIngredients))
	if err != nil {
		return nil, fmt.Errorf("invalid ingredients field: %w", err)
	}
	if len(ingredients) == 0 {
		return nil, ErrNoIngredients
	}

	steps, err := decodeList(values.Get(FieldSteps))
	if err != nil {
		return nil, fmt.Errorf("invalid steps field: %w", err)
	}
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}

	prep, err := parseMinutes(values.Get(FieldPrepTimeMins))
	if err != nil {
		return nil, fmt.Errorf("invalid prep_time_mins: %w", err)
	}
	cook, err := parseMinutes(values.Get(FieldCookTimeMins))
	if err != nil {
		return nil, fmt.Errorf("invalid cook_time_mins: %w", err)
	}

	return &RecipeInput{
		Title:        title,
		Description:  strings.TrimSpace(values.Get(FieldDescription)),
		Ingredients:  ingredients,
		Steps:        steps,
		PrepTimeMins: prep,
		CookTimeMins: cook,
		Category:     strings.TrimSpace(values.Get(FieldCategory)),
		ImageURL:     strings.TrimSpace(values.Get(FieldImageURL)),
	}, nil
}

func decodeList(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	return filterBlank(items), nil
}

func parseMinutes(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errors.New("must be non-negative")
	}
	return &n, nil
}
