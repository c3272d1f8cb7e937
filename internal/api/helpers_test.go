package api

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/forkful/backend/internal/router"
	"github.com/forkful/backend/internal/service"
	"github.com/forkful/backend/internal/testdb"
)

type noopMailer struct{}

func (noopMailer) SendEmail(to, subject, body string) error { return nil }

// stubImageService answers uploads with a fixed address so handler tests
// never touch S3.
type stubImageService struct {
	url string
	err error
}

func (s *stubImageService) Upload(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader, kind service.ImageKind) (string, error) {
	if file == nil {
		return "", service.ErrNoFile
	}
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

type testEnv struct {
	db     *gorm.DB
	engine *gin.Engine
	images *stubImageService
}

func setupAPI(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.Setup(t)
	authService := service.NewAuthService(db, nil, "test-secret", "http://localhost:3000", noopMailer{})
	recipeService := service.NewRecipeService(db, nil)
	profileService := service.NewProfileService(db)
	images := &stubImageService{url: "https://test-bucket.s3.amazonaws.com/recipes/x/1.png"}

	engine := router.SetupRouter(
		"http://localhost:3000",
		NewAuthHandler(authService),
		NewRecipeHandler(recipeService, authService, nil),
		NewProfileHandler(profileService, authService),
		NewImageHandler(images, authService, nil),
	)
	return &testEnv{db: db, engine: engine, images: images}
}

// registerUser creates an account through the public endpoint and returns
// its bearer token.
func (e *testEnv) registerUser(t *testing.T, email, displayName string) string {
	t.Helper()
	values := url.Values{}
	values.Set("email", email)
	values.Set("password", "hunter22")
	values.Set("display_name", displayName)

	w := e.postForm(t, "/api/v1/auth/register", values, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (e *testEnv) postForm(t *testing.T, path string, values url.Values, token string) *httptest.ResponseRecorder {
	t.Helper()
	return e.doForm(t, http.MethodPost, path, values, token)
}

func (e *testEnv) doForm(t *testing.T, method, path string, values url.Values, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(t *testing.T, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}
