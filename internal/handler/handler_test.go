package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noticeboard/internal/pagination"
)

type testHandlers struct {
	*Handlers
	articles *MockArticleService
	comments *MockCommentService
	accounts *MockUserAccountService
	auth     *MockAuthService
	images   *MockImageService
}

func createTestHandler() *testHandlers {
	log := logrus.New()
	log.SetOutput(io.Discard)

	th := &testHandlers{
		articles: new(MockArticleService),
		comments: new(MockCommentService),
		accounts: new(MockUserAccountService),
		auth:     new(MockAuthService),
		images:   new(MockImageService),
	}
	th.Handlers = &Handlers{
		ArticleService:     th.articles,
		CommentService:     th.comments,
		UserAccountService: th.accounts,
		AuthService:        th.auth,
		ImageService:       th.images,
		Pagination:         pagination.Config{DefaultLimit: 10, MaxLimit: 50},
		MaxUploadSize:      1 << 20,
		Validate:           validator.New(),
		Log:                log,
	}
	return th
}

// router registers the handlers the way cmd/api does; authenticated routes
// read the caller from the X-Test-User header instead of a token.
func (th *testHandlers) router() *mux.Router {
	r := mux.NewRouter()
	asUser := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			if userID := req.Header.Get("X-Test-User"); userID != "" {
				req = req.WithContext(WithUserID(req.Context(), userID))
			}
			next(w, req)
		}
	}

	r.HandleFunc("/api/articles", th.GetArticles).Methods(http.MethodGet)
	r.HandleFunc("/api/articles/search-hashtag", th.SearchArticlesByHashtag).Methods(http.MethodGet)
	r.HandleFunc("/api/articles/count", th.GetArticleCount).Methods(http.MethodGet)
	r.HandleFunc("/api/articles/{articleId}", th.GetArticle).Methods(http.MethodGet)
	r.HandleFunc("/api/articles", asUser(th.CreateArticle)).Methods(http.MethodPost)
	r.HandleFunc("/api/articles/{articleId}", asUser(th.UpdateArticle)).Methods(http.MethodPut)
	r.HandleFunc("/api/articles/{articleId}", asUser(th.DeleteArticle)).Methods(http.MethodDelete)
	r.HandleFunc("/api/articles/{articleId}/comments", asUser(th.CreateComment)).Methods(http.MethodPost)
	r.HandleFunc("/api/comments/{commentId}", asUser(th.DeleteComment)).Methods(http.MethodDelete)
	r.HandleFunc("/api/articles/{articleId}/images", asUser(th.AddImage)).Methods(http.MethodPost)
	r.HandleFunc("/api/articles/{articleId}/images/{imageId}", asUser(th.DeleteImage)).Methods(http.MethodDelete)
	r.HandleFunc("/api/hashtags", th.GetHashtags).Methods(http.MethodGet)
	r.HandleFunc("/api/auth/register", th.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", th.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/refresh-token", th.RefreshToken).Methods(http.MethodPost)
	r.HandleFunc("/api/me", asUser(th.Me)).Methods(http.MethodGet)
	return r
}

func (th *testHandlers) do(method, target, userID, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if userID != "" {
		req.Header.Set("X-Test-User", userID)
	}
	rr := httptest.NewRecorder()
	th.router().ServeHTTP(rr, req)
	return rr
}

// assertJSONError checks the JSON response with an error
func assertJSONError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	t.Helper()
	assert.Equal(t, expectedStatus, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Contains(t, response.Error, expectedError)
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}
