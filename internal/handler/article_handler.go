package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"noticeboard/internal/dto"
	"noticeboard/internal/models"
	"noticeboard/internal/pagination"
)

type ArticleRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required,max=10000"`
}

// ArticleUpdateRequest is a partial update; omitted fields stay unchanged.
type ArticleUpdateRequest struct {
	Title   *string `json:"title" validate:"omitnil,min=1,max=255"`
	Content *string `json:"content" validate:"omitnil,min=1,max=10000"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// GetArticles lists articles, optionally filtered by searchType and searchValue.
func (h *Handlers) GetArticles(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.ParseQueryParams(r, h.Pagination)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	searchType := models.SearchTypeTitle
	if raw := r.URL.Query().Get("searchType"); raw != "" {
		searchType, err = models.ParseSearchType(raw)
		if err != nil {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	articles, err := h.ArticleService.SearchArticles(r.Context(), searchType, r.URL.Query().Get("searchValue"), page)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, articles, http.StatusOK)
}

func (h *Handlers) SearchArticlesByHashtag(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.ParseQueryParams(r, h.Pagination)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	articles, err := h.ArticleService.SearchArticlesViaHashtag(r.Context(), r.URL.Query().Get("searchValue"), page)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, articles, http.StatusOK)
}

func (h *Handlers) GetArticleCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.ArticleService.GetArticleCount(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, CountResponse{Count: count}, http.StatusOK)
}

// GetArticle returns the article with its comments, hashtags and images.
func (h *Handlers) GetArticle(w http.ResponseWriter, r *http.Request) {
	articleID, ok := pathID(r, "articleId")
	if !ok {
		WriteError(w, "invalid article id", http.StatusBadRequest)
		return
	}

	article, err := h.ArticleService.GetArticleWithComments(r.Context(), articleID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, article, http.StatusOK)
}

func (h *Handlers) CreateArticle(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	var req ArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "invalid article: "+err.Error(), http.StatusBadRequest)
		return
	}

	article, err := h.ArticleService.SaveArticle(r.Context(), dto.ArticleDto{
		UserAccount: dto.UserAccountDto{UserID: userID},
		Title:       req.Title,
		Content:     req.Content,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, article, http.StatusCreated)
}

func (h *Handlers) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	articleID, ok := pathID(r, "articleId")
	if !ok {
		WriteError(w, "invalid article id", http.StatusBadRequest)
		return
	}

	var req ArticleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "invalid article: "+err.Error(), http.StatusBadRequest)
		return
	}

	err := h.ArticleService.UpdateArticle(r.Context(), articleID, dto.ArticleUpdateDto{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	articleID, ok := pathID(r, "articleId")
	if !ok {
		WriteError(w, "invalid article id", http.StatusBadRequest)
		return
	}

	if err := h.ArticleService.DeleteArticle(r.Context(), articleID, userID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) GetHashtags(w http.ResponseWriter, r *http.Request) {
	names, err := h.ArticleService.GetHashtags(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}

	WriteSuccess(w, names, http.StatusOK)
}
