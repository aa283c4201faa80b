package handlers

import (
	"encoding/json"
	"net/http"

	"noticeboard/internal/dto"
)

type CommentRequest struct {
	Content string `json:"content" validate:"required,max=500"`
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	articleID, ok := pathID(r, "articleId")
	if !ok {
		WriteError(w, "invalid article id", http.StatusBadRequest)
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "invalid comment: "+err.Error(), http.StatusBadRequest)
		return
	}

	comment, err := h.CommentService.SaveArticleComment(r.Context(), dto.ArticleCommentDto{
		ArticleID:   articleID,
		UserAccount: dto.UserAccountDto{UserID: userID},
		Content:     req.Content,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, comment, http.StatusCreated)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	commentID, ok := pathID(r, "commentId")
	if !ok {
		WriteError(w, "invalid comment id", http.StatusBadRequest)
		return
	}

	if err := h.CommentService.DeleteArticleComment(r.Context(), commentID, userID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
