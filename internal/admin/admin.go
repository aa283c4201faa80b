// Package admin serves the server-rendered account management pages.
package admin

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"noticeboard/internal/dto"
	"noticeboard/internal/logger"
	"noticeboard/internal/service"
)

const MembersView = "admin/members"

//go:embed templates
var templateFiles embed.FS

var templates = template.Must(template.ParseFS(templateFiles, "templates/admin/*.html"))

type membersPage struct {
	Members []dto.UserAccountDto
	Flash   string
}

type Handler struct {
	accounts service.UserAccountService
	log      logrus.FieldLogger
}

func NewHandler(accounts service.UserAccountService, log logrus.FieldLogger) *Handler {
	return &Handler{accounts: accounts, log: log}
}

// Register mounts the admin pages on r.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/admin/members", h.Members).Methods(http.MethodGet)
	r.HandleFunc("/admin/members/{userId}/delete", h.DeleteMember).Methods(http.MethodPost)
}

func (h *Handler) Members(w http.ResponseWriter, r *http.Request) {
	members, err := h.accounts.ListUserAccounts(r.Context())
	if err != nil {
		logger.FromContext(r.Context(), h.log).WithError(err).Error("list members")
		http.Error(w, "could not load members", http.StatusInternalServerError)
		return
	}

	page := membersPage{Members: members}
	if deleted := r.URL.Query().Get("deleted"); deleted != "" {
		page.Flash = "Deleted member " + deleted
	}

	h.render(w, r, MembersView, page)
}

func (h *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	err := h.accounts.DeleteUserAccount(r.Context(), userID)
	switch {
	case errors.Is(err, service.ErrUserAccountNotFound):
		http.Error(w, "member not found", http.StatusNotFound)
		return
	case err != nil:
		logger.FromContext(r.Context(), h.log).WithError(err).WithField("user_id", userID).Error("delete member")
		http.Error(w, "could not delete member", http.StatusInternalServerError)
		return
	}

	logger.FromContext(r.Context(), h.log).WithField("user_id", userID).Info("member deleted")
	http.Redirect(w, r, "/admin/members?deleted="+url.QueryEscape(userID), http.StatusSeeOther)
}

// render executes into a buffer first so a template error still yields a clean 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, view string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, view, data); err != nil {
		logger.FromContext(r.Context(), h.log).WithError(err).WithField("view", view).Error("render view")
		http.Error(w, "could not render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
