package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"noticeboard/internal/config"
	"noticeboard/internal/pagination"
	"noticeboard/internal/service"
)

type Handlers struct {
	ArticleService     service.ArticleService
	CommentService     service.ArticleCommentService
	UserAccountService service.UserAccountService
	AuthService        service.AuthService
	ImageService       service.ImageService
	Pagination         pagination.Config
	MaxUploadSize      int64
	Validate           *validator.Validate
	Log                logrus.FieldLogger
}

func NewHandlers(svc *service.Service, cfg *config.Config, log logrus.FieldLogger) *Handlers {
	return &Handlers{
		ArticleService:     svc.Article,
		CommentService:     svc.Comment,
		UserAccountService: svc.UserAccount,
		AuthService:        svc.Auth,
		ImageService:       svc.Image,
		Pagination: pagination.Config{
			DefaultLimit: cfg.Pagination.DefaultLimit,
			MaxLimit:     cfg.Pagination.MaxLimit,
		},
		MaxUploadSize: cfg.MaxUploadSize,
		Validate:      validator.New(),
		Log:           log,
	}
}
