package service

import (
	"github.com/sirupsen/logrus"

	"noticeboard/internal/config"
	"noticeboard/internal/repository"
	"noticeboard/internal/storage"
)

type Service struct {
	Article     ArticleService
	Hashtag     HashtagService
	Comment     ArticleCommentService
	UserAccount UserAccountService
	Auth        AuthService
	Image       ImageService
}

func NewService(store repository.Transactor, cfg *config.Config, storage storage.Storage, m HashtagMetrics, log logrus.FieldLogger) *Service {
	repo := store.Repos()
	hashtags := NewHashtagService(repo.Hashtag, m, log)

	return &Service{
		Article:     NewArticleService(store, hashtags, storage, log),
		Hashtag:     hashtags,
		Comment:     NewArticleCommentService(store, log),
		UserAccount: NewUserAccountService(repo.UserAccount, log),
		Auth:        NewAuthService(repo.UserAccount, cfg),
		Image:       NewImageService(store, storage, log),
	}
}
