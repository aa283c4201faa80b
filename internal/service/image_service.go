package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"noticeboard/internal/dto"
	"noticeboard/internal/logger"
	"noticeboard/internal/models"
	"noticeboard/internal/repository"
	"noticeboard/internal/storage"
)

type ImageService interface {
	AddImage(ctx context.Context, articleID int64, userID, fileName string, file io.Reader, size int64) (dto.ArticleImageDto, error)
	DeleteImage(ctx context.Context, articleID int64, imageID, userID string) error
}

type imageService struct {
	store   repository.Transactor
	storage storage.Storage
	log     logrus.FieldLogger
}

func NewImageService(store repository.Transactor, storage storage.Storage, log logrus.FieldLogger) ImageService {
	return &imageService{store: store, storage: storage, log: log}
}

func (s *imageService) ownedArticle(ctx context.Context, articleID int64, userID string) error {
	article, err := s.store.Repos().Article.FindByID(ctx, articleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &ArticleNotFoundError{ID: articleID}
		}
		return err
	}

	if !article.OwnedBy(userID) {
		return ErrForbidden
	}
	return nil
}

// AddImage uploads the file and records it against the article. The object
// is removed again if the row cannot be written.
func (s *imageService) AddImage(ctx context.Context, articleID int64, userID, fileName string, file io.Reader, size int64) (dto.ArticleImageDto, error) {
	if err := s.ownedArticle(ctx, articleID, userID); err != nil {
		return dto.ArticleImageDto{}, err
	}

	objectName, imageURL, err := s.storage.UploadImage(ctx, articleID, fileName, file, size)
	if err != nil {
		return dto.ArticleImageDto{}, fmt.Errorf("upload image: %w", err)
	}

	image := &models.ArticleImage{
		ArticleID:  articleID,
		ObjectName: objectName,
		ImageURL:   imageURL,
	}

	if err := s.store.Repos().Image.Create(ctx, image); err != nil {
		if delErr := s.storage.DeleteImage(ctx, objectName); delErr != nil {
			logger.FromContext(ctx, s.log).WithError(delErr).WithField("object", objectName).Warn("failed to remove uploaded object")
		}
		return dto.ArticleImageDto{}, fmt.Errorf("save image: %w", err)
	}

	return dto.ArticleImageFromEntity(*image), nil
}

func (s *imageService) DeleteImage(ctx context.Context, articleID int64, imageID, userID string) error {
	if err := s.ownedArticle(ctx, articleID, userID); err != nil {
		return err
	}

	repo := s.store.Repos()

	image, err := repo.Image.GetByImageID(ctx, imageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrImageNotFound
		}
		return err
	}
	if image.ArticleID != articleID {
		return ErrImageNotFound
	}

	if err := repo.Image.Delete(ctx, imageID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrImageNotFound
		}
		return err
	}

	if err := s.storage.DeleteImage(ctx, image.ObjectName); err != nil {
		logger.FromContext(ctx, s.log).WithError(err).WithField("object", image.ObjectName).Warn("failed to remove image object")
	}

	return nil
}
