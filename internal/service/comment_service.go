package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"noticeboard/internal/dto"
	"noticeboard/internal/logger"
	"noticeboard/internal/repository"
)

type ArticleCommentService interface {
	SearchArticleComments(ctx context.Context, articleID int64) ([]dto.ArticleCommentDto, error)
	SaveArticleComment(ctx context.Context, comment dto.ArticleCommentDto) (dto.ArticleCommentDto, error)
	DeleteArticleComment(ctx context.Context, commentID int64, userID string) error
}

type articleCommentService struct {
	store repository.Transactor
	log   logrus.FieldLogger
}

func NewArticleCommentService(store repository.Transactor, log logrus.FieldLogger) ArticleCommentService {
	return &articleCommentService{store: store, log: log}
}

func (s *articleCommentService) SearchArticleComments(ctx context.Context, articleID int64) ([]dto.ArticleCommentDto, error) {
	comments, err := s.store.Repos().Comment.FindByArticleID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ArticleCommentDto, 0, len(comments))
	for _, c := range comments {
		out = append(out, dto.ArticleCommentFromEntity(c))
	}
	return out, nil
}

// SaveArticleComment stores a comment after checking that both the article
// and the commenting account exist.
func (s *articleCommentService) SaveArticleComment(ctx context.Context, commentDto dto.ArticleCommentDto) (dto.ArticleCommentDto, error) {
	var result dto.ArticleCommentDto

	err := s.store.InTx(ctx, func(repo *repository.Repository) error {
		if _, err := repo.Article.FindByID(ctx, commentDto.ArticleID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return &ArticleNotFoundError{ID: commentDto.ArticleID}
			}
			return err
		}

		account, err := repo.UserAccount.FindByID(ctx, commentDto.UserAccount.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUserAccountNotFound
			}
			return err
		}

		comment := commentDto.ToEntity(*account)
		if err := repo.Comment.Create(ctx, &comment); err != nil {
			return err
		}

		result = dto.ArticleCommentFromEntity(comment)
		return nil
	})
	if err != nil {
		return dto.ArticleCommentDto{}, err
	}

	logger.FromContext(ctx, s.log).WithFields(logrus.Fields{
		"article_id": result.ArticleID,
		"comment_id": result.ID,
	}).Info("comment created")

	return result, nil
}

func (s *articleCommentService) DeleteArticleComment(ctx context.Context, commentID int64, userID string) error {
	return s.store.InTx(ctx, func(repo *repository.Repository) error {
		comment, err := repo.Comment.FindByID(ctx, commentID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrCommentNotFound
			}
			return err
		}

		if comment.UserAccount.UserID != userID {
			return ErrForbidden
		}

		deleted, err := repo.Comment.DeleteByIDAndUserID(ctx, commentID, userID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return ErrCommentNotFound
		}

		return nil
	})
}
