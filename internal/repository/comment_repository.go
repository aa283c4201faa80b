package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"noticeboard/internal/models"
)

type articleCommentRepository struct {
	db Querier
}

func NewArticleCommentRepository(db Querier) ArticleCommentRepository {
	return &articleCommentRepository{db: db}
}

const commentSelect = `
	SELECT
		c.id, c.article_id, c.content,
		c.created_at, c.created_by, c.modified_at, c.modified_by,
		u.user_id AS "user_account.user_id",
		u.email AS "user_account.email",
		u.nickname AS "user_account.nickname",
		u.memo AS "user_account.memo",
		u.created_at AS "user_account.created_at",
		u.created_by AS "user_account.created_by",
		u.modified_at AS "user_account.modified_at",
		u.modified_by AS "user_account.modified_by"
	FROM article_comments c
	JOIN user_accounts u ON u.user_id = c.user_id
`

func (r *articleCommentRepository) FindByArticleID(ctx context.Context, articleID int64) ([]models.ArticleComment, error) {
	comments := []models.ArticleComment{}

	query := commentSelect + ` WHERE c.article_id = $1 ORDER BY c.created_at, c.id`

	if err := r.db.SelectContext(ctx, &comments, query, articleID); err != nil {
		return nil, fmt.Errorf("list comments of article %d: %w", articleID, err)
	}

	return comments, nil
}

func (r *articleCommentRepository) FindByID(ctx context.Context, id int64) (*models.ArticleComment, error) {
	var comment models.ArticleComment

	if err := r.db.GetContext(ctx, &comment, commentSelect+` WHERE c.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get comment %d: %w", id, err)
	}

	return &comment, nil
}

func (r *articleCommentRepository) Create(ctx context.Context, comment *models.ArticleComment) error {
	query := `
		INSERT INTO article_comments (article_id, user_id, content, created_by, modified_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, modified_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		comment.ArticleID,
		comment.UserAccount.UserID,
		comment.Content,
		comment.CreatedBy,
		comment.ModifiedBy,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.ModifiedAt)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

func (r *articleCommentRepository) DeleteByIDAndUserID(ctx context.Context, id int64, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM article_comments WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, fmt.Errorf("delete comment %d: %w", id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check deleted rows: %w", err)
	}

	return n, nil
}
