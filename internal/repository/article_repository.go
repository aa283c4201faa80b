package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"noticeboard/internal/models"
	"noticeboard/internal/pagination"
)

var articleColumns = []string{
	"a.id",
	"a.title",
	"a.content",
	"a.created_at",
	"a.created_by",
	"a.modified_at",
	"a.modified_by",
	`u.user_id AS "user_account.user_id"`,
	`u.email AS "user_account.email"`,
	`u.nickname AS "user_account.nickname"`,
	`u.memo AS "user_account.memo"`,
	`u.created_at AS "user_account.created_at"`,
	`u.created_by AS "user_account.created_by"`,
	`u.modified_at AS "user_account.modified_at"`,
	`u.modified_by AS "user_account.modified_by"`,
}

type articleRepository struct {
	db Querier
}

func NewArticleRepository(db Querier) ArticleRepository {
	return &articleRepository{db: db}
}

// containing escapes LIKE wildcards in s and wraps it for a substring match.
func containing(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func (r *articleRepository) FindAll(ctx context.Context, page pagination.Params) (pagination.Page[models.Article], error) {
	return r.findPage(ctx, nil, page)
}

func (r *articleRepository) FindByTitleContaining(ctx context.Context, title string, page pagination.Params) (pagination.Page[models.Article], error) {
	return r.findPage(ctx, sq.ILike{"a.title": containing(title)}, page)
}

func (r *articleRepository) FindByContentContaining(ctx context.Context, content string, page pagination.Params) (pagination.Page[models.Article], error) {
	return r.findPage(ctx, sq.ILike{"a.content": containing(content)}, page)
}

func (r *articleRepository) FindByUserIDContaining(ctx context.Context, userID string, page pagination.Params) (pagination.Page[models.Article], error) {
	return r.findPage(ctx, sq.ILike{"u.user_id": containing(userID)}, page)
}

func (r *articleRepository) FindByNicknameContaining(ctx context.Context, nickname string, page pagination.Params) (pagination.Page[models.Article], error) {
	return r.findPage(ctx, sq.ILike{"u.nickname": containing(nickname)}, page)
}

// FindByHashtagNames returns articles tagged with any of names, each article once.
func (r *articleRepository) FindByHashtagNames(ctx context.Context, names []string, page pagination.Params) (pagination.Page[models.Article], error) {
	if len(names) == 0 {
		return pagination.Empty[models.Article](page), nil
	}

	where := sq.Expr(`a.id IN (
		SELECT ah.article_id FROM article_hashtags ah
		JOIN hashtags h ON h.id = ah.hashtag_id
		WHERE h.hashtag_name = ANY(?))`, pq.Array(names))

	return r.findPage(ctx, where, page)
}

func (r *articleRepository) findPage(ctx context.Context, where sq.Sqlizer, page pagination.Params) (pagination.Page[models.Article], error) {
	countQuery := psql.Select("COUNT(*)").
		From("articles a").
		Join("user_accounts u ON u.user_id = a.user_id")
	selectQuery := psql.Select(articleColumns...).
		From("articles a").
		Join("user_accounts u ON u.user_id = a.user_id").
		OrderBy("a.created_at DESC", "a.id DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset()))

	if where != nil {
		countQuery = countQuery.Where(where)
		selectQuery = selectQuery.Where(where)
	}

	query, args, err := countQuery.ToSql()
	if err != nil {
		return pagination.Page[models.Article]{}, fmt.Errorf("build article count query: %w", err)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return pagination.Page[models.Article]{}, fmt.Errorf("count articles: %w", err)
	}

	if total == 0 {
		return pagination.Empty[models.Article](page), nil
	}

	query, args, err = selectQuery.ToSql()
	if err != nil {
		return pagination.Page[models.Article]{}, fmt.Errorf("build article query: %w", err)
	}

	var articles []models.Article
	if err := r.db.SelectContext(ctx, &articles, query, args...); err != nil {
		return pagination.Page[models.Article]{}, fmt.Errorf("select articles: %w", err)
	}

	return pagination.NewPage(articles, page, total), nil
}

func (r *articleRepository) FindByID(ctx context.Context, id int64) (*models.Article, error) {
	query, args, err := psql.Select(articleColumns...).
		From("articles a").
		Join("user_accounts u ON u.user_id = a.user_id").
		Where(sq.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build article query: %w", err)
	}

	var article models.Article
	if err := r.db.GetContext(ctx, &article, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get article %d: %w", id, err)
	}

	return &article, nil
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO articles (user_id, title, content, created_by, modified_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, modified_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		article.UserAccount.UserID,
		article.Title,
		article.Content,
		article.CreatedBy,
		article.ModifiedBy,
	).Scan(&article.ID, &article.CreatedAt, &article.ModifiedAt)
	if err != nil {
		return fmt.Errorf("create article: %w", err)
	}

	return nil
}

func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	query := `
		UPDATE articles SET
			title = $1,
			content = $2,
			modified_at = now(),
			modified_by = $3
		WHERE id = $4
	`

	result, err := r.db.ExecContext(ctx, query, article.Title, article.Content, article.ModifiedBy, article.ID)
	if err != nil {
		return fmt.Errorf("update article %d: %w", article.ID, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check updated rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteByIDAndUserID deletes the article only when it belongs to userID and
// returns the number of deleted rows.
func (r *articleRepository) DeleteByIDAndUserID(ctx context.Context, id int64, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, fmt.Errorf("delete article %d: %w", id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check deleted rows: %w", err)
	}

	return n, nil
}

func (r *articleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM articles`); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

func (r *articleRepository) AddHashtags(ctx context.Context, articleID int64, hashtagIDs []int64) error {
	if len(hashtagIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO article_hashtags (article_id, hashtag_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, articleID, pq.Array(hashtagIDs)); err != nil {
		return fmt.Errorf("link hashtags to article %d: %w", articleID, err)
	}

	return nil
}

func (r *articleRepository) ClearHashtags(ctx context.Context, articleID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM article_hashtags WHERE article_id = $1`, articleID); err != nil {
		return fmt.Errorf("unlink hashtags from article %d: %w", articleID, err)
	}
	return nil
}
