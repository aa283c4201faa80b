package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"noticeboard/internal/models"
)

type hashtagRepository struct {
	db Querier
}

func NewHashtagRepository(db Querier) HashtagRepository {
	return &hashtagRepository{db: db}
}

const hashtagColumns = `h.id, h.hashtag_name, h.created_at, h.created_by, h.modified_at, h.modified_by`

func (r *hashtagRepository) FindByNames(ctx context.Context, names []string) ([]models.Hashtag, error) {
	if len(names) == 0 {
		return []models.Hashtag{}, nil
	}

	query := `SELECT ` + hashtagColumns + ` FROM hashtags h WHERE h.hashtag_name = ANY($1) ORDER BY h.hashtag_name`

	hashtags := []models.Hashtag{}
	if err := r.db.SelectContext(ctx, &hashtags, query, pq.Array(names)); err != nil {
		return nil, fmt.Errorf("find hashtags by names: %w", err)
	}

	return hashtags, nil
}

func (r *hashtagRepository) FindByArticleID(ctx context.Context, articleID int64) ([]models.Hashtag, error) {
	query := `
		SELECT ` + hashtagColumns + `
		FROM hashtags h
		JOIN article_hashtags ah ON ah.hashtag_id = h.id
		WHERE ah.article_id = $1
		ORDER BY h.hashtag_name
	`

	hashtags := []models.Hashtag{}
	if err := r.db.SelectContext(ctx, &hashtags, query, articleID); err != nil {
		return nil, fmt.Errorf("find hashtags of article %d: %w", articleID, err)
	}

	return hashtags, nil
}

type articleHashtagRow struct {
	ArticleID int64 `db:"article_id"`
	models.Hashtag
}

// FindByArticleIDs loads the hashtags of several articles in one query, keyed
// by article id.
func (r *hashtagRepository) FindByArticleIDs(ctx context.Context, articleIDs []int64) (map[int64][]models.Hashtag, error) {
	result := make(map[int64][]models.Hashtag, len(articleIDs))
	if len(articleIDs) == 0 {
		return result, nil
	}

	query, args, err := psql.Select("ah.article_id", hashtagColumns).
		From("hashtags h").
		Join("article_hashtags ah ON ah.hashtag_id = h.id").
		Where("ah.article_id = ANY(?)", pq.Array(articleIDs)).
		OrderBy("ah.article_id", "h.hashtag_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build hashtag query: %w", err)
	}

	var rows []articleHashtagRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("find hashtags of articles: %w", err)
	}

	for _, row := range rows {
		result[row.ArticleID] = append(result[row.ArticleID], row.Hashtag)
	}

	return result, nil
}

func (r *hashtagRepository) FindAllHashtagNames(ctx context.Context) ([]string, error) {
	names := []string{}
	if err := r.db.SelectContext(ctx, &names, `SELECT hashtag_name FROM hashtags ORDER BY hashtag_name`); err != nil {
		return nil, fmt.Errorf("list hashtag names: %w", err)
	}
	return names, nil
}

// Save inserts the hashtag or, if the name already exists, loads the existing
// row. Either way hashtag.ID is populated afterwards.
func (r *hashtagRepository) Save(ctx context.Context, hashtag *models.Hashtag) error {
	query := `
		INSERT INTO hashtags (hashtag_name, created_by, modified_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (hashtag_name) DO UPDATE SET hashtag_name = EXCLUDED.hashtag_name
		RETURNING id, created_at, created_by, modified_at, modified_by
	`

	err := r.db.QueryRowxContext(ctx, query, hashtag.HashtagName, hashtag.CreatedBy, hashtag.ModifiedBy).
		Scan(&hashtag.ID, &hashtag.CreatedAt, &hashtag.CreatedBy, &hashtag.ModifiedAt, &hashtag.ModifiedBy)
	if err != nil {
		return fmt.Errorf("save hashtag %q: %w", hashtag.HashtagName, err)
	}

	return nil
}

// DeleteIfOrphaned removes the hashtag when no article references it. The
// check and the delete run as one statement.
func (r *hashtagRepository) DeleteIfOrphaned(ctx context.Context, id int64) (bool, error) {
	query := `
		DELETE FROM hashtags h
		WHERE h.id = $1
		  AND NOT EXISTS (SELECT 1 FROM article_hashtags ah WHERE ah.hashtag_id = h.id)
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete hashtag %d: %w", id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("check deleted rows: %w", err)
	}

	return n > 0, nil
}

func (r *hashtagRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	query, args, err := psql.Delete("hashtags h").
		Where(sq.Expr("NOT EXISTS (SELECT 1 FROM article_hashtags ah WHERE ah.hashtag_id = h.id)")).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build orphan delete: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete orphaned hashtags: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check deleted rows: %w", err)
	}

	return n, nil
}
