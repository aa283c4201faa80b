package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"noticeboard/internal/models"
	"noticeboard/internal/pagination"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("repository: duplicate entry")
)

// Querier is implemented by both *sqlx.DB and *sqlx.Tx.
type Querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type ArticleRepository interface {
	FindAll(ctx context.Context, page pagination.Params) (pagination.Page[models.Article], error)
	FindByTitleContaining(ctx context.Context, title string, page pagination.Params) (pagination.Page[models.Article], error)
	FindByContentContaining(ctx context.Context, content string, page pagination.Params) (pagination.Page[models.Article], error)
	FindByUserIDContaining(ctx context.Context, userID string, page pagination.Params) (pagination.Page[models.Article], error)
	FindByNicknameContaining(ctx context.Context, nickname string, page pagination.Params) (pagination.Page[models.Article], error)
	FindByHashtagNames(ctx context.Context, names []string, page pagination.Params) (pagination.Page[models.Article], error)
	FindByID(ctx context.Context, id int64) (*models.Article, error)
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	DeleteByIDAndUserID(ctx context.Context, id int64, userID string) (int64, error)
	Count(ctx context.Context) (int64, error)
	AddHashtags(ctx context.Context, articleID int64, hashtagIDs []int64) error
	ClearHashtags(ctx context.Context, articleID int64) error
}

type HashtagRepository interface {
	FindByNames(ctx context.Context, names []string) ([]models.Hashtag, error)
	FindByArticleID(ctx context.Context, articleID int64) ([]models.Hashtag, error)
	FindByArticleIDs(ctx context.Context, articleIDs []int64) (map[int64][]models.Hashtag, error)
	FindAllHashtagNames(ctx context.Context) ([]string, error)
	Save(ctx context.Context, hashtag *models.Hashtag) error
	DeleteIfOrphaned(ctx context.Context, id int64) (bool, error)
	DeleteOrphans(ctx context.Context) (int64, error)
}

type UserAccountRepository interface {
	Create(ctx context.Context, account *models.UserAccount, password string) error
	FindByID(ctx context.Context, userID string) (*models.UserAccount, error)
	FindAll(ctx context.Context) ([]models.UserAccount, error)
	Delete(ctx context.Context, userID string) error
	VerifyPassword(ctx context.Context, userID, password string) (*models.UserAccount, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiresAt time.Time) error
	FindByRefreshToken(ctx context.Context, refreshToken string) (*models.UserAccount, error)
}

type ArticleCommentRepository interface {
	FindByArticleID(ctx context.Context, articleID int64) ([]models.ArticleComment, error)
	FindByID(ctx context.Context, id int64) (*models.ArticleComment, error)
	Create(ctx context.Context, comment *models.ArticleComment) error
	DeleteByIDAndUserID(ctx context.Context, id int64, userID string) (int64, error)
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.ArticleImage) error
	GetByImageID(ctx context.Context, imageID string) (*models.ArticleImage, error)
	GetByArticleID(ctx context.Context, articleID int64) ([]models.ArticleImage, error)
	Delete(ctx context.Context, imageID string) error
}

// Repository groups the repositories bound to one Querier.
type Repository struct {
	Article     ArticleRepository
	Hashtag     HashtagRepository
	UserAccount UserAccountRepository
	Comment     ArticleCommentRepository
	Image       ImageRepository
}

func NewRepository(db Querier) *Repository {
	return &Repository{
		Article:     NewArticleRepository(db),
		Hashtag:     NewHashtagRepository(db),
		UserAccount: NewUserAccountRepository(db),
		Comment:     NewArticleCommentRepository(db),
		Image:       NewImageRepository(db),
	}
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
