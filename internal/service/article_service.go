package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"noticeboard/internal/dto"
	"noticeboard/internal/logger"
	"noticeboard/internal/models"
	"noticeboard/internal/pagination"
	"noticeboard/internal/repository"
	"noticeboard/internal/storage"
)

type ArticleService interface {
	SearchArticles(ctx context.Context, searchType models.SearchType, keyword string, page pagination.Params) (pagination.Page[dto.ArticleDto], error)
	SearchArticlesViaHashtag(ctx context.Context, hashtagName string, page pagination.Params) (pagination.Page[dto.ArticleDto], error)
	GetArticle(ctx context.Context, articleID int64) (dto.ArticleDto, error)
	GetArticleWithComments(ctx context.Context, articleID int64) (dto.ArticleWithCommentsDto, error)
	SaveArticle(ctx context.Context, article dto.ArticleDto) (dto.ArticleDto, error)
	UpdateArticle(ctx context.Context, articleID int64, update dto.ArticleUpdateDto) error
	DeleteArticle(ctx context.Context, articleID int64, userID string) error
	GetHashtags(ctx context.Context) ([]string, error)
	GetArticleCount(ctx context.Context) (int64, error)
}

type articleService struct {
	store    repository.Transactor
	hashtags HashtagService
	storage  storage.Storage
	log      logrus.FieldLogger
}

func NewArticleService(store repository.Transactor, hashtags HashtagService, storage storage.Storage, log logrus.FieldLogger) ArticleService {
	return &articleService{
		store:    store,
		hashtags: hashtags,
		storage:  storage,
		log:      log,
	}
}

func (s *articleService) SearchArticles(ctx context.Context, searchType models.SearchType, keyword string, page pagination.Params) (pagination.Page[dto.ArticleDto], error) {
	keyword = strings.TrimSpace(keyword)
	repo := s.store.Repos()

	var (
		result pagination.Page[models.Article]
		err    error
	)

	if keyword == "" {
		result, err = repo.Article.FindAll(ctx, page)
	} else {
		switch searchType {
		case models.SearchTypeTitle:
			result, err = repo.Article.FindByTitleContaining(ctx, keyword, page)
		case models.SearchTypeContent:
			result, err = repo.Article.FindByContentContaining(ctx, keyword, page)
		case models.SearchTypeID:
			result, err = repo.Article.FindByUserIDContaining(ctx, keyword, page)
		case models.SearchTypeNickname:
			result, err = repo.Article.FindByNicknameContaining(ctx, keyword, page)
		case models.SearchTypeHashtag:
			result, err = repo.Article.FindByHashtagNames(ctx, splitHashtagKeyword(keyword), page)
		default:
			return pagination.Page[dto.ArticleDto]{}, fmt.Errorf("%w: %v", ErrUnknownSearchType, searchType)
		}
	}
	if err != nil {
		return pagination.Page[dto.ArticleDto]{}, err
	}

	return s.projectPage(ctx, repo, result)
}

// SearchArticlesViaHashtag returns an empty page for a blank name.
func (s *articleService) SearchArticlesViaHashtag(ctx context.Context, hashtagName string, page pagination.Params) (pagination.Page[dto.ArticleDto], error) {
	name := strings.TrimPrefix(strings.TrimSpace(hashtagName), "#")
	if name == "" {
		return pagination.Empty[dto.ArticleDto](page), nil
	}

	repo := s.store.Repos()

	result, err := repo.Article.FindByHashtagNames(ctx, []string{name}, page)
	if err != nil {
		return pagination.Page[dto.ArticleDto]{}, err
	}

	return s.projectPage(ctx, repo, result)
}

// splitHashtagKeyword turns "foo #bar foo" into the distinct names [foo bar].
func splitHashtagKeyword(keyword string) []string {
	seen := make(map[string]struct{})
	names := []string{}

	for _, field := range strings.Fields(keyword) {
		name := strings.TrimPrefix(field, "#")
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names
}

func (s *articleService) projectPage(ctx context.Context, repo *repository.Repository, page pagination.Page[models.Article]) (pagination.Page[dto.ArticleDto], error) {
	if len(page.Content) == 0 {
		return pagination.Map(page, dto.ArticleFromEntity), nil
	}

	ids := make([]int64, 0, len(page.Content))
	for _, a := range page.Content {
		ids = append(ids, a.ID)
	}

	hashtags, err := repo.Hashtag.FindByArticleIDs(ctx, ids)
	if err != nil {
		return pagination.Page[dto.ArticleDto]{}, err
	}

	for i := range page.Content {
		page.Content[i].Hashtags = hashtags[page.Content[i].ID]
	}

	return pagination.Map(page, dto.ArticleFromEntity), nil
}

func (s *articleService) loadArticle(ctx context.Context, repo *repository.Repository, articleID int64) (*models.Article, error) {
	article, err := repo.Article.FindByID(ctx, articleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ArticleNotFoundError{ID: articleID}
		}
		return nil, err
	}

	article.Hashtags, err = repo.Hashtag.FindByArticleID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	return article, nil
}

func (s *articleService) GetArticle(ctx context.Context, articleID int64) (dto.ArticleDto, error) {
	article, err := s.loadArticle(ctx, s.store.Repos(), articleID)
	if err != nil {
		return dto.ArticleDto{}, err
	}

	return dto.ArticleFromEntity(*article), nil
}

func (s *articleService) GetArticleWithComments(ctx context.Context, articleID int64) (dto.ArticleWithCommentsDto, error) {
	repo := s.store.Repos()

	article, err := s.loadArticle(ctx, repo, articleID)
	if err != nil {
		return dto.ArticleWithCommentsDto{}, err
	}

	if article.Comments, err = repo.Comment.FindByArticleID(ctx, articleID); err != nil {
		return dto.ArticleWithCommentsDto{}, err
	}

	if article.Images, err = repo.Image.GetByArticleID(ctx, articleID); err != nil {
		return dto.ArticleWithCommentsDto{}, err
	}

	return dto.ArticleWithCommentsFromEntity(*article), nil
}

func (s *articleService) SaveArticle(ctx context.Context, articleDto dto.ArticleDto) (dto.ArticleDto, error) {
	var saved models.Article

	err := s.store.InTx(ctx, func(repo *repository.Repository) error {
		account, err := repo.UserAccount.FindByID(ctx, articleDto.UserAccount.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUserAccountNotFound
			}
			return err
		}

		article := articleDto.ToEntity(*account)

		article.Hashtags, err = s.renewHashtagsFromContent(ctx, repo, article.Content, account.UserID)
		if err != nil {
			return err
		}

		if err := repo.Article.Create(ctx, &article); err != nil {
			return err
		}

		if err := repo.Article.AddHashtags(ctx, article.ID, article.HashtagIDs()); err != nil {
			return err
		}

		saved = article
		return nil
	})
	if err != nil {
		return dto.ArticleDto{}, err
	}

	logger.FromContext(ctx, s.log).WithField("article_id", saved.ID).Info("article created")

	return dto.ArticleFromEntity(saved), nil
}

// UpdateArticle applies the non-nil fields of update and reconciles hashtags
// with the resulting content. A missing article is logged and ignored.
func (s *articleService) UpdateArticle(ctx context.Context, articleID int64, update dto.ArticleUpdateDto) error {
	log := logger.FromContext(ctx, s.log).WithField("article_id", articleID)

	err := s.store.InTx(ctx, func(repo *repository.Repository) error {
		article, err := s.loadArticle(ctx, repo, articleID)
		if err != nil {
			return err
		}

		if !article.OwnedBy(update.UserID) {
			return ErrForbidden
		}

		if update.Title != nil {
			article.Title = *update.Title
		}
		if update.Content != nil {
			article.Content = *update.Content
		}
		article.ModifiedBy = update.UserID

		if err := repo.Article.Update(ctx, article); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return &ArticleNotFoundError{ID: articleID}
			}
			return err
		}

		return s.reconcileHashtags(ctx, repo, article, update.UserID)
	})

	var notFound *ArticleNotFoundError
	if errors.As(err, &notFound) {
		log.WithError(err).Info("article update skipped, article does not exist")
		return nil
	}
	if err != nil {
		return err
	}

	log.Info("article updated")
	return nil
}

// reconcileHashtags makes the article's hashtag set match its content and
// removes previously held hashtags that no article references any more.
func (s *articleService) reconcileHashtags(ctx context.Context, repo *repository.Repository, article *models.Article, userID string) error {
	previous := article.HashtagIDs()

	renewed, err := s.renewHashtagsFromContent(ctx, repo, article.Content, userID)
	if err != nil {
		return err
	}

	if err := repo.Article.ClearHashtags(ctx, article.ID); err != nil {
		return err
	}

	keep := make(map[int64]struct{}, len(renewed))
	for _, h := range renewed {
		keep[h.ID] = struct{}{}
	}

	hashtags := s.hashtags.WithRepository(repo.Hashtag)
	for _, id := range previous {
		if _, ok := keep[id]; ok {
			continue
		}
		if err := hashtags.DeleteHashtagWithoutArticles(ctx, id); err != nil {
			return err
		}
	}

	article.Hashtags = renewed
	return repo.Article.AddHashtags(ctx, article.ID, article.HashtagIDs())
}

// renewHashtagsFromContent returns one persisted hashtag per name parsed from
// content, reusing existing rows and inserting the missing ones.
func (s *articleService) renewHashtagsFromContent(ctx context.Context, repo *repository.Repository, content, userID string) ([]models.Hashtag, error) {
	hashtags := s.hashtags.WithRepository(repo.Hashtag)

	names := hashtags.ParseHashtagNames(content)
	if len(names) == 0 {
		return []models.Hashtag{}, nil
	}

	existing, err := hashtags.FindHashtagsByNames(ctx, names)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(existing))
	for _, h := range existing {
		known[h.HashtagName] = struct{}{}
	}

	result := existing
	for _, name := range names {
		if _, ok := known[name]; ok {
			continue
		}

		hashtag := models.Hashtag{
			HashtagName: name,
			AuditFields: models.AuditFields{CreatedBy: userID, ModifiedBy: userID},
		}
		if err := repo.Hashtag.Save(ctx, &hashtag); err != nil {
			return nil, err
		}
		result = append(result, hashtag)
	}

	return result, nil
}

// DeleteArticle removes an article owned by userID together with hashtags it
// leaves orphaned. Image objects are removed from storage after commit.
func (s *articleService) DeleteArticle(ctx context.Context, articleID int64, userID string) error {
	var images []models.ArticleImage

	err := s.store.InTx(ctx, func(repo *repository.Repository) error {
		article, err := s.loadArticle(ctx, repo, articleID)
		if err != nil {
			return err
		}

		if !article.OwnedBy(userID) {
			return ErrForbidden
		}

		if images, err = repo.Image.GetByArticleID(ctx, articleID); err != nil {
			return err
		}

		deleted, err := repo.Article.DeleteByIDAndUserID(ctx, articleID, userID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return &ArticleNotFoundError{ID: articleID}
		}

		hashtags := s.hashtags.WithRepository(repo.Hashtag)
		for _, id := range article.HashtagIDs() {
			if err := hashtags.DeleteHashtagWithoutArticles(ctx, id); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	log := logger.FromContext(ctx, s.log).WithField("article_id", articleID)
	for _, img := range images {
		if err := s.storage.DeleteImage(ctx, img.ObjectName); err != nil {
			log.WithError(err).WithField("object", img.ObjectName).Warn("failed to remove image object")
		}
	}

	log.Info("article deleted")
	return nil
}

func (s *articleService) GetHashtags(ctx context.Context) ([]string, error) {
	return s.hashtags.GetHashtagNames(ctx)
}

func (s *articleService) GetArticleCount(ctx context.Context) (int64, error) {
	return s.store.Repos().Article.Count(ctx)
}
