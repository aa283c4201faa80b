package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"noticeboard/internal/dto"
	"noticeboard/internal/models"
	"noticeboard/internal/pagination"
	"noticeboard/internal/repository"
)

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newArticleService(m *mocks, metrics HashtagMetrics) ArticleService {
	log := testLogger()
	return NewArticleService(m.store, NewHashtagService(m.hashtags, metrics, log), m.storage, log)
}

func account(userID string) models.UserAccount {
	return models.UserAccount{UserID: userID, Email: userID + "@mail.com", Nickname: "nick-" + userID}
}

func article(id int64, owner, title, content string, hashtags ...models.Hashtag) *models.Article {
	return &models.Article{
		ID:          id,
		UserAccount: account(owner),
		Title:       title,
		Content:     content,
		Hashtags:    hashtags,
		AuditFields: models.AuditFields{CreatedAt: time.Now(), CreatedBy: owner, ModifiedBy: owner},
	}
}

func hashtag(id int64, name string) models.Hashtag {
	return models.Hashtag{ID: id, HashtagName: name}
}

func hashtagNames(hashtags []dto.HashtagDto) []string {
	names := make([]string, 0, len(hashtags))
	for _, h := range hashtags {
		names = append(names, h.HashtagName)
	}
	return names
}

var firstPage = pagination.Params{Page: 1, Limit: 10}

func TestArticleService_SearchArticles_BlankKeywordReturnsAll(t *testing.T) {
	m := newMocks()
	svc := newArticleService(m, nil)
	ctx := context.Background()

	articles := []models.Article{*article(2, "uno", "second", "b"), *article(1, "dos", "first", "a #go")}
	m.articles.On("FindAll", ctx, firstPage).Return(pagination.NewPage(articles, firstPage, 2), nil)
	m.hashtags.On("FindByArticleIDs", ctx, []int64{2, 1}).
		Return(map[int64][]models.Hashtag{1: {hashtag(5, "go")}}, nil)

	result, err := svc.SearchArticles(ctx, models.SearchTypeTitle, "   ", firstPage)

	require.NoError(t, err)
	require.Len(t, result.Content, 2)
	assert.Equal(t, int64(2), result.Pagination.Total)
	assert.Empty(t, result.Content[0].Hashtags)
	assert.Equal(t, []string{"go"}, hashtagNames(result.Content[1].Hashtags))
	m.articles.AssertExpectations(t)
}

func TestArticleService_SearchArticles_Dispatch(t *testing.T) {
	tests := []struct {
		name       string
		searchType models.SearchType
		keyword    string
		method     string
		arg        interface{}
	}{
		{"title", models.SearchTypeTitle, "spring", "FindByTitleContaining", "spring"},
		{"content", models.SearchTypeContent, "body", "FindByContentContaining", "body"},
		{"user id", models.SearchTypeID, "uno", "FindByUserIDContaining", "uno"},
		{"nickname", models.SearchTypeNickname, "nick", "FindByNicknameContaining", "nick"},
		{"hashtag", models.SearchTypeHashtag, "foo #bar  foo", "FindByHashtagNames", []string{"foo", "bar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocks()
			svc := newArticleService(m, nil)
			ctx := context.Background()

			m.articles.On(tt.method, ctx, tt.arg, firstPage).
				Return(pagination.Empty[models.Article](firstPage), nil)

			result, err := svc.SearchArticles(ctx, tt.searchType, tt.keyword, firstPage)

			require.NoError(t, err)
			assert.Empty(t, result.Content)
			m.articles.AssertExpectations(t)
			m.hashtags.AssertNotCalled(t, "FindByArticleIDs", mock.Anything, mock.Anything)
		})
	}
}

func TestArticleService_SearchArticles_UnknownType(t *testing.T) {
	m := newMocks()
	svc := newArticleService(m, nil)

	_, err := svc.SearchArticles(context.Background(), models.SearchType(99), "x", firstPage)

	assert.ErrorIs(t, err, ErrUnknownSearchType)
}

func TestArticleService_SearchArticlesViaHashtag(t *testing.T) {
	m := newMocks()
	svc := newArticleService(m, nil)
	ctx := context.Background()

	empty, err := svc.SearchArticlesViaHashtag(ctx, "  ", firstPage)
	require.NoError(t, err)
	assert.Empty(t, empty.Content)
	m.articles.AssertNotCalled(t, "FindByHashtagNames", mock.Anything, mock.Anything, mock.Anything)

	articles := []models.Article{*article(1, "uno", "t", "#java")}
	m.articles.On("FindByHashtagNames", ctx, []string{"java"}, firstPage).
		Return(pagination.NewPage(articles, firstPage, 1), nil)
	m.hashtags.On("FindByArticleIDs", ctx, []int64{1}).
		Return(map[int64][]models.Hashtag{1: {hashtag(3, "java")}}, nil)

	result, err := svc.SearchArticlesViaHashtag(ctx, "#java", firstPage)

	require.NoError(t, err)
	require.Len(t, result.Content, 1)
	assert.Equal(t, []string{"java"}, hashtagNames(result.Content[0].Hashtags))
}

func TestArticleService_GetArticle(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		m := newMocks()
		svc := newArticleService(m, nil)

		m.articles.On("FindByID", ctx, int64(1)).Return(article(1, "uno", "title", "content #go"), nil)
		m.hashtags.On("FindByArticleID", ctx, int64(1)).Return([]models.Hashtag{hashtag(5, "go")}, nil)

		got, err := svc.GetArticle(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, "title", got.Title)
		assert.Equal(t, "content #go", got.Content)
		assert.Equal(t, "uno", got.UserAccount.UserID)
		assert.Equal(t, []string{"go"}, hashtagNames(got.Hashtags))
	})

	t.Run("not found carries id", func(t *testing.T) {
		m := newMocks()
		svc := newArticleService(m, nil)

		m.articles.On("FindByID", ctx, int64(404)).Return(nil, repository.ErrNotFound)

		_, err := svc.GetArticle(ctx, 404)

		require.ErrorIs(t, err, ErrArticleNotFound)
		var notFound *ArticleNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, int64(404), notFound.ID)
		assert.Contains(t, err.Error(), "404")
	})
}

func TestArticleService_GetArticleWithComments(t *testing.T) {
	m := newMocks()
	svc := newArticleService(m, nil)
	ctx := context.Background()
	now := time.Now()

	m.articles.On("FindByID", ctx, int64(1)).Return(article(1, "uno", "title", "content"), nil)
	m.hashtags.On("FindByArticleID", ctx, int64(1)).Return([]models.Hashtag{}, nil)
	m.comments.On("FindByArticleID", ctx, int64(1)).Return([]models.ArticleComment{
		{ID: 2, ArticleID: 1, Content: "later", AuditFields: models.AuditFields{CreatedAt: now}},
		{ID: 1, ArticleID: 1, Content: "earlier", AuditFields: models.AuditFields{CreatedAt: now.Add(-time.Hour)}},
	}, nil)
	m.images.On("GetByArticleID", ctx, int64(1)).Return([]models.ArticleImage{{ImageID: "img", ArticleID: 1}}, nil)

	got, err := svc.GetArticleWithComments(ctx, 1)

	require.NoError(t, err)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, "earlier", got.Comments[0].Content)
	assert.Len(t, got.Images, 1)
}

func TestArticleService_SaveArticle(t *testing.T) {
	ctx := context.Background()

	t.Run("stores article with parsed hashtags", func(t *testing.T) {
		m := newMocks()
		svc := newArticleService(m, nil)
		owner := account("uno")

		m.users.On("FindByID", ctx, "uno").Return(&owner, nil)
		m.hashtags.On("FindByNames", ctx, []string{"java", "spring"}).Return([]models.Hashtag{hashtag(1, "java")}, nil)
		m.hashtags.On("Save", ctx, mock.MatchedBy(func(h *models.Hashtag) bool { return h.HashtagName == "spring" })).
			Run(func(args mock.Arguments) { args.Get(1).(*models.Hashtag).ID = 2 }).
			Return(nil)
		m.articles.On("Create", ctx, mock.AnythingOfType("*models.Article")).
			Run(func(args mock.Arguments) { args.Get(1).(*models.Article).ID = 10 }).
			Return(nil)
		m.articles.On("AddHashtags", ctx, int64(10), []int64{1, 2}).Return(nil)

		saved, err := svc.SaveArticle(ctx, dto.ArticleDto{
			UserAccount: dto.UserAccountDto{UserID: "uno"},
			Title:       "new article",
			Content:     "learning #spring and #java",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(10), saved.ID)
		assert.Equal(t, "new article", saved.Title)
		assert.Equal(t, "learning #spring and #java", saved.Content)
		assert.Equal(t, []string{"java", "spring"}, hashtagNames(saved.Hashtags))
		assert.Equal(t, "uno", saved.CreatedBy)
		assert.Equal(t, 1, m.store.commits)
		m.hashtags.AssertExpectations(t)
		m.articles.AssertExpectations(t)
	})

	t.Run("unknown account", func(t *testing.T) {
		m := newMocks()
		svc := newArticleService(m, nil)

		m.users.On("FindByID", ctx, "ghost").Return(nil, repository.ErrNotFound)

		_, err := svc.SaveArticle(ctx, dto.ArticleDto{UserAccount: dto.UserAccountDto{UserID: "ghost"}, Title: "t", Content: "c"})

		assert.ErrorIs(t, err, ErrUserAccountNotFound)
		assert.Equal(t, 1, m.store.rollbacks)
		m.articles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestArticleService_UpdateArticle_TitleOnly(t *testing.T) {
	m := newMocks()
	svc := newArticleService(m, nil)
	ctx := context.Background()
	title := "new title"

	m.articles.On("FindByID", ctx, int64(1)).Return(article(1, "uno", "old title", "hello #foo"), nil)
	m.hashtags.On("FindByArticleID", ctx, int64(1)).Return([]models.Hashtag{hashtag(7, "foo")}, nil)
	m.articles.On("Update", ctx, mock.MatchedBy(func(a *models.Article) bool {
		return a.Title == "new title" && a.Content == "hello #foo" && a.ModifiedBy == "uno"
	})).Return(nil)
	m.hashtags.On("FindByNames", ctx, []string{"foo"}).Return([]models.Hashtag{hashtag(7, "foo")}, nil)
	m.articles.On("ClearHashtags", ctx, int64(1)).Return(nil)
	m.articles.On("AddHashtags", ctx, int64(1), []int64{7}).Return(nil)

	err := svc.UpdateArticle(ctx, 1, dto.ArticleUpdateDto{UserID: "uno", Title: &title})

	require.NoError(t, err)
	m.articles.AssertExpectations(t)
	m.hashtags.AssertNotCalled(t, "DeleteIfOrphaned", mock.Anything, mock.Anything)
	m.hashtags.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestArticleService_UpdateArticle_ReplacesHashtags(t *testing.T) {
	m := newMocks()
	metrics := new(MockHashtagMetrics)
	svc := newArticleService(m, metrics)
	ctx := context.Background()
	content := "hello #bar"

	m.articles.On("FindByID", ctx, int64(1)).Return(article(1, "uno", "t", "hello #foo"), nil)
	m.hashtags.On("FindByArticleID", ctx, int64(1)).Return([]models.Hashtag{hashtag(7, "foo")}, nil)
	m.articles.On("Update", ctx, mock.AnythingOfType("*models.Article")).Return(nil)
	m.hashtags.On("FindByNames", ctx, []string{"bar"}).Return([]models.Hashtag{}, nil)
	m.hashtags.On("Save", ctx, mock.MatchedBy(func(h *models.Hashtag) bool { return h.HashtagName == "bar" })).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Hashtag).ID = 8 }).
		Return(nil)
	m.articles.On("ClearHashtags", ctx, int64(1)).Return(nil)
	m.hashtags.On("DeleteIfOrphaned", ctx, int64(7)).Return(true, nil)
	metrics.On("RecordHashtagsDeleted", "reconcile", int64(1)).Return()
	m.articles.On("AddHashtags", ctx, int64(1), []int64{8}).Return(nil)

	err := svc.UpdateArticle(ctx, 1, dto.ArticleUpdateDto{UserID: "uno", Content: &content})

	require.NoError(t, err)
	m.articles.AssertExpectations(t)
	m.hashtags.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestArticleService_UpdateArticle_HashtagStillReferenced(t *testing.T) {
	m := newMocks()
	svc := newArticleService(m, nil)
	ctx := context.Background()
	content := "plain text"

	m.articles.On("FindByID", ctx, int64(1)).Return(article(1, "uno", "t", "hello #foo"), nil)
	m.hashtags.On("FindByArticleID", ctx, int64(1)).Return([]models.Hashtag{hashtag(7, "foo")}, nil)
	m.articles.On("Update", ctx, mock.AnythingOfType("*models.Article")).Return(nil)
	m.articles.On("ClearHashtags", ctx, int64(1)).Return(nil)
	m.hashtags.On("DeleteIfOrphaned", ctx, int64(7)).Return(false, nil)
	m.articles.On("AddHashtags", ctx, int64(1), []int64{}).Return(nil)

	require.NoError(t, svc.UpdateArticle(ctx, 1, dto.ArticleUpdateDto{UserID: "uno", Content: &content}))

	m.hashtags.AssertExpectations(t)
}

func TestArticleService_UpdateArticle_MissingArticleIsIgnored(t *testing.T) {
	m := newMocks()
	svc := newArticleService(m, nil)
	ctx := context.Background()
	title := "x"

	m.articles.On("FindByID", ctx, int64(9)).Return(nil, repository.ErrNotFound)

	err := svc.UpdateArticle(ctx, 9, dto.ArticleUpdateDto{UserID: "uno", Title: &title})

	assert.NoError(t, err)
	assert.Equal(t, 1, m.store.rollbacks)
	m.articles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestArticleService_UpdateArticle_Forbidden(t *testing.T) {
	m := newMocks()
	svc := newArticleService(m, nil)
	ctx := context.Background()
	title := "hijack"

	m.articles.On("FindByID", ctx, int64(1)).Return(article(1, "uno", "t", "c"), nil)
	m.hashtags.On("FindByArticleID", ctx, int64(1)).Return([]models.Hashtag{}, nil)

	err := svc.UpdateArticle(ctx, 1, dto.ArticleUpdateDto{UserID: "dos", Title: &title})

	assert.ErrorIs(t, err, ErrForbidden)
	m.articles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestArticleService_DeleteArticle(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes and orphans are cleaned", func(t *testing.T) {
		m := newMocks()
		metrics := new(MockHashtagMetrics)
		svc := newArticleService(m, metrics)

		m.articles.On("FindByID", ctx, int64(1)).Return(article(1, "uno", "t", "#foo #bar"), nil)
		m.hashtags.On("FindByArticleID", ctx, int64(1)).Return([]models.Hashtag{hashtag(1, "bar"), hashtag(2, "foo")}, nil)
		m.images.On("GetByArticleID", ctx, int64(1)).Return([]models.ArticleImage{{ImageID: "i", ObjectName: "articles/1/a.png"}}, nil)
		m.articles.On("DeleteByIDAndUserID", ctx, int64(1), "uno").Return(int64(1), nil)
		m.hashtags.On("DeleteIfOrphaned", ctx, int64(1)).Return(true, nil)
		m.hashtags.On("DeleteIfOrphaned", ctx, int64(2)).Return(false, nil)
		metrics.On("RecordHashtagsDeleted", "reconcile", int64(1)).Return()
		m.storage.On("DeleteImage", ctx, "articles/1/a.png").Return(errors.New("minio down"))

		err := svc.DeleteArticle(ctx, 1, "uno")

		require.NoError(t, err)
		assert.Equal(t, 1, m.store.commits)
		m.hashtags.AssertExpectations(t)
		m.storage.AssertExpectations(t)
		metrics.AssertNumberOfCalls(t, "RecordHashtagsDeleted", 1)
	})

	t.Run("other account is forbidden and nothing is touched", func(t *testing.T) {
		m := newMocks()
		svc := newArticleService(m, nil)

		m.articles.On("FindByID", ctx, int64(1)).Return(article(1, "uno", "t", "#foo"), nil)
		m.hashtags.On("FindByArticleID", ctx, int64(1)).Return([]models.Hashtag{hashtag(1, "foo")}, nil)

		err := svc.DeleteArticle(ctx, 1, "dos")

		assert.ErrorIs(t, err, ErrForbidden)
		m.articles.AssertNotCalled(t, "DeleteByIDAndUserID", mock.Anything, mock.Anything, mock.Anything)
		m.hashtags.AssertNotCalled(t, "DeleteIfOrphaned", mock.Anything, mock.Anything)
	})

	t.Run("missing article", func(t *testing.T) {
		m := newMocks()
		svc := newArticleService(m, nil)

		m.articles.On("FindByID", ctx, int64(5)).Return(nil, repository.ErrNotFound)

		err := svc.DeleteArticle(ctx, 5, "uno")

		assert.ErrorIs(t, err, ErrArticleNotFound)
	})
}

func TestArticleService_Auxiliary(t *testing.T) {
	m := newMocks()
	svc := newArticleService(m, nil)
	ctx := context.Background()

	m.hashtags.On("FindAllHashtagNames", ctx).Return([]string{"go", "java"}, nil)
	m.articles.On("Count", ctx).Return(int64(12), nil)

	names, err := svc.GetHashtags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "java"}, names)

	count, err := svc.GetArticleCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), count)
}
