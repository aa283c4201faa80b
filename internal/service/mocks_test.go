package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"noticeboard/internal/models"
	"noticeboard/internal/pagination"
	"noticeboard/internal/repository"
)

type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) page(args mock.Arguments) (pagination.Page[models.Article], error) {
	return args.Get(0).(pagination.Page[models.Article]), args.Error(1)
}

func (m *MockArticleRepository) FindAll(ctx context.Context, page pagination.Params) (pagination.Page[models.Article], error) {
	return m.page(m.Called(ctx, page))
}

func (m *MockArticleRepository) FindByTitleContaining(ctx context.Context, title string, page pagination.Params) (pagination.Page[models.Article], error) {
	return m.page(m.Called(ctx, title, page))
}

func (m *MockArticleRepository) FindByContentContaining(ctx context.Context, content string, page pagination.Params) (pagination.Page[models.Article], error) {
	return m.page(m.Called(ctx, content, page))
}

func (m *MockArticleRepository) FindByUserIDContaining(ctx context.Context, userID string, page pagination.Params) (pagination.Page[models.Article], error) {
	return m.page(m.Called(ctx, userID, page))
}

func (m *MockArticleRepository) FindByNicknameContaining(ctx context.Context, nickname string, page pagination.Params) (pagination.Page[models.Article], error) {
	return m.page(m.Called(ctx, nickname, page))
}

func (m *MockArticleRepository) FindByHashtagNames(ctx context.Context, names []string, page pagination.Params) (pagination.Page[models.Article], error) {
	return m.page(m.Called(ctx, names, page))
}

func (m *MockArticleRepository) FindByID(ctx context.Context, id int64) (*models.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	return m.Called(ctx, article).Error(0)
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	return m.Called(ctx, article).Error(0)
}

func (m *MockArticleRepository) DeleteByIDAndUserID(ctx context.Context, id int64, userID string) (int64, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockArticleRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockArticleRepository) AddHashtags(ctx context.Context, articleID int64, hashtagIDs []int64) error {
	return m.Called(ctx, articleID, hashtagIDs).Error(0)
}

func (m *MockArticleRepository) ClearHashtags(ctx context.Context, articleID int64) error {
	return m.Called(ctx, articleID).Error(0)
}

type MockHashtagRepository struct {
	mock.Mock
}

func (m *MockHashtagRepository) FindByNames(ctx context.Context, names []string) ([]models.Hashtag, error) {
	args := m.Called(ctx, names)
	return args.Get(0).([]models.Hashtag), args.Error(1)
}

func (m *MockHashtagRepository) FindByArticleID(ctx context.Context, articleID int64) ([]models.Hashtag, error) {
	args := m.Called(ctx, articleID)
	return args.Get(0).([]models.Hashtag), args.Error(1)
}

func (m *MockHashtagRepository) FindByArticleIDs(ctx context.Context, articleIDs []int64) (map[int64][]models.Hashtag, error) {
	args := m.Called(ctx, articleIDs)
	return args.Get(0).(map[int64][]models.Hashtag), args.Error(1)
}

func (m *MockHashtagRepository) FindAllHashtagNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockHashtagRepository) Save(ctx context.Context, hashtag *models.Hashtag) error {
	return m.Called(ctx, hashtag).Error(0)
}

func (m *MockHashtagRepository) DeleteIfOrphaned(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockHashtagRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserAccountRepository struct {
	mock.Mock
}

func (m *MockUserAccountRepository) Create(ctx context.Context, account *models.UserAccount, password string) error {
	return m.Called(ctx, account, password).Error(0)
}

func (m *MockUserAccountRepository) FindByID(ctx context.Context, userID string) (*models.UserAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserAccount), args.Error(1)
}

func (m *MockUserAccountRepository) FindAll(ctx context.Context) ([]models.UserAccount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.UserAccount), args.Error(1)
}

func (m *MockUserAccountRepository) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockUserAccountRepository) VerifyPassword(ctx context.Context, userID, password string) (*models.UserAccount, error) {
	args := m.Called(ctx, userID, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserAccount), args.Error(1)
}

func (m *MockUserAccountRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiresAt time.Time) error {
	return m.Called(ctx, userID, refreshToken, expiresAt).Error(0)
}

func (m *MockUserAccountRepository) FindByRefreshToken(ctx context.Context, refreshToken string) (*models.UserAccount, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserAccount), args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) FindByArticleID(ctx context.Context, articleID int64) ([]models.ArticleComment, error) {
	args := m.Called(ctx, articleID)
	return args.Get(0).([]models.ArticleComment), args.Error(1)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id int64) (*models.ArticleComment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ArticleComment), args.Error(1)
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.ArticleComment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockCommentRepository) DeleteByIDAndUserID(ctx context.Context, id int64, userID string) (int64, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) Create(ctx context.Context, image *models.ArticleImage) error {
	return m.Called(ctx, image).Error(0)
}

func (m *MockImageRepository) GetByImageID(ctx context.Context, imageID string) (*models.ArticleImage, error) {
	args := m.Called(ctx, imageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ArticleImage), args.Error(1)
}

func (m *MockImageRepository) GetByArticleID(ctx context.Context, articleID int64) ([]models.ArticleImage, error) {
	args := m.Called(ctx, articleID)
	return args.Get(0).([]models.ArticleImage), args.Error(1)
}

func (m *MockImageRepository) Delete(ctx context.Context, imageID string) error {
	return m.Called(ctx, imageID).Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadImage(ctx context.Context, articleID int64, fileName string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, articleID, fileName, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockStorage) DeleteImage(ctx context.Context, objectName string) error {
	return m.Called(ctx, objectName).Error(0)
}

type MockHashtagMetrics struct {
	mock.Mock
}

func (m *MockHashtagMetrics) RecordHashtagsDeleted(reason string, n int64) {
	m.Called(reason, n)
}

// fakeStore hands the same mocked repositories to direct and transactional
// callers and records how transactions ended.
type fakeStore struct {
	repo      *repository.Repository
	commits   int
	rollbacks int
}

func (s *fakeStore) Repos() *repository.Repository {
	return s.repo
}

func (s *fakeStore) InTx(_ context.Context, fn func(repo *repository.Repository) error) error {
	if err := fn(s.repo); err != nil {
		s.rollbacks++
		return err
	}
	s.commits++
	return nil
}

type mocks struct {
	articles *MockArticleRepository
	hashtags *MockHashtagRepository
	users    *MockUserAccountRepository
	comments *MockCommentRepository
	images   *MockImageRepository
	storage  *MockStorage
	store    *fakeStore
}

func newMocks() *mocks {
	m := &mocks{
		articles: new(MockArticleRepository),
		hashtags: new(MockHashtagRepository),
		users:    new(MockUserAccountRepository),
		comments: new(MockCommentRepository),
		images:   new(MockImageRepository),
		storage:  new(MockStorage),
	}
	m.store = &fakeStore{repo: &repository.Repository{
		Article:     m.articles,
		Hashtag:     m.hashtags,
		UserAccount: m.users,
		Comment:     m.comments,
		Image:       m.images,
	}}
	return m
}
