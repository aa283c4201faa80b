package handlers

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"noticeboard/internal/dto"
	"noticeboard/internal/models"
	"noticeboard/internal/pagination"
	"noticeboard/internal/service"
)

type MockArticleService struct {
	mock.Mock
}

func (m *MockArticleService) SearchArticles(ctx context.Context, searchType models.SearchType, keyword string, page pagination.Params) (pagination.Page[dto.ArticleDto], error) {
	args := m.Called(ctx, searchType, keyword, page)
	return args.Get(0).(pagination.Page[dto.ArticleDto]), args.Error(1)
}

func (m *MockArticleService) SearchArticlesViaHashtag(ctx context.Context, hashtagName string, page pagination.Params) (pagination.Page[dto.ArticleDto], error) {
	args := m.Called(ctx, hashtagName, page)
	return args.Get(0).(pagination.Page[dto.ArticleDto]), args.Error(1)
}

func (m *MockArticleService) GetArticle(ctx context.Context, articleID int64) (dto.ArticleDto, error) {
	args := m.Called(ctx, articleID)
	return args.Get(0).(dto.ArticleDto), args.Error(1)
}

func (m *MockArticleService) GetArticleWithComments(ctx context.Context, articleID int64) (dto.ArticleWithCommentsDto, error) {
	args := m.Called(ctx, articleID)
	return args.Get(0).(dto.ArticleWithCommentsDto), args.Error(1)
}

func (m *MockArticleService) SaveArticle(ctx context.Context, article dto.ArticleDto) (dto.ArticleDto, error) {
	args := m.Called(ctx, article)
	return args.Get(0).(dto.ArticleDto), args.Error(1)
}

func (m *MockArticleService) UpdateArticle(ctx context.Context, articleID int64, update dto.ArticleUpdateDto) error {
	args := m.Called(ctx, articleID, update)
	return args.Error(0)
}

func (m *MockArticleService) DeleteArticle(ctx context.Context, articleID int64, userID string) error {
	args := m.Called(ctx, articleID, userID)
	return args.Error(0)
}

func (m *MockArticleService) GetHashtags(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockArticleService) GetArticleCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) SearchArticleComments(ctx context.Context, articleID int64) ([]dto.ArticleCommentDto, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ArticleCommentDto), args.Error(1)
}

func (m *MockCommentService) SaveArticleComment(ctx context.Context, comment dto.ArticleCommentDto) (dto.ArticleCommentDto, error) {
	args := m.Called(ctx, comment)
	return args.Get(0).(dto.ArticleCommentDto), args.Error(1)
}

func (m *MockCommentService) DeleteArticleComment(ctx context.Context, commentID int64, userID string) error {
	args := m.Called(ctx, commentID, userID)
	return args.Error(0)
}

type MockUserAccountService struct {
	mock.Mock
}

func (m *MockUserAccountService) GetUserAccount(ctx context.Context, userID string) (dto.UserAccountDto, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(dto.UserAccountDto), args.Error(1)
}

func (m *MockUserAccountService) ListUserAccounts(ctx context.Context) ([]dto.UserAccountDto, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.UserAccountDto), args.Error(1)
}

func (m *MockUserAccountService) DeleteUserAccount(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req service.RegisterRequest) (dto.UserAccountDto, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(dto.UserAccountDto), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, userID, password string) (dto.UserAccountDto, service.Tokens, error) {
	args := m.Called(ctx, userID, password)
	return args.Get(0).(dto.UserAccountDto), args.Get(1).(service.Tokens), args.Error(2)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (dto.UserAccountDto, service.Tokens, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(dto.UserAccountDto), args.Get(1).(service.Tokens), args.Error(2)
}

func (m *MockAuthService) ValidateToken(tokenString string) (string, error) {
	args := m.Called(tokenString)
	return args.String(0), args.Error(1)
}

type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) AddImage(ctx context.Context, articleID int64, userID, fileName string, file io.Reader, size int64) (dto.ArticleImageDto, error) {
	args := m.Called(ctx, articleID, userID, fileName, file, size)
	return args.Get(0).(dto.ArticleImageDto), args.Error(1)
}

func (m *MockImageService) DeleteImage(ctx context.Context, articleID int64, imageID, userID string) error {
	args := m.Called(ctx, articleID, imageID, userID)
	return args.Error(0)
}
