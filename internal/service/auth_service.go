package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"noticeboard/internal/config"
	"noticeboard/internal/dto"
	"noticeboard/internal/models"
	"noticeboard/internal/repository"
)

type RegisterRequest struct {
	UserID   string `json:"userId" validate:"required,min=3,max=50,alphanum"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Nickname string `json:"nickname" validate:"max=100"`
	Memo     string `json:"memo" validate:"max=1000"`
}

// Tokens is the pair handed out on login and refresh.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (dto.UserAccountDto, error)
	Login(ctx context.Context, userID, password string) (dto.UserAccountDto, Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken string) (dto.UserAccountDto, Tokens, error)
	// ValidateToken checks the access token and returns the user id it was issued for.
	ValidateToken(tokenString string) (string, error)
}

type authService struct {
	userRepo repository.UserAccountRepository
	cfg      *config.Config
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserAccountRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (dto.UserAccountDto, error) {
	account := &models.UserAccount{
		UserID:   req.UserID,
		Email:    req.Email,
		Nickname: req.Nickname,
		Memo:     req.Memo,
	}

	if err := s.userRepo.Create(ctx, account, req.Password); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return dto.UserAccountDto{}, ErrDuplicateAccount
		}
		return dto.UserAccountDto{}, fmt.Errorf("register account: %w", err)
	}

	return dto.UserAccountFromEntity(*account), nil
}

func (s *authService) Login(ctx context.Context, userID, password string) (dto.UserAccountDto, Tokens, error) {
	account, err := s.userRepo.VerifyPassword(ctx, userID, password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return dto.UserAccountDto{}, Tokens{}, ErrInvalidCredentials
		}
		return dto.UserAccountDto{}, Tokens{}, fmt.Errorf("authenticate: %w", err)
	}

	tokens, err := s.issueTokens(ctx, account)
	if err != nil {
		return dto.UserAccountDto{}, Tokens{}, err
	}

	return dto.UserAccountFromEntity(*account), tokens, nil
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (dto.UserAccountDto, Tokens, error) {
	account, err := s.userRepo.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.UserAccountDto{}, Tokens{}, ErrInvalidToken
		}
		return dto.UserAccountDto{}, Tokens{}, fmt.Errorf("look up refresh token: %w", err)
	}

	if account.RefreshTokenExpiresAt == nil || s.now().After(*account.RefreshTokenExpiresAt) {
		return dto.UserAccountDto{}, Tokens{}, ErrInvalidToken
	}

	tokens, err := s.issueTokens(ctx, account)
	if err != nil {
		return dto.UserAccountDto{}, Tokens{}, err
	}

	return dto.UserAccountFromEntity(*account), tokens, nil
}

func (s *authService) issueTokens(ctx context.Context, account *models.UserAccount) (Tokens, error) {
	accessToken, err := s.generateAccessToken(account)
	if err != nil {
		return Tokens{}, err
	}

	refreshToken := uuid.New().String()
	expiresAt := s.now().Add(s.cfg.RefreshTokenDuration)

	if err := s.userRepo.UpdateRefreshToken(ctx, account.UserID, refreshToken, expiresAt); err != nil {
		return Tokens{}, fmt.Errorf("store refresh token: %w", err)
	}

	return Tokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *authService) generateAccessToken(account *models.UserAccount) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"userId":   account.UserID,
		"nickname": account.Nickname,
		"exp":      now.Add(s.cfg.AccessTokenDuration).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}

	return tokenString, nil
}

func (s *authService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}

	return userID, nil
}
