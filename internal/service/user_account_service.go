package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"noticeboard/internal/dto"
	"noticeboard/internal/repository"
)

// UserAccountService backs the admin member views.
type UserAccountService interface {
	GetUserAccount(ctx context.Context, userID string) (dto.UserAccountDto, error)
	ListUserAccounts(ctx context.Context) ([]dto.UserAccountDto, error)
	DeleteUserAccount(ctx context.Context, userID string) error
}

type userAccountService struct {
	userRepo repository.UserAccountRepository
	log      logrus.FieldLogger
}

func NewUserAccountService(userRepo repository.UserAccountRepository, log logrus.FieldLogger) UserAccountService {
	return &userAccountService{
		userRepo: userRepo,
		log:      log,
	}
}

func (s *userAccountService) GetUserAccount(ctx context.Context, userID string) (dto.UserAccountDto, error) {
	account, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.UserAccountDto{}, ErrUserAccountNotFound
		}
		return dto.UserAccountDto{}, err
	}

	return dto.UserAccountFromEntity(*account), nil
}

func (s *userAccountService) ListUserAccounts(ctx context.Context) ([]dto.UserAccountDto, error) {
	accounts, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserAccountDto, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, dto.UserAccountFromEntity(a))
	}
	return out, nil
}

// DeleteUserAccount removes the account. Its articles and comments go with it
// through the foreign key cascade.
func (s *userAccountService) DeleteUserAccount(ctx context.Context, userID string) error {
	err := s.userRepo.Delete(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserAccountNotFound
		}
		return err
	}

	s.log.WithField("user_id", userID).Info("user account deleted")
	return nil
}
