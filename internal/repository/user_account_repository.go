package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"noticeboard/internal/models"
)

type userAccountRepository struct {
	db Querier
}

func NewUserAccountRepository(db Querier) UserAccountRepository {
	return &userAccountRepository{db: db}
}

const userAccountColumns = `user_id, user_password, email, nickname, memo, refresh_token, refresh_token_expires_at,
	created_at, created_by, modified_at, modified_by`

func (r *userAccountRepository) Create(ctx context.Context, account *models.UserAccount, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	account.UserPassword = string(hashedPassword)

	if account.CreatedBy == "" {
		account.CreatedBy = account.UserID
	}
	if account.ModifiedBy == "" {
		account.ModifiedBy = account.UserID
	}

	query := `
		INSERT INTO user_accounts (user_id, user_password, email, nickname, memo, created_by, modified_by)
		VALUES (:user_id, :user_password, :email, :nickname, :memo, :created_by, :modified_by)
	`

	if _, err := r.db.NamedExecContext(ctx, query, account); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create user account: %w", err)
	}

	return nil
}

func (r *userAccountRepository) FindByID(ctx context.Context, userID string) (*models.UserAccount, error) {
	var account models.UserAccount

	query := `SELECT ` + userAccountColumns + ` FROM user_accounts WHERE user_id = $1`

	if err := r.db.GetContext(ctx, &account, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user account %s: %w", userID, err)
	}

	return &account, nil
}

func (r *userAccountRepository) FindAll(ctx context.Context) ([]models.UserAccount, error) {
	accounts := []models.UserAccount{}

	query := `SELECT ` + userAccountColumns + ` FROM user_accounts ORDER BY created_at DESC, user_id`

	if err := r.db.SelectContext(ctx, &accounts, query); err != nil {
		return nil, fmt.Errorf("list user accounts: %w", err)
	}

	return accounts, nil
}

func (r *userAccountRepository) Delete(ctx context.Context, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM user_accounts WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete user account %s: %w", userID, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// VerifyPassword loads the account and compares password with the stored
// bcrypt hash. A wrong password yields bcrypt.ErrMismatchedHashAndPassword.
func (r *userAccountRepository) VerifyPassword(ctx context.Context, userID, password string) (*models.UserAccount, error) {
	account, err := r.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.UserPassword), []byte(password)); err != nil {
		return nil, err
	}

	return account, nil
}

func (r *userAccountRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiresAt time.Time) error {
	query := `
		UPDATE user_accounts
		SET refresh_token = $1, refresh_token_expires_at = $2, modified_at = now()
		WHERE user_id = $3
	`

	result, err := r.db.ExecContext(ctx, query, refreshToken, expiresAt, userID)
	if err != nil {
		return fmt.Errorf("update refresh token: %w", err)
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

func (r *userAccountRepository) FindByRefreshToken(ctx context.Context, refreshToken string) (*models.UserAccount, error) {
	var account models.UserAccount

	query := `SELECT ` + userAccountColumns + ` FROM user_accounts WHERE refresh_token = $1 AND refresh_token <> ''`

	if err := r.db.GetContext(ctx, &account, query, refreshToken); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user account by refresh token: %w", err)
	}

	return &account, nil
}
