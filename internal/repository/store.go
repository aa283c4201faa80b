package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Transactor gives services access to repositories, either directly on the
// pool or bound to a single transaction.
type Transactor interface {
	Repos() *Repository
	InTx(ctx context.Context, fn func(repo *Repository) error) error
}

type Store struct {
	db   *sqlx.DB
	repo *Repository
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, repo: NewRepository(db)}
}

func (s *Store) Repos() *Repository {
	return s.repo
}

// InTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise, including on panic.
func (s *Store) InTx(ctx context.Context, fn func(repo *Repository) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(NewRepository(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
