package service

import (
	"errors"
	"fmt"
)

var (
	ErrArticleNotFound     = errors.New("article not found")
	ErrForbidden           = errors.New("forbidden: resource belongs to another account")
	ErrUserAccountNotFound = errors.New("user account not found")
	ErrCommentNotFound     = errors.New("comment not found")
	ErrImageNotFound       = errors.New("image not found")
	ErrUnknownSearchType   = errors.New("unknown search type")
	ErrInvalidCredentials  = errors.New("invalid user id or password")
	ErrDuplicateAccount    = errors.New("user id or email already registered")
	ErrInvalidToken        = errors.New("invalid or expired token")
)

// ArticleNotFoundError carries the id of the missing article and matches
// ErrArticleNotFound with errors.Is.
type ArticleNotFoundError struct {
	ID int64
}

func (e *ArticleNotFoundError) Error() string {
	return fmt.Sprintf("article not found - articleId: %d", e.ID)
}

func (e *ArticleNotFoundError) Is(target error) bool {
	return target == ErrArticleNotFound
}
