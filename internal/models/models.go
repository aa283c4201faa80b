package models

import (
	"time"
)

// AuditFields are carried by every entity.
type AuditFields struct {
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	CreatedBy  string    `json:"createdBy" db:"created_by"`
	ModifiedAt time.Time `json:"modifiedAt" db:"modified_at"`
	ModifiedBy string    `json:"modifiedBy" db:"modified_by"`
}

type UserAccount struct {
	UserID                string     `json:"userId" db:"user_id"`
	UserPassword          string     `json:"-" db:"user_password"`
	Email                 string     `json:"email" db:"email"`
	Nickname              string     `json:"nickname" db:"nickname"`
	Memo                  string     `json:"memo" db:"memo"`
	RefreshToken          string     `json:"-" db:"refresh_token"`
	RefreshTokenExpiresAt *time.Time `json:"-" db:"refresh_token_expires_at"`
	AuditFields
}

type Article struct {
	ID          int64            `json:"id" db:"id"`
	UserAccount UserAccount      `json:"userAccount" db:"user_account"`
	Title       string           `json:"title" db:"title"`
	Content     string           `json:"content" db:"content"`
	Hashtags    []Hashtag        `json:"hashtags" db:"-"`
	Comments    []ArticleComment `json:"comments" db:"-"`
	Images      []ArticleImage   `json:"images" db:"-"`
	AuditFields
}

// HashtagIDs returns the ids of the hashtags currently associated with the article.
func (a *Article) HashtagIDs() []int64 {
	ids := make([]int64, 0, len(a.Hashtags))
	for _, h := range a.Hashtags {
		ids = append(ids, h.ID)
	}
	return ids
}

// OwnedBy reports whether the article belongs to the given account.
func (a *Article) OwnedBy(userID string) bool {
	return userID != "" && a.UserAccount.UserID == userID
}

type Hashtag struct {
	ID          int64  `json:"id" db:"id"`
	HashtagName string `json:"hashtagName" db:"hashtag_name"`
	AuditFields
}

type ArticleComment struct {
	ID          int64       `json:"id" db:"id"`
	ArticleID   int64       `json:"articleId" db:"article_id"`
	UserAccount UserAccount `json:"userAccount" db:"user_account"`
	Content     string      `json:"content" db:"content"`
	AuditFields
}

type ArticleImage struct {
	ImageID    string    `json:"imageId" db:"image_id"`
	ArticleID  int64     `json:"articleId" db:"article_id"`
	ObjectName string    `json:"-" db:"object_name"`
	ImageURL   string    `json:"imageUrl" db:"image_url"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
