// Package dto contains the immutable projections handed across the service
// boundary and the pure functions converting them to and from entities.
package dto

import (
	"sort"
	"time"

	"noticeboard/internal/models"
)

type UserAccountDto struct {
	UserID       string    `json:"userId"`
	UserPassword string    `json:"-"`
	Email        string    `json:"email"`
	Nickname     string    `json:"nickname"`
	Memo         string    `json:"memo"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatedBy    string    `json:"createdBy"`
	ModifiedAt   time.Time `json:"modifiedAt"`
	ModifiedBy   string    `json:"modifiedBy"`
}

type HashtagDto struct {
	ID          int64     `json:"id"`
	HashtagName string    `json:"hashtagName"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
	ModifiedAt  time.Time `json:"modifiedAt"`
	ModifiedBy  string    `json:"modifiedBy"`
}

type ArticleDto struct {
	ID          int64          `json:"id"`
	UserAccount UserAccountDto `json:"userAccount"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Hashtags    []HashtagDto   `json:"hashtags"`
	CreatedAt   time.Time      `json:"createdAt"`
	CreatedBy   string         `json:"createdBy"`
	ModifiedAt  time.Time      `json:"modifiedAt"`
	ModifiedBy  string         `json:"modifiedBy"`
}

// ArticleUpdateDto is a partial update; nil fields are left unchanged.
type ArticleUpdateDto struct {
	UserID  string
	Title   *string
	Content *string
}

type ArticleCommentDto struct {
	ID          int64          `json:"id"`
	ArticleID   int64          `json:"articleId"`
	UserAccount UserAccountDto `json:"userAccount"`
	Content     string         `json:"content"`
	CreatedAt   time.Time      `json:"createdAt"`
	CreatedBy   string         `json:"createdBy"`
	ModifiedAt  time.Time      `json:"modifiedAt"`
	ModifiedBy  string         `json:"modifiedBy"`
}

type ArticleImageDto struct {
	ImageID   string    `json:"imageId"`
	ArticleID int64     `json:"articleId"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

type ArticleWithCommentsDto struct {
	ID          int64               `json:"id"`
	UserAccount UserAccountDto      `json:"userAccount"`
	Comments    []ArticleCommentDto `json:"comments"`
	Title       string              `json:"title"`
	Content     string              `json:"content"`
	Hashtags    []HashtagDto        `json:"hashtags"`
	Images      []ArticleImageDto   `json:"images"`
	CreatedAt   time.Time           `json:"createdAt"`
	CreatedBy   string              `json:"createdBy"`
	ModifiedAt  time.Time           `json:"modifiedAt"`
	ModifiedBy  string              `json:"modifiedBy"`
}

func UserAccountFromEntity(e models.UserAccount) UserAccountDto {
	return UserAccountDto{
		UserID:       e.UserID,
		UserPassword: e.UserPassword,
		Email:        e.Email,
		Nickname:     e.Nickname,
		Memo:         e.Memo,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
		ModifiedAt:   e.ModifiedAt,
		ModifiedBy:   e.ModifiedBy,
	}
}

func (d UserAccountDto) ToEntity() models.UserAccount {
	return models.UserAccount{
		UserID:       d.UserID,
		UserPassword: d.UserPassword,
		Email:        d.Email,
		Nickname:     d.Nickname,
		Memo:         d.Memo,
		AuditFields: models.AuditFields{
			CreatedBy:  d.CreatedBy,
			ModifiedBy: d.ModifiedBy,
		},
	}
}

func HashtagFromEntity(e models.Hashtag) HashtagDto {
	return HashtagDto{
		ID:          e.ID,
		HashtagName: e.HashtagName,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
		ModifiedAt:  e.ModifiedAt,
		ModifiedBy:  e.ModifiedBy,
	}
}

// HashtagsFromEntities projects hashtags ordered by name.
func HashtagsFromEntities(hashtags []models.Hashtag) []HashtagDto {
	out := make([]HashtagDto, 0, len(hashtags))
	for _, h := range hashtags {
		out = append(out, HashtagFromEntity(h))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HashtagName < out[j].HashtagName })
	return out
}

func ArticleFromEntity(e models.Article) ArticleDto {
	return ArticleDto{
		ID:          e.ID,
		UserAccount: UserAccountFromEntity(e.UserAccount),
		Title:       e.Title,
		Content:     e.Content,
		Hashtags:    HashtagsFromEntities(e.Hashtags),
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
		ModifiedAt:  e.ModifiedAt,
		ModifiedBy:  e.ModifiedBy,
	}
}

// ToEntity builds a new, unsaved article owned by account. Hashtags are not
// copied; they are derived from the content by the service.
func (d ArticleDto) ToEntity(account models.UserAccount) models.Article {
	return models.Article{
		UserAccount: account,
		Title:       d.Title,
		Content:     d.Content,
		AuditFields: models.AuditFields{
			CreatedBy:  account.UserID,
			ModifiedBy: account.UserID,
		},
	}
}

func ArticleCommentFromEntity(e models.ArticleComment) ArticleCommentDto {
	return ArticleCommentDto{
		ID:          e.ID,
		ArticleID:   e.ArticleID,
		UserAccount: UserAccountFromEntity(e.UserAccount),
		Content:     e.Content,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
		ModifiedAt:  e.ModifiedAt,
		ModifiedBy:  e.ModifiedBy,
	}
}

func (d ArticleCommentDto) ToEntity(account models.UserAccount) models.ArticleComment {
	return models.ArticleComment{
		ArticleID:   d.ArticleID,
		UserAccount: account,
		Content:     d.Content,
		AuditFields: models.AuditFields{
			CreatedBy:  account.UserID,
			ModifiedBy: account.UserID,
		},
	}
}

func ArticleImageFromEntity(e models.ArticleImage) ArticleImageDto {
	return ArticleImageDto{
		ImageID:   e.ImageID,
		ArticleID: e.ArticleID,
		ImageURL:  e.ImageURL,
		CreatedAt: e.CreatedAt,
	}
}

// ArticleWithCommentsFromEntity projects the article with its comments
// (oldest first), hashtags and images.
func ArticleWithCommentsFromEntity(e models.Article) ArticleWithCommentsDto {
	comments := make([]ArticleCommentDto, 0, len(e.Comments))
	for _, c := range e.Comments {
		comments = append(comments, ArticleCommentFromEntity(c))
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})

	images := make([]ArticleImageDto, 0, len(e.Images))
	for _, img := range e.Images {
		images = append(images, ArticleImageFromEntity(img))
	}

	return ArticleWithCommentsDto{
		ID:          e.ID,
		UserAccount: UserAccountFromEntity(e.UserAccount),
		Comments:    comments,
		Title:       e.Title,
		Content:     e.Content,
		Hashtags:    HashtagsFromEntities(e.Hashtags),
		Images:      images,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
		ModifiedAt:  e.ModifiedAt,
		ModifiedBy:  e.ModifiedBy,
	}
}
