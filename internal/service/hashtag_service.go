package service

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/sirupsen/logrus"

	"noticeboard/internal/metrics"
	"noticeboard/internal/models"
	"noticeboard/internal/repository"
)

var hashtagPattern = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)

// HashtagMetrics receives the number of hashtags removed for a reason.
type HashtagMetrics interface {
	RecordHashtagsDeleted(reason string, n int64)
}

type HashtagService interface {
	// ParseHashtagNames extracts #name tokens from content. Names are returned
	// without the leading '#', deduplicated and sorted.
	ParseHashtagNames(content string) []string
	FindHashtagsByNames(ctx context.Context, names []string) ([]models.Hashtag, error)
	// DeleteHashtagWithoutArticles removes the hashtag if no article references
	// it. Missing or still referenced hashtags are left alone.
	DeleteHashtagWithoutArticles(ctx context.Context, hashtagID int64) error
	DeleteOrphanedHashtags(ctx context.Context) (int64, error)
	GetHashtagNames(ctx context.Context) ([]string, error)
	// WithRepository returns a copy bound to repo, typically a transaction.
	WithRepository(repo repository.HashtagRepository) HashtagService
}

type hashtagService struct {
	repo    repository.HashtagRepository
	metrics HashtagMetrics
	log     logrus.FieldLogger
}

func NewHashtagService(repo repository.HashtagRepository, m HashtagMetrics, log logrus.FieldLogger) HashtagService {
	return &hashtagService{repo: repo, metrics: m, log: log}
}

func (s *hashtagService) WithRepository(repo repository.HashtagRepository) HashtagService {
	bound := *s
	bound.repo = repo
	return &bound
}

func (s *hashtagService) ParseHashtagNames(content string) []string {
	seen := make(map[string]struct{})
	names := []string{}

	for _, match := range hashtagPattern.FindAllStringSubmatch(content, -1) {
		name := match[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func (s *hashtagService) FindHashtagsByNames(ctx context.Context, names []string) ([]models.Hashtag, error) {
	return s.repo.FindByNames(ctx, names)
}

func (s *hashtagService) DeleteHashtagWithoutArticles(ctx context.Context, hashtagID int64) error {
	deleted, err := s.repo.DeleteIfOrphaned(ctx, hashtagID)
	if err != nil {
		return err
	}

	if deleted {
		s.log.WithField("hashtag_id", hashtagID).Debug("orphaned hashtag deleted")
		s.record(metrics.ReasonReconcile, 1)
	}

	return nil
}

func (s *hashtagService) DeleteOrphanedHashtags(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteOrphans(ctx)
	if err != nil {
		return 0, fmt.Errorf("sweep orphaned hashtags: %w", err)
	}

	s.record(metrics.ReasonSweep, n)
	return n, nil
}

func (s *hashtagService) GetHashtagNames(ctx context.Context) ([]string, error) {
	return s.repo.FindAllHashtagNames(ctx)
}

func (s *hashtagService) record(reason string, n int64) {
	if s.metrics != nil {
		s.metrics.RecordHashtagsDeleted(reason, n)
	}
}
