package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/claims-service/internal/domain"
	"github.com/spec-kit/claims-service/internal/repository"
)

const (
	adjusterCacheKey = "directory:adjusters"
	adjusterCacheTTL = 30 * time.Second
)

// AdjusterSummary is the directory entry managers pick from when assigning.
type AdjusterSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DirectoryService serves the adjuster directory, cached in Redis since the
// assignment picker is read far more often than adjusters change.
type DirectoryService struct {
	users  repository.UserRepository
	cache  *redis.Client
	logger *zap.Logger
}

// NewDirectoryService constructs the service. A nil cache client degrades to
// direct reads.
func NewDirectoryService(users repository.UserRepository, cache *redis.Client, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{users: users, cache: cache, logger: logger}
}

// ListAdjusters returns all active adjusters.
func (s *DirectoryService) ListAdjusters(ctx context.Context) ([]AdjusterSummary, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	adjusters, err := s.users.ListByRole(ctx, domain.RoleAdjuster, true)
	if err != nil {
		return nil, err
	}

	summaries := make([]AdjusterSummary, 0, len(adjusters))
	for i := range adjusters {
		summaries = append(summaries, AdjusterSummary{
			ID:   adjusters[i].ID,
			Name: adjusters[i].FullName(),
		})
	}

	s.toCache(ctx, summaries)
	return summaries, nil
}

func (s *DirectoryService) fromCache(ctx context.Context) []AdjusterSummary {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, adjusterCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var summaries []AdjusterSummary
	if err := json.Unmarshal(raw, &summaries); err != nil {
		return nil
	}
	return summaries
}

func (s *DirectoryService) toCache(ctx context.Context, summaries []AdjusterSummary) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(summaries)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, adjusterCacheKey, raw, adjusterCacheTTL).Err(); err != nil {
		s.logger.Debug("adjuster cache write failed", zap.Error(err))
	}
}
