package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/buildermatch/internal/adapters/cache"
	"github.com/okian/buildermatch/internal/adapters/repository"
	"github.com/okian/buildermatch/internal/domain/types"
	"github.com/okian/buildermatch/pkg/logger"
	"github.com/okian/buildermatch/pkg/metrics"
)

// Ranking kinds, used as metric labels.
const (
	kindProjects = "projects"
	kindMembers  = "members"
)

// ClampLimit maps a requested limit onto the configured range:
// limit <= 0 selects the default and anything above the maximum is capped.
func (s *Service) ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return s.defaultLimit
	case limit > s.maxLimit:
		return s.maxLimit
	default:
		return limit
	}
}

// MatchProjects ranks recruiting projects for userID.
func (s *Service) MatchProjects(ctx context.Context, userID string, limit int) (types.MatchList, error) {
	start := time.Now()
	limit = s.ClampLimit(limit)
	c := s.resultCache()
	gen := c.Generation()

	user, err := s.store.User(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			metrics.RecordSubjectNotFound(kindProjects)
		}
		return types.MatchList{}, fmt.Errorf("match projects for %s: %w", userID, err)
	}

	key := cache.ProjectsKey(userID, limit)
	if results, ok := s.cached(ctx, c, key); ok {
		metrics.RecordRankingLatency(kindProjects, "cache", msSince(start))
		return types.NewMatchList(s.projectMatches(ctx, results)), nil
	}

	projects, err := s.store.RecruitingProjects(ctx, s.projectCap)
	if err != nil {
		return types.MatchList{}, fmt.Errorf("match projects for %s: %w", userID, err)
	}
	results := s.engine.FindMatchingProjects(ctx, &user.CandidateUser, projects, s.now(), limit)
	if err := ctx.Err(); err != nil {
		return types.MatchList{}, err
	}

	s.remember(ctx, c, gen, key, results)
	metrics.RecordRankingLatency(kindProjects, "engine", msSince(start))
	return types.NewMatchList(s.projectMatches(ctx, results)), nil
}

// MatchMembers ranks onboarded users who are not yet on projectID's team.
func (s *Service) MatchMembers(ctx context.Context, projectID string, limit int) (types.MatchList, error) {
	start := time.Now()
	limit = s.ClampLimit(limit)
	c := s.resultCache()
	gen := c.Generation()

	project, err := s.store.ProjectCandidate(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			metrics.RecordSubjectNotFound(kindMembers)
		}
		return types.MatchList{}, fmt.Errorf("match members for %s: %w", projectID, err)
	}

	key := cache.MembersKey(projectID, limit)
	if results, ok := s.cached(ctx, c, key); ok {
		metrics.RecordRankingLatency(kindMembers, "cache", msSince(start))
		return types.NewMatchList(s.memberMatches(ctx, results)), nil
	}

	users, err := s.store.MemberCandidates(ctx, projectID, s.memberCap)
	if err != nil {
		return types.MatchList{}, fmt.Errorf("match members for %s: %w", projectID, err)
	}
	results := s.engine.FindMatchingMembers(ctx, &project, users, s.now(), limit)
	if err := ctx.Err(); err != nil {
		return types.MatchList{}, err
	}

	s.remember(ctx, c, gen, key, results)
	metrics.RecordRankingLatency(kindMembers, "engine", msSince(start))
	return types.NewMatchList(s.memberMatches(ctx, results)), nil
}

func (s *Service) resultCache() *cache.Versioned {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache
}

// cached returns a cached ranking. Cache failures are logged and treated as misses.
func (s *Service) cached(ctx context.Context, c *cache.Versioned, key string) ([]types.MatchResult, bool) {
	results, ok, err := c.Get(ctx, key)
	if err != nil {
		s.logger.Warn(ctx, "match cache read failed", logger.String("key", key), logger.Error(err))
		return nil, false
	}
	return results, ok
}

// remember stores a ranking computed from data read at generation gen. The
// write is dropped when an invalidation happened in between.
func (s *Service) remember(ctx context.Context, c *cache.Versioned, gen uint64, key string, results []types.MatchResult) {
	stored, err := c.SetIfCurrent(ctx, key, gen, results)
	if err != nil {
		s.logger.Warn(ctx, "match cache write failed", logger.String("key", key), logger.Error(err))
		return
	}
	if !stored {
		s.logger.Debug(ctx, "match cache write skipped after invalidation", logger.String("key", key))
	}
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
