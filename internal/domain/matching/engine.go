// Package matching ranks projects for a user and users for a project.
//
// The engine combines the sub-scores from package scoring with fixed
// weights. It is stateless between calls and reads time only through the
// now argument.
package matching

import (
	"context"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/okian/buildermatch/internal/domain/model"
	"github.com/okian/buildermatch/internal/domain/scoring"
	"github.com/okian/buildermatch/internal/domain/types"
	"github.com/okian/buildermatch/pkg/metrics"
)

// Default engine configuration constants.
const (
	defaultParallelThreshold = 64
)

// Engine scores and ranks candidates.
type Engine struct {
	weights           Weights
	parallelism       int
	parallelThreshold int
}

// New creates an engine with the default weights.
func New(opts ...Option) *Engine {
	e := &Engine{
		weights:           DefaultWeights(),
		parallelism:       runtime.NumCPU(),
		parallelThreshold: defaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Weights returns the weights in use.
func (e *Engine) Weights() Weights {
	return e.weights
}

// ComputeMatch scores one user against one project. Sub-scores are rounded
// by their scorers, weighted, and the total is rounded again. SubjectID is
// the project id.
func (e *Engine) ComputeMatch(user *model.CandidateUser, project *model.CandidateProject, now time.Time) types.MatchResult {
	b := types.MatchBreakdown{
		SkillCompatibility:      scoring.Skill(user.Skills, project.TechStack),
		GoalAlignment:           scoring.Goal(user.Goals, project.Status),
		ReputationCompatibility: scoring.Reputation(user.ReputationScore, project.CreatorReputationScore),
		ActivityScore:           scoring.Activity(user.LastActiveAt, now),
		DiversityScore:          scoring.Diversity(user.TrustLevel, project.CreatorTrustLevel),
	}
	total := float64(b.SkillCompatibility)*e.weights.Skill +
		float64(b.GoalAlignment)*e.weights.Goal +
		float64(b.ReputationCompatibility)*e.weights.Reputation +
		float64(b.ActivityScore)*e.weights.Activity +
		float64(b.DiversityScore)*e.weights.Diversity

	return types.MatchResult{
		SubjectID:  project.ID,
		TotalScore: int(math.Round(total)),
		Breakdown:  b,
	}
}

// FindMatchingProjects ranks projects for user, best first, and returns at
// most limit results. Callers are expected to pass only recruiting projects;
// the engine does not filter by status.
func (e *Engine) FindMatchingProjects(ctx context.Context, user *model.CandidateUser, projects []model.CandidateProject, now time.Time, limit int) []types.MatchResult {
	results := e.scoreAll(ctx, len(projects), limit, func(i int) types.MatchResult {
		return e.ComputeMatch(user, &projects[i], now)
	})
	metrics.RecordMatchRanking("projects", len(projects), len(results))
	return results
}

// FindMatchingMembers ranks users for project, best first, and returns at
// most limit results. Callers are expected to have removed the creator and
// current team members; anything passed in is scored.
func (e *Engine) FindMatchingMembers(ctx context.Context, project *model.CandidateProject, users []model.CandidateUser, now time.Time, limit int) []types.MatchResult {
	results := e.scoreAll(ctx, len(users), limit, func(i int) types.MatchResult {
		res := e.ComputeMatch(&users[i], project, now)
		res.SubjectID = users[i].ID
		return res
	})
	metrics.RecordMatchRanking("members", len(users), len(results))
	return results
}

// scoreAll scores n candidates, stable-sorts them by total score and
// truncates to limit. Output does not depend on parallelism.
func (e *Engine) scoreAll(ctx context.Context, n, limit int, score func(i int) types.MatchResult) []types.MatchResult {
	if n == 0 || limit <= 0 || ctx.Err() != nil {
		return []types.MatchResult{}
	}

	results := make([]types.MatchResult, n)
	if e.parallelism <= 1 || n < e.parallelThreshold {
		for i := range results {
			results[i] = score(i)
		}
	} else {
		e.scoreParallel(results, score)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalScore > results[j].TotalScore
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// scoreParallel fills results using a bounded pool. Each slot is written by
// exactly one goroutine.
func (e *Engine) scoreParallel(results []types.MatchResult, score func(i int) types.MatchResult) {
	workers := min(e.parallelism, len(results))
	idx := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range idx {
				results[i] = score(i)
			}
		}()
	}
	for i := range results {
		idx <- i
	}
	close(idx)
	wg.Wait()
}
