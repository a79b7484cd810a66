// Package cache stores ranked match lists keyed by subject and limit.
package cache

import (
	"context"
	"strconv"

	"github.com/okian/buildermatch/internal/domain/types"
)

// Key prefixes.
const (
	ProjectsPrefix = "match:projects:"
	MembersPrefix  = "match:members:"
)

// ResultCache stores ranked match lists.
type ResultCache interface {
	// Get returns the cached list for key. ok is false on a miss.
	Get(ctx context.Context, key string) (results []types.MatchResult, ok bool, err error)
	// Set stores results under key.
	Set(ctx context.Context, key string, results []types.MatchResult) error
	// DeletePrefix removes every key starting with prefix and returns how many were removed.
	DeletePrefix(ctx context.Context, prefix string) (int, error)
	Close() error
}

// ProjectsKey is the key of the project ranking for userID.
func ProjectsKey(userID string, limit int) string {
	return ProjectsPrefix + userID + ":" + strconv.Itoa(limit)
}

// MembersKey is the key of the member ranking for projectID.
func MembersKey(projectID string, limit int) string {
	return MembersPrefix + projectID + ":" + strconv.Itoa(limit)
}

// UserProjectsPrefix matches every cached project ranking of userID.
func UserProjectsPrefix(userID string) string {
	return ProjectsPrefix + userID + ":"
}

// Noop is a ResultCache that never stores anything.
type Noop struct{}

var _ ResultCache = Noop{}

// Get always misses.
func (Noop) Get(context.Context, string) ([]types.MatchResult, bool, error) { return nil, false, nil }

// Set discards results.
func (Noop) Set(context.Context, string, []types.MatchResult) error { return nil }

// DeletePrefix removes nothing.
func (Noop) DeletePrefix(context.Context, string) (int, error) { return 0, nil }

// Close is a no-op.
func (Noop) Close() error { return nil }
