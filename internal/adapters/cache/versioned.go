package cache

import (
	"context"
	"sync"

	"github.com/okian/buildermatch/internal/domain/types"
)

// Versioned wraps a ResultCache with an invalidation generation.
//
// Readers take Generation before loading the data a ranking is computed
// from and store the ranking with SetIfCurrent. Every DeletePrefix bumps
// the generation first, so a ranking computed from data that an update
// has since replaced is never written back.
type Versioned struct {
	ResultCache

	mu  sync.Mutex
	gen uint64
}

var _ ResultCache = (*Versioned)(nil)

// NewVersioned wraps c. A nil c behaves as Noop.
func NewVersioned(c ResultCache) *Versioned {
	if c == nil {
		c = Noop{}
	}
	return &Versioned{ResultCache: c}
}

// Generation returns the current invalidation generation.
func (v *Versioned) Generation() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.gen
}

// SetIfCurrent stores results under key only if no invalidation happened
// since gen was read. It reports whether the entry was written.
func (v *Versioned) SetIfCurrent(ctx context.Context, key string, gen uint64, results []types.MatchResult) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.gen != gen {
		return false, nil
	}
	if err := v.ResultCache.Set(ctx, key, results); err != nil {
		return false, err
	}
	return true, nil
}

// DeletePrefix bumps the generation and removes every key under prefix.
func (v *Versioned) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	return v.ResultCache.DeletePrefix(ctx, prefix)
}
