package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/okian/buildermatch/internal/domain/model"
	"github.com/okian/buildermatch/pkg/metrics"
)

// MemStore is an in-memory Store. Listing operations return records in
// insertion order; replacing a record keeps its original position.
type MemStore struct {
	mu           sync.RWMutex
	users        map[string]model.UserRecord
	userOrder    []string
	projects     map[string]model.ProjectRecord
	projectOrder []string

	metricsUpdateInterval time.Duration

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

var _ Store = (*MemStore)(nil)

// NewMemStore constructs an empty store and starts its metrics updater,
// which runs until ctx is done or Close is called.
func NewMemStore(ctx context.Context, opts ...Option) *MemStore {
	s := &MemStore{
		users:                 make(map[string]model.UserRecord),
		projects:              make(map[string]model.ProjectRecord),
		metricsUpdateInterval: 5 * time.Second,
		stopChan:              make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startMetricsUpdater(ctx)
	return s
}

// Close stops the background metrics updater.
func (s *MemStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	return nil
}

// UpsertUser implements Store.
func (s *MemStore) UpsertUser(ctx context.Context, user model.UserRecord) (bool, error) { //nolint:gocritic // hugeParam: records are stored by value
	if user.ID == "" {
		metrics.RecordErrorByComponent("repository", "invalid_user")
		return false, ErrInvalidRecord
	}
	user.Skills = slices.Clone(user.Skills)
	user.Goals = slices.Clone(user.Goals)

	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.users[user.ID]
	if !exists {
		s.userOrder = append(s.userOrder, user.ID)
	}
	s.users[user.ID] = user
	return !exists, nil
}

// UpsertProject implements Store.
func (s *MemStore) UpsertProject(ctx context.Context, project model.ProjectRecord) (bool, error) { //nolint:gocritic // hugeParam: records are stored by value
	if project.ID == "" {
		metrics.RecordErrorByComponent("repository", "invalid_project")
		return false, ErrInvalidRecord
	}
	project.TechStack = slices.Clone(project.TechStack)
	project.TeamMemberIDs = slices.Clone(project.TeamMemberIDs)

	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.projects[project.ID]
	if !exists {
		s.projectOrder = append(s.projectOrder, project.ID)
	}
	s.projects[project.ID] = project
	return !exists, nil
}

// User implements Store.
func (s *MemStore) User(ctx context.Context, id string) (model.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return model.UserRecord{}, ErrUserNotFound
	}
	return u, nil
}

// Project implements Store.
func (s *MemStore) Project(ctx context.Context, id string) (model.ProjectRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return model.ProjectRecord{}, ErrProjectNotFound
	}
	return p, nil
}

// ProjectCandidate implements Store.
func (s *MemStore) ProjectCandidate(ctx context.Context, id string) (model.CandidateProject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return model.CandidateProject{}, ErrProjectNotFound
	}
	return s.joinCreator(&p), nil
}

// RecruitingProjects implements Store.
func (s *MemStore) RecruitingProjects(ctx context.Context, limit int) ([]model.CandidateProject, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.CandidateProject, 0, capHint(limit, len(s.projectOrder)))
	for _, id := range s.projectOrder {
		p := s.projects[id]
		if p.Status != model.StatusRecruiting {
			continue
		}
		out = append(out, s.joinCreator(&p))
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// MemberCandidates implements Store.
func (s *MemStore) MemberCandidates(ctx context.Context, projectID string, limit int) ([]model.CandidateUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[projectID]
	if !ok {
		return nil, ErrProjectNotFound
	}
	excluded := make(map[string]struct{}, len(p.TeamMemberIDs)+1)
	excluded[p.CreatorID] = struct{}{}
	for _, id := range p.TeamMemberIDs {
		excluded[id] = struct{}{}
	}

	out := make([]model.CandidateUser, 0, capHint(limit, len(s.userOrder)))
	for _, id := range s.userOrder {
		u := s.users[id]
		if !u.OnboardingCompleted {
			continue
		}
		if _, skip := excluded[id]; skip {
			continue
		}
		out = append(out, u.CandidateUser)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// CountUsers implements Store.
func (s *MemStore) CountUsers(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// CountProjects implements Store.
func (s *MemStore) CountProjects(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects)
}

// joinCreator must be called with s.mu held.
// A missing creator yields reputation 0 and an empty trust level.
func (s *MemStore) joinCreator(p *model.ProjectRecord) model.CandidateProject {
	cp := model.CandidateProject{
		ID:        p.ID,
		TechStack: p.TechStack,
		Status:    p.Status,
	}
	if creator, ok := s.users[p.CreatorID]; ok {
		cp.CreatorReputationScore = creator.ReputationScore
		cp.CreatorTrustLevel = creator.TrustLevel
	}
	return cp
}

func capHint(limit, n int) int {
	if limit > 0 && limit < n {
		return limit
	}
	return n
}

func (s *MemStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.updateMetrics()
			}
		}
	}()
}

func (s *MemStore) updateMetrics() {
	s.mu.RLock()
	users, projects := len(s.users), len(s.projects)
	s.mu.RUnlock()
	metrics.UpdateStoredCounts(users, projects)
}
