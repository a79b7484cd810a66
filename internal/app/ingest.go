package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/okian/buildermatch/internal/domain/model"
	"github.com/okian/buildermatch/pkg/logger"
	"github.com/okian/buildermatch/pkg/metrics"
)

// SubmitUpdate validates u, drops it if its id was already seen and
// otherwise queues it for the workers. A missing id is generated and
// returned. ErrBackpressure means the queue was full; the id is forgotten so
// the client may retry with it.
func (s *Service) SubmitUpdate(ctx context.Context, u model.Update) (id string, duplicate bool, err error) { //nolint:gocritic // hugeParam: Update is passed by value for channel semantics
	if err := validateUpdate(&u); err != nil {
		metrics.RecordUpdateRejected("invalid")
		return "", false, err
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.ReceivedAt.IsZero() {
		u.ReceivedAt = s.now()
	}

	s.mu.RLock()
	started, q := s.started, s.queue
	s.mu.RUnlock()
	if !started {
		return u.ID, false, ErrNotStarted
	}

	if s.deduper.SeenAndRecord(ctx, u.ID) {
		metrics.RecordUpdateDuplicate()
		s.logger.Debug(ctx, "duplicate update detected, skipping", logger.String("update_id", u.ID))
		return u.ID, true, nil
	}

	if !q.Enqueue(ctx, u) {
		s.deduper.Unrecord(ctx, u.ID)
		return u.ID, false, ErrBackpressure
	}
	s.logger.Debug(ctx, "update enqueued",
		logger.String("update_id", u.ID),
		logger.String("kind", string(u.Kind)),
		logger.String("subject_id", u.SubjectID()),
	)
	return u.ID, false, nil
}

func validateUpdate(u *model.Update) error {
	switch u.Kind {
	case model.UpdateUser:
		if u.User == nil || u.Project != nil {
			return fmt.Errorf("%w: user update must carry exactly a user", ErrInvalidUpdate)
		}
		if u.User.ReputationScore < 0 {
			return fmt.Errorf("%w: reputation score must not be negative", ErrInvalidUpdate)
		}
	case model.UpdateProject:
		if u.Project == nil || u.User != nil {
			return fmt.Errorf("%w: project update must carry exactly a project", ErrInvalidUpdate)
		}
		if u.Project.Status != "" && !u.Project.Status.Known() {
			return fmt.Errorf("%w: unknown project status %q", ErrInvalidUpdate, u.Project.Status)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidUpdate, u.Kind)
	}
	if u.SubjectID() == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidUpdate)
	}
	return nil
}
