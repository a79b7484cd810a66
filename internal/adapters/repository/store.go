// Package repository holds user and project records and loads matching
// candidates from them.
package repository

import (
	"context"

	"github.com/okian/buildermatch/internal/domain/model"
)

// Store provides read/write access to users and projects.
type Store interface {
	// UpsertUser inserts or replaces a user. It reports whether the user was new.
	UpsertUser(ctx context.Context, user model.UserRecord) (bool, error)
	// UpsertProject inserts or replaces a project. It reports whether the project was new.
	UpsertProject(ctx context.Context, project model.ProjectRecord) (bool, error)

	// User returns a stored user or ErrUserNotFound.
	User(ctx context.Context, id string) (model.UserRecord, error)
	// Project returns a stored project or ErrProjectNotFound.
	Project(ctx context.Context, id string) (model.ProjectRecord, error)
	// ProjectCandidate returns a project joined with its creator's reputation and trust.
	ProjectCandidate(ctx context.Context, id string) (model.CandidateProject, error)

	// RecruitingProjects returns up to limit recruiting projects in insertion
	// order, joined with their creator. limit <= 0 means no cap.
	RecruitingProjects(ctx context.Context, limit int) ([]model.CandidateProject, error)
	// MemberCandidates returns up to limit onboarded users who are neither the
	// creator nor a team member of the project. limit <= 0 means no cap.
	MemberCandidates(ctx context.Context, projectID string, limit int) ([]model.CandidateUser, error)

	CountUsers(ctx context.Context) int
	CountProjects(ctx context.Context) int
}
