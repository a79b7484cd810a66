package model

import "time"

// UpdateKind identifies which record an Update carries.
type UpdateKind string

// Update kinds.
const (
	UpdateUser    UpdateKind = "user"
	UpdateProject UpdateKind = "project"
)

// UserRecord is a stored user: the matchable fields plus display data.
type UserRecord struct {
	CandidateUser
	Username    string
	DisplayName string
	Avatar      string
}

// ProjectRecord is a stored project. Creator reputation and trust are joined
// from the creator's UserRecord when candidates are loaded.
type ProjectRecord struct {
	ID            string
	Title         string
	TechStack     []string
	Status        ProjectStatus
	CreatorID     string
	TeamMemberIDs []string
}

// Update is a single ingestion message flowing through the update queue.
type Update struct {
	ID         string     // unique id for idempotency
	Kind       UpdateKind // which of User/Project is set
	User       *UserRecord
	Project    *ProjectRecord
	ReceivedAt time.Time
}

// SubjectID returns the id of the record carried by u.
func (u Update) SubjectID() string { //nolint:gocritic // hugeParam: Update is passed by value through channels
	switch u.Kind {
	case UpdateUser:
		if u.User != nil {
			return u.User.ID
		}
	case UpdateProject:
		if u.Project != nil {
			return u.Project.ID
		}
	}
	return ""
}
