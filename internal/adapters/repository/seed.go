package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/buildermatch/internal/domain/model"
)

// SeedSkill is the YAML shape of a skill entry.
type SeedSkill struct {
	Name     string `koanf:"name"`
	Level    string `koanf:"level"`
	Verified bool   `koanf:"verified"`
}

// SeedUser is the YAML shape of a user.
type SeedUser struct {
	ID                  string      `koanf:"id"`
	Username            string      `koanf:"username"`
	DisplayName         string      `koanf:"display_name"`
	Avatar              string      `koanf:"avatar"`
	Skills              []SeedSkill `koanf:"skills"`
	Goals               []string    `koanf:"goals"`
	ReputationScore     int         `koanf:"reputation_score"`
	TrustLevel          string      `koanf:"trust_level"`
	LastActiveAt        string      `koanf:"last_active_at"`
	OnboardingCompleted bool        `koanf:"onboarding_completed"`
}

// SeedProject is the YAML shape of a project.
type SeedProject struct {
	ID            string   `koanf:"id"`
	Title         string   `koanf:"title"`
	TechStack     []string `koanf:"tech_stack"`
	Status        string   `koanf:"status"`
	CreatorID     string   `koanf:"creator_id"`
	TeamMemberIDs []string `koanf:"team_member_ids"`
}

// Seed is a YAML document of users and projects.
type Seed struct {
	Users    []SeedUser    `koanf:"users"`
	Projects []SeedProject `koanf:"projects"`
}

// ReadSeed parses a YAML seed file.
func ReadSeed(path string) (Seed, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Seed{}, fmt.Errorf("%w: %s: %w", ErrLoadSeed, path, err)
	}
	var seed Seed
	if err := k.UnmarshalWithConf("", &seed, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Seed{}, fmt.Errorf("%w: %s: %w", ErrLoadSeed, path, err)
	}
	return seed, nil
}

// LoadSeed reads the seed file at path and upserts every record into store.
// Users are applied before projects so creator joins resolve.
func LoadSeed(ctx context.Context, path string, store Store) (users, projects int, err error) {
	seed, err := ReadSeed(path)
	if err != nil {
		return 0, 0, err
	}
	for i := range seed.Users {
		rec, err := seed.Users[i].Record()
		if err != nil {
			return users, projects, fmt.Errorf("%w: users[%d]: %w", ErrLoadSeed, i, err)
		}
		if _, err := store.UpsertUser(ctx, rec); err != nil {
			return users, projects, fmt.Errorf("%w: users[%d]: %w", ErrLoadSeed, i, err)
		}
		users++
	}
	for i := range seed.Projects {
		if _, err := store.UpsertProject(ctx, seed.Projects[i].Record()); err != nil {
			return users, projects, fmt.Errorf("%w: projects[%d]: %w", ErrLoadSeed, i, err)
		}
		projects++
	}
	return users, projects, nil
}

// Record converts the seed entry into a stored user. An empty trust level is
// derived from the reputation score.
func (u *SeedUser) Record() (model.UserRecord, error) {
	var lastActive time.Time
	if s := strings.TrimSpace(u.LastActiveAt); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return model.UserRecord{}, fmt.Errorf("%w: last_active_at: %w", ErrInvalidRecord, err)
		}
		lastActive = t
	}

	trust := model.ParseTrustLevel(u.TrustLevel)
	if trust == "" {
		trust = model.TrustLevelForReputation(u.ReputationScore)
	}

	skills := make([]model.Skill, 0, len(u.Skills))
	for _, s := range u.Skills {
		skills = append(skills, model.Skill{
			Name:     s.Name,
			Level:    model.ParseSkillLevel(s.Level),
			Verified: s.Verified,
		})
	}

	return model.UserRecord{
		CandidateUser: model.CandidateUser{
			ID:                  u.ID,
			Skills:              skills,
			Goals:               u.Goals,
			ReputationScore:     u.ReputationScore,
			TrustLevel:          trust,
			LastActiveAt:        lastActive,
			OnboardingCompleted: u.OnboardingCompleted,
		},
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
	}, nil
}

// Record converts the seed entry into a stored project. An empty status
// means recruiting.
func (p *SeedProject) Record() model.ProjectRecord {
	status := model.ParseProjectStatus(p.Status)
	if status == "" {
		status = model.StatusRecruiting
	}
	return model.ProjectRecord{
		ID:            p.ID,
		Title:         p.Title,
		TechStack:     p.TechStack,
		Status:        status,
		CreatorID:     p.CreatorID,
		TeamMemberIDs: p.TeamMemberIDs,
	}
}
