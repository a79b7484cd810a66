// Package model contains domain models passed between layers.
//
// Records here are plain values. The matching core never mutates them and
// never reaches back into storage for missing fields.
package model

import (
	"strings"
	"time"
)

// SkillLevel is the self-declared proficiency of a skill.
type SkillLevel string

// Skill levels.
const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

// TrustLevel is a coarse reputation tier derived from a numeric reputation score.
type TrustLevel string

// Trust levels.
const (
	TrustNovice      TrustLevel = "novice"
	TrustContributor TrustLevel = "contributor"
	TrustExpert      TrustLevel = "expert"
	TrustLegend      TrustLevel = "legend"
)

// Reputation thresholds separating the trust tiers.
const (
	contributorThreshold = 100
	expertThreshold      = 500
	legendThreshold      = 1000
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

// Project statuses.
const (
	StatusRecruiting ProjectStatus = "recruiting"
	StatusActive     ProjectStatus = "active"
	StatusCompleted  ProjectStatus = "completed"
	StatusArchived   ProjectStatus = "archived"
)

// Skill is one entry of a user's skill list.
type Skill struct {
	Name     string
	Level    SkillLevel
	Verified bool
}

// CandidateUser carries the user fields the matching core reads.
type CandidateUser struct {
	ID                  string
	Skills              []Skill
	Goals               []string
	ReputationScore     int
	TrustLevel          TrustLevel
	LastActiveAt        time.Time
	OnboardingCompleted bool
}

// CandidateProject carries the project fields the matching core reads.
// Creator fields are denormalised by the loader.
type CandidateProject struct {
	ID                     string
	TechStack              []string
	Status                 ProjectStatus
	CreatorReputationScore int
	CreatorTrustLevel      TrustLevel
}

// ParseSkillLevel normalises s. Unknown values are returned as-is.
func ParseSkillLevel(s string) SkillLevel {
	return SkillLevel(normalize(s))
}

// ParseTrustLevel normalises s. Unknown values are returned as-is so that
// scorers treat them as simply different from any known tier.
func ParseTrustLevel(s string) TrustLevel {
	return TrustLevel(normalize(s))
}

// ParseProjectStatus normalises s. Unknown values are returned as-is.
func ParseProjectStatus(s string) ProjectStatus {
	return ProjectStatus(normalize(s))
}

// Known reports whether t is one of the four defined tiers.
func (t TrustLevel) Known() bool {
	switch t {
	case TrustNovice, TrustContributor, TrustExpert, TrustLegend:
		return true
	}
	return false
}

// Known reports whether s is one of the four defined statuses.
func (s ProjectStatus) Known() bool {
	switch s {
	case StatusRecruiting, StatusActive, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// TrustLevelForReputation maps a reputation score onto its tier.
func TrustLevelForReputation(score int) TrustLevel {
	switch {
	case score >= legendThreshold:
		return TrustLegend
	case score >= expertThreshold:
		return TrustExpert
	case score >= contributorThreshold:
		return TrustContributor
	default:
		return TrustNovice
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
