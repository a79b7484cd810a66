// Package types contains common types used across the application
package types

// Quality thresholds for a match score.
const (
	excellentThreshold = 80
	goodThreshold      = 60
	fairThreshold      = 40
	poorThreshold      = 20
)

// MatchBreakdown holds the five sub-scores that justify a match score.
type MatchBreakdown struct {
	SkillCompatibility      int `json:"skillCompatibility"`
	GoalAlignment           int `json:"goalAlignment"`
	ReputationCompatibility int `json:"reputationCompatibility"`
	ActivityScore           int `json:"activityScore"`
	DiversityScore          int `json:"diversityScore"`
}

// MatchResult is one ranked candidate.
type MatchResult struct {
	SubjectID  string         `json:"subjectId"`
	TotalScore int            `json:"matchScore"`
	Breakdown  MatchBreakdown `json:"breakdown"`
}

// SkillSummary is a skill shown next to a ranked user.
type SkillSummary struct {
	Name     string `json:"name"`
	Level    string `json:"level,omitempty"`
	Verified bool   `json:"verified"`
}

// UserSummary describes a ranked user or a project creator.
type UserSummary struct {
	ID              string         `json:"id"`
	Username        string         `json:"username"`
	DisplayName     string         `json:"displayName"`
	Avatar          string         `json:"avatar"`
	ReputationScore int            `json:"reputationScore"`
	TrustLevel      string         `json:"trustLevel"`
	Skills          []SkillSummary `json:"skills,omitempty"`
}

// ProjectSummary describes a ranked project.
type ProjectSummary struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	TechStack []string     `json:"techStack"`
	Status    string       `json:"status"`
	Creator   *UserSummary `json:"creator,omitempty"`
}

// Match is a ranked result with the subject it refers to. Exactly one of
// User and Project is set.
type Match struct {
	MatchResult
	Quality string          `json:"quality"`
	Project *ProjectSummary `json:"project,omitempty"`
	User    *UserSummary    `json:"user,omitempty"`
}

// MatchList is the response envelope for a ranking request.
type MatchList struct {
	Matches []Match `json:"matches"`
	Total   int     `json:"total"`
}

// NewMatchList wraps matches, never returning a nil slice.
func NewMatchList(matches []Match) MatchList {
	if matches == nil {
		matches = []Match{}
	}
	return MatchList{Matches: matches, Total: len(matches)}
}

// Quality labels a 0-100 score.
func Quality(score int) string {
	switch {
	case score >= excellentThreshold:
		return "excellent"
	case score >= goodThreshold:
		return "good"
	case score >= fairThreshold:
		return "fair"
	case score >= poorThreshold:
		return "poor"
	default:
		return "none"
	}
}
