package scoring

import "github.com/okian/buildermatch/internal/domain/model"

// neutralGoalScore applies to users without goals and to unknown goals.
const neutralGoalScore = 50

// goalScore is one row of the goal table.
type goalScore struct {
	recruiting int
	other      int
}

// goalTable is read-only after package init.
var goalTable = map[string]goalScore{ //nolint:gochecknoglobals // immutable lookup table
	"Learn new skills":      {recruiting: 80, other: 60},
	"Build portfolio":       {recruiting: 90, other: 90},
	"Get hired":             {recruiting: 85, other: 85},
	"Start a startup":       {recruiting: 95, other: 70},
	"Freelance work":        {recruiting: 75, other: 75},
	"Network with builders": {recruiting: 80, other: 80},
	"Mentor others":         {recruiting: 40, other: 40},
	"Find co-founder":       {recruiting: 100, other: 50},
}

// Goal scores how well a user's goals fit a project in the given status.
// No goals is neutral (50), not a penalty.
func Goal(goals []string, status model.ProjectStatus) int {
	if len(goals) == 0 {
		return neutralGoalScore
	}
	var sum int
	for _, g := range goals {
		sum += goalValue(g, status)
	}
	return round(float64(sum) / float64(len(goals)))
}

// goalValue looks goal up exactly; case or whitespace variants are unknown.
func goalValue(goal string, status model.ProjectStatus) int {
	row, ok := goalTable[goal]
	if !ok {
		return neutralGoalScore
	}
	if status == model.StatusRecruiting {
		return row.recruiting
	}
	return row.other
}
