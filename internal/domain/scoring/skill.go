package scoring

import (
	"strings"

	"github.com/okian/buildermatch/internal/domain/model"
)

// Skill scoring constants.
const (
	skillBaseScale    = 100.0
	verificationBonus = 10.0
)

// Skill scores how well candidate covers the required tech stack.
//
// Names are compared case-insensitively. Every required item counts,
// including repeats and blanks, so the denominator is len(required).
// Repeated candidate skills count once; a required item is verified when
// any same-named candidate skill is verified. No requirements, or no
// skills, gives 0.
func Skill(candidate []model.Skill, required []string) int {
	if len(candidate) == 0 || len(required) == 0 {
		return minScore
	}

	// name -> verified (true wins over false for duplicates)
	have := make(map[string]bool, len(candidate))
	for _, s := range candidate {
		name := skillKey(s.Name)
		if name == "" {
			continue
		}
		have[name] = have[name] || s.Verified
	}

	var matching, verified int
	for _, r := range required {
		if v, ok := have[skillKey(r)]; ok {
			matching++
			if v {
				verified++
			}
		}
	}
	if matching == 0 {
		return minScore
	}

	base := float64(matching) / float64(len(required)) * skillBaseScale
	bonus := float64(verified) / float64(matching) * verificationBonus
	return round(min(base+bonus, maxScore))
}

func skillKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
