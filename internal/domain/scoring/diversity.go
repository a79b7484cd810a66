package scoring

import "github.com/okian/buildermatch/internal/domain/model"

// Diversity scores.
const (
	mixedTrustScore = 70
	sameTrustScore  = 50
)

// Diversity rewards pairing different trust levels. Unknown levels compare
// by value, so unknown vs known is "different".
func Diversity(a, b model.TrustLevel) int {
	if a == b {
		return sameTrustScore
	}
	return mixedTrustScore
}
