package scoring

// reputationBands maps a maximum reputation distance onto a score.
// Bands are inclusive and checked in order.
var reputationBands = [...]struct { //nolint:gochecknoglobals // immutable lookup table
	maxDiff int
	score   int
}{
	{maxDiff: 100, score: 100},
	{maxDiff: 200, score: 80},
	{maxDiff: 300, score: 60},
	{maxDiff: 500, score: 40},
}

// farReputationScore applies beyond the last band.
const farReputationScore = 20

// Reputation scores the proximity of two reputation scores. It is
// symmetric and accepts any integers, including out-of-range ones.
func Reputation(a, b int) int {
	var diff uint64
	if a >= b {
		diff = uint64(a) - uint64(b)
	} else {
		diff = uint64(b) - uint64(a)
	}
	for _, band := range reputationBands {
		if diff <= uint64(band.maxDiff) {
			return band.score
		}
	}
	return farReputationScore
}
