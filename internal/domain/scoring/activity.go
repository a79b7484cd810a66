package scoring

import "time"

// Activity bands.
const (
	hoursPerDay         = 24.0
	recentDays          = 1.0
	weekDays            = 7.0
	recentActivityScore = 100
	weekActivityScore   = 80
	staleActivityScore  = 50
)

// Activity scores how recently a user was active relative to now.
// The caller supplies now. Future timestamps count as active now.
func Activity(lastActiveAt, now time.Time) int {
	days := now.Sub(lastActiveAt).Hours() / hoursPerDay
	switch {
	case days <= recentDays:
		return recentActivityScore
	case days <= weekDays:
		return weekActivityScore
	default:
		return staleActivityScore
	}
}
