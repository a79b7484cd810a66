package matching

// Weights are the coefficients of the five sub-scores.
type Weights struct {
	Skill      float64
	Goal       float64
	Reputation float64
	Activity   float64
	Diversity  float64
}

// DefaultWeights returns the fixed production weights. They sum to 1.
func DefaultWeights() Weights {
	return Weights{
		Skill:      0.35,
		Goal:       0.25,
		Reputation: 0.15,
		Activity:   0.15,
		Diversity:  0.10,
	}
}
