package matching

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithParallelism sets how many goroutines may score candidates at once.
// Values below 1 are ignored; 1 means sequential scoring.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// WithParallelThreshold sets the candidate count from which scoring fans out.
func WithParallelThreshold(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.parallelThreshold = n
		}
	}
}
