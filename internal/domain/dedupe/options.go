package dedupe

// Option applies a configuration option to the deduper.
type Option func(*fifoDeduper)

// WithMaxSize sets the maximum number of IDs to keep in memory.
// Once full, the oldest id is evicted. maxSize <= 0 keeps every id.
func WithMaxSize(maxSize int) Option {
	return func(d *fifoDeduper) {
		d.maxSize = maxSize
	}
}
