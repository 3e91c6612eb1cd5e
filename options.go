package lshgo

// Option customizes an Index at construction time.
type Option func(*Index)

// WithLogger sets the logger used for training, hashing and persistence.
// The default discards all output.
func WithLogger(logger *Logger) Option {
	return func(idx *Index) {
		idx.logger = logger
	}
}

// WithSeed sets the seed for the legacy per-table random arrays and for
// deriving each table's training random source. The same seed reproduces
// the same trained index on the same dataset.
func WithSeed(seed int64) Option {
	return func(idx *Index) {
		idx.seed = seed
	}
}
