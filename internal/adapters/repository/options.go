package repository

// Option applies a configuration option to an index.
type Option func(*options)

type options struct {
	capacity int
}

// WithCapacity pre-sizes an index for the expected number of cities.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
