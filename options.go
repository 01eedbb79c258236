package columnar

import "log/slog"

// defaultIndexCapacity pre-sizes the index builder buffer so that typical
// segments build their index without reallocating.
const defaultIndexCapacity = 100_000

type options struct {
	logger        *slog.Logger
	indexCapacity int
}

// Option configures a Serializer.
type Option func(*options)

// WithLogger configures structured logging. If nil (the default), log
// output is discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithIndexCapacity pre-sizes the index builder buffer in bytes. Useful
// when the approximate index size is known up front.
func WithIndexCapacity(capacity int) Option {
	return func(o *options) {
		if capacity > 0 {
			o.indexCapacity = capacity
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{indexCapacity: defaultIndexCapacity}
	for _, fn := range opts {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}
