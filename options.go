package latm

import "go.uber.org/zap"

// Option configures a stream reader.
type Option func(*readerOptions)

type readerOptions struct {
	logger *zap.Logger
}

// WithLogger sets the logger used to report resynchronization and
// truncated input. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *readerOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newReaderOptions(opts []Option) readerOptions {
	o := readerOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
