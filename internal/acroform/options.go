package acroform

import "go.uber.org/zap"

type options struct {
	logger   *zap.Logger
	priority PriorityFunc
}

// Option configures Extract and Fill.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithPriority replaces DefaultPriority when ranking candidates that share
// a field name.
func WithPriority(fn PriorityFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.priority = fn
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:   zap.NewNop(),
		priority: DefaultPriority,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
