package chain

import (
	"github.com/rs/zerolog"

	"github.com/lguimbarda/min-chain/chain/core"
)

// Option configures how a Pipeline and every Pipeline derived from it are
// observed.
type Option func(*options)

type options struct {
	logger zerolog.Logger
	hooks  core.HookSet
}

// defaultOptions is read-only: pipelines without options share it.
var defaultOptions = &options{logger: zerolog.Nop()}

func newOptions(base *options, opts []Option) *options {
	if base == nil {
		base = defaultOptions
	}
	if len(opts) == 0 {
		return base
	}
	o := &options{logger: base.logger, hooks: base.hooks}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sends one debug event per operation to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithHooks registers stage hooks. Hooks registered by earlier options run
// first.
func WithHooks(h core.Hooks) Option {
	return func(o *options) {
		o.hooks = o.hooks.With(h)
	}
}
