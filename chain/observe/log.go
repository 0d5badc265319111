package observe

import (
	"github.com/rs/zerolog"

	"github.com/lguimbarda/min-chain/chain/core"
)

// Logger returns hooks that write one event per stage to logger: debug for
// successful stages, error for failed ones.
func Logger(logger zerolog.Logger) core.Hooks {
	return core.Hooks{
		OnStage: func(ev core.StageEvent) {
			e := logger.Debug()
			if ev.Err != nil {
				e = logger.Error().Err(ev.Err)
			}
			e.Str("op", ev.Op).
				Int("in", ev.In).
				Int("out", ev.Out).
				Dur("elapsed", ev.Elapsed).
				Msg("stage")
		},
	}
}
