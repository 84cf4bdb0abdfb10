package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/byt/internal/config"
	"github.com/zeusync/byt/internal/core/observability/log"
	"github.com/zeusync/byt/internal/demo"
	"github.com/zeusync/byt/internal/scenario"
)

// DemoSet provides everything the demo command needs from a loaded config.
var DemoSet = wire.NewSet(
	ProvideLogger,
	ProvideRegistry,
	ProvideScenario,
	demo.NewRunner,
	wire.Bind(new(log.Log), new(*log.Logger)),
)

// ProvideLogger builds the application logger. The cleanup flushes it.
func ProvideLogger(cfg *config.Config) (*log.Logger, func(), error) {
	opts, err := cfg.Log.LoggerOptions()
	if err != nil {
		return nil, nil, err
	}
	logger, err := log.New(opts)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func ProvideRegistry() scenario.Registry {
	return demo.NewRegistry()
}

// ProvideScenario loads the configured scenario file, or the built-in one.
func ProvideScenario(cfg *config.Config) (*scenario.Scenario, error) {
	if cfg.Demo.Scenario == "" {
		return demo.DefaultScenario()
	}
	return scenario.LoadFile(cfg.Demo.Scenario)
}
