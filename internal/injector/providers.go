// Package injector wires a runnable game from a config.
package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/wildcatch/internal/core/config"
	"github.com/zeusync/wildcatch/internal/core/events/bus"
	"github.com/zeusync/wildcatch/internal/core/observability/log"
	"github.com/zeusync/wildcatch/internal/core/sim"
	"github.com/zeusync/wildcatch/internal/server"
)

// Game is everything a host needs to run one simulation.
type Game struct {
	Config config.Config
	Logger log.Log
	Bus    bus.EventBus
	Sim    *sim.Simulation
	Viewer *server.Server
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideBus,
	sim.New,
	ProvideServerConfig,
	server.New,
	wire.Struct(new(Game), "*"),
)

func ProvideLogger(cfg config.Config) (log.Log, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger, err := log.New(log.Options{Level: level, Format: cfg.LogFormat})
	if err != nil {
		return nil, err
	}
	return logger, nil
}

// ProvideBus returns the event bus with delivery logging attached.
func ProvideBus(logger log.Log) bus.EventBus {
	b := bus.New()
	b.AddObserver(bus.NewLogObserver(logger.Named("bus")))
	return b
}

func ProvideServerConfig(cfg config.Config) server.Config {
	return server.FromViewerConfig(cfg.Viewer)
}
