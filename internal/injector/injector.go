//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/byt/internal/config"
	"github.com/zeusync/byt/internal/demo"
)

func InitializeRunner(cfg *config.Config) (*demo.Runner, func(), error) {
	wire.Build(DemoSet)
	return nil, nil, nil
}
