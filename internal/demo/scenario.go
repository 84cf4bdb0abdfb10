package demo

import (
	"bytes"
	_ "embed"

	"github.com/zeusync/byt/internal/scenario"
)

//go:embed world.yaml
var defaultWorld []byte

// DefaultScenario is used when no scenario file is configured.
func DefaultScenario() (*scenario.Scenario, error) {
	return scenario.LoadYAML(bytes.NewReader(defaultWorld))
}

// NewRegistry returns a scenario registry holding the demo components.
func NewRegistry() scenario.Registry {
	reg := scenario.NewRegistry()
	Register(reg)
	return reg
}
