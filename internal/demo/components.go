package demo

import (
	"github.com/zeusync/byt/internal/core/models"
	"github.com/zeusync/byt/internal/scenario"
)

type Name struct {
	models.ComponentBase
	Value string
}

type Position struct {
	models.ComponentBase
	X, Y float64
}

type Velocity struct {
	models.ComponentBase
	DX, DY float64
}

// FooBar is a marker used to tag a subset of entities.
type FooBar struct {
	models.ComponentBase
	Foo, Bar bool
}

// Lifetime removes its entity after Ticks ticks.
type Lifetime struct {
	models.ComponentBase
	Ticks int
}

// Register adds the demo components to reg under their scenario names:
// name, position, velocity, foobar and lifetime.
func Register(reg scenario.Registry) {
	reg.Register("name", func(index int, p scenario.Params) (models.Component, error) {
		value, err := p.String("value", "entity_{n}", index)
		if err != nil {
			return nil, err
		}
		return &Name{Value: value}, nil
	})
	reg.Register("position", func(_ int, p scenario.Params) (models.Component, error) {
		x, err := p.Float("x", 0)
		if err != nil {
			return nil, err
		}
		y, err := p.Float("y", 0)
		if err != nil {
			return nil, err
		}
		return &Position{X: x, Y: y}, nil
	})
	reg.Register("velocity", func(_ int, p scenario.Params) (models.Component, error) {
		dx, err := p.Float("dx", 0)
		if err != nil {
			return nil, err
		}
		dy, err := p.Float("dy", 0)
		if err != nil {
			return nil, err
		}
		return &Velocity{DX: dx, DY: dy}, nil
	})
	reg.Register("foobar", func(_ int, p scenario.Params) (models.Component, error) {
		foo, err := p.Bool("foo", false)
		if err != nil {
			return nil, err
		}
		bar, err := p.Bool("bar", false)
		if err != nil {
			return nil, err
		}
		return &FooBar{Foo: foo, Bar: bar}, nil
	})
	reg.Register("lifetime", func(index int, p scenario.Params) (models.Component, error) {
		ticks, err := p.Int("ticks", 1)
		if err != nil {
			return nil, err
		}
		// stagger expiry so entities of one group do not all vanish together
		step, err := p.Int("stagger", 0)
		if err != nil {
			return nil, err
		}
		return &Lifetime{Ticks: ticks + step*index}, nil
	})
}
