package demo

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/byt/internal/core/events/bus"
	"github.com/zeusync/byt/internal/core/observability/log"
	"github.com/zeusync/byt/internal/core/supervisor"
	"github.com/zeusync/byt/internal/scenario"
)

// Report summarizes one world after its run
type Report struct {
	World   int
	Ticks   int
	Created int
	Removed int
	Stats   supervisor.Stats
	Elapsed time.Duration
}

// Runner populates isolated worlds from one scenario and ticks them
// concurrently, one goroutine per world. Worlds share no state.
type Runner struct {
	log      log.Log
	scenario *scenario.Scenario
	registry scenario.Registry
}

func NewRunner(logger log.Log, scen *scenario.Scenario, reg scenario.Registry) *Runner {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Runner{log: logger, scenario: scen, registry: reg}
}

// Logger returns the logger worlds report to.
func (r *Runner) Logger() log.Log {
	return r.log
}

// Run ticks worlds worlds ticks times each. The first failing world cancels
// the others; reports of every world are returned either way.
func (r *Runner) Run(ctx context.Context, worlds, ticks int) ([]Report, error) {
	reports := make([]Report, worlds)
	g, ctx := errgroup.WithContext(ctx)
	for i := range worlds {
		g.Go(func() error {
			rep, err := r.runWorld(ctx, i, ticks)
			reports[i] = rep
			return err
		})
	}
	err := g.Wait()
	return reports, err
}

func (r *Runner) runWorld(ctx context.Context, id, ticks int) (Report, error) {
	started := time.Now()
	rep := Report{World: id}
	logger := r.log.With(log.Int("world", id))

	events := bus.New()
	_, err := events.Subscribe(supervisor.EventEntityRemoved, func(bus.Event) error {
		rep.Removed++
		return nil
	})
	if err != nil {
		return rep, err
	}

	world := supervisor.New(supervisor.WithLogger(logger), supervisor.WithEventBus(events))
	created, err := r.scenario.Build(world, r.registry)
	rep.Created = len(created)
	if err != nil {
		return rep, fmt.Errorf("world %d: build scenario: %w", id, err)
	}
	if err = Install(world); err != nil {
		return rep, fmt.Errorf("world %d: %w", id, err)
	}
	logger.Debug("world populated", log.Int("entities", rep.Created))

	for rep.Ticks < ticks {
		if err = ctx.Err(); err != nil {
			break
		}
		if err = world.Tick(1.0); err != nil {
			err = fmt.Errorf("world %d: tick %d: %w", id, rep.Ticks, err)
			break
		}
		rep.Ticks++
	}

	rep.Stats = world.Stats()
	rep.Elapsed = time.Since(started)
	logger.Info("world finished",
		log.Int("ticks", rep.Ticks),
		log.Int("entities", rep.Stats.Entities),
		log.Int("removed", rep.Removed),
		log.Duration("elapsed", rep.Elapsed),
	)
	return rep, err
}
