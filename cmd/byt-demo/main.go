// Command byt-demo populates several isolated worlds from a scenario and
// ticks them concurrently, logging per-world statistics at the end.
//
//	byt-demo --config byt.yaml
//	BYT_DEMO_WORLDS=8 BYT_DEMO_PROFILE=cpu byt-demo
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/profile"
	"github.com/spf13/pflag"

	"github.com/zeusync/byt/internal/config"
	"github.com/zeusync/byt/internal/core/observability/log"
	"github.com/zeusync/byt/internal/core/relations"
	"github.com/zeusync/byt/internal/demo"
	"github.com/zeusync/byt/internal/injector"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to a config file (yaml, json or toml)")
	pflag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "byt-demo:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, cleanup, err := injector.InitializeRunner(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if p := startProfile(cfg.Demo); p != nil {
		defer p.Stop()
	}

	reports, err := runner.Run(ctx, cfg.Demo.Worlds, cfg.Demo.Ticks)
	for _, rep := range reports {
		logReport(runner, rep)
	}
	return err
}

func startProfile(cfg config.DemoConfig) interface{ Stop() } {
	opts := []func(*profile.Profile){profile.ProfilePath(cfg.ProfileDir), profile.NoShutdownHook, profile.Quiet}
	switch cfg.Profile {
	case config.ProfileCPU:
		return profile.Start(append(opts, profile.CPUProfile)...)
	case config.ProfileMem:
		return profile.Start(append(opts, profile.MemProfileAllocs)...)
	default:
		return nil
	}
}

func logReport(runner *demo.Runner, rep demo.Report) {
	fields := []log.Field{
		log.Int("world", rep.World),
		log.Int("ticks", rep.Ticks),
		log.Int("created", rep.Created),
		log.Int("removed", rep.Removed),
		log.Int("entities", rep.Stats.Entities),
		log.Int("components", rep.Stats.Components),
		log.Uint64("queries", rep.Stats.Queries),
		log.Duration("elapsed", rep.Elapsed),
	}
	for tag, n := range rep.Stats.ByType {
		fields = append(fields, log.Int(relations.TypeName(tag), n))
	}
	runner.Logger().Info("world report", fields...)
}
