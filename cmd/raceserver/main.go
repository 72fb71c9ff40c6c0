// Command raceserver boots the race core standalone: it loads one race
// (either from a config file or a built-in two-team default), spawns the
// tick-driven simulation loop and the race watchdog, and logs periodic
// client-view snapshots. The HTTP/gRPC surface, authentication, and the
// relational schema are out of this core's scope — raceserver
// exists to prove the core runs, not to replace the production API layer.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yatahunt/racecore/config"
	"github.com/yatahunt/racecore/driver"
	"github.com/yatahunt/racecore/race"
	"github.com/yatahunt/racecore/runtime"
	"github.com/yatahunt/racecore/store"
	"github.com/yatahunt/racecore/team"
	"github.com/yatahunt/racecore/track"
	"github.com/yatahunt/racecore/watchdog"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.LevelFieldName = "severity"
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("error loading config")
	}

	logLevel, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal().Str("input", cfg.LogLevel).Err(err).Msg("error parsing log level")
	}
	logger = logger.Level(logLevel)

	state, err := bootRace(logger, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load initial race")
	}

	mem := store.NewMemory()
	handle := runtime.NewHandle(logger, state)
	handle.AttachStore(mem)
	handle.Dispatch("start")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	handle.Spawn(gctx, g)

	wd := watchdog.New(logger, mem, handle)
	g.Go(func() error { return wd.Run(gctx) })

	g.Go(func() error { return logSnapshots(gctx, logger, handle) })

	logger.Info().Msg("race core running")
	if err := g.Wait(); err != nil && ctx.Err() == nil {
		logger.Error().Err(err).Msg("race core exited with error")
	}
}

// bootRace loads a config-file race if RACE_CONFIG_PATH is set, otherwise a
// built-in two-team default so the binary has something to run standalone.
func bootRace(logger zerolog.Logger, cfg config.Server) (*race.State, error) {
	if cfg.RaceConfigPath != "" {
		return race.LoadFromConfigFile(logger, cfg.RaceConfigPath)
	}
	return demoRace(logger)
}

func demoRace(logger zerolog.Logger) (*race.State, error) {
	trk, err := track.Load("demo")
	if err != nil {
		return nil, err
	}

	teams := []team.Team{
		{Number: 1, Name: "Alpha Racing", Color: "#d62828", PitEfficiency: 0.6},
		{Number: 2, Name: "Beta Motorsport", Color: "#1d3557", PitEfficiency: 0.6},
	}
	drivers := []driver.Driver{
		{Name: "A. Alpha", SkillLevel: 0.7, Stamina: 0.8, WeatherTolerance: 0.6, Consistency: 0.7, Focus: 0.8},
		{Name: "A. Second", SkillLevel: 0.68, Stamina: 0.78, WeatherTolerance: 0.6, Consistency: 0.68, Focus: 0.78},
		{Name: "B. Beta", SkillLevel: 0.65, Stamina: 0.75, WeatherTolerance: 0.6, Consistency: 0.7, Focus: 0.75},
		{Name: "B. Second", SkillLevel: 0.63, Stamina: 0.73, WeatherTolerance: 0.6, Consistency: 0.68, Focus: 0.73},
	}
	return race.LoadDefault(logger, trk, teams, drivers, nil)
}

func logSnapshots(ctx context.Context, logger zerolog.Logger, handle *runtime.Handle) error {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			view := handle.Snapshot()
			logger.Info().
				Str("run_state", view.RunState).
				Uint64("tick", view.TickCount).
				Int("cars", len(view.Cars)).
				Msg("race snapshot")
		}
	}
}
