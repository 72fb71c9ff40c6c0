// Package config loads process-level server configuration from the
// environment, the way jonsabados-saturdaysspinout's cmd/api.go does for
// its Lambda entrypoints: a tagged struct populated by
// github.com/kelseyhightower/envconfig, read once at startup.
package config

import "github.com/kelseyhightower/envconfig"

// Server holds the environment-derived settings cmd/raceserver needs.
// Per-race configuration (track, teams, laps) is a separate concern,
// loaded by race.LoadFromConfigFile or race.LoadFromDurable instead.
type Server struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// AssetsRoot is read from the same variable track.AssetsEnvVar names.
	// track.Load consults that variable directly; nothing reads this field.
	AssetsRoot string `envconfig:"RACECORE_ASSETS_ROOT"`

	// RaceConfigPath, when set, makes raceserver boot a single config-file
	// race instead of its built-in demo race; the watchdog runs in both
	// cases. The relational schema itself is out of this core's scope;
	// raceserver's demo wiring backs store.Store with store.Memory either
	// way, ready to be swapped for a real implementation of the same
	// interface.
	RaceConfigPath string `envconfig:"RACE_CONFIG_PATH"`
}

// Load populates Server from the environment.
func Load() (Server, error) {
	var cfg Server
	if err := envconfig.Process("", &cfg); err != nil {
		return Server{}, err
	}
	return cfg, nil
}
