// Package config loads runtime settings for the solver from defaults, an
// optional hundred.yaml in the working directory, and HUNDRED_* environment
// variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// FallbackGoroutines is used when CPU detection reports nothing usable.
	FallbackGoroutines = 4

	DefaultFlushEvery     = 10000
	DefaultSampleInterval = 250 * time.Millisecond
	DefaultReportInterval = 5 * time.Second
	DefaultOutputDir      = "solutions"
)

// Config holds every tunable of a search run.
type Config struct {
	Goroutines     int
	FlushEvery     uint64
	SampleInterval time.Duration
	ReportInterval time.Duration
	OutputDir      string
	Debug          bool
}

// Load resolves the configuration. A missing config file is fine; a
// malformed one is not.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("hundred")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("hundred")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	goroutines := runtime.NumCPU()
	if goroutines < 1 {
		goroutines = FallbackGoroutines
	}
	v.SetDefault("goroutines", goroutines)
	v.SetDefault("flush-every", DefaultFlushEvery)
	v.SetDefault("sample-interval", DefaultSampleInterval)
	v.SetDefault("report-interval", DefaultReportInterval)
	v.SetDefault("output-dir", DefaultOutputDir)
	v.SetDefault("debug", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Goroutines:     v.GetInt("goroutines"),
		FlushEvery:     v.GetUint64("flush-every"),
		SampleInterval: v.GetDuration("sample-interval"),
		ReportInterval: v.GetDuration("report-interval"),
		OutputDir:      v.GetString("output-dir"),
		Debug:          v.GetBool("debug"),
	}
	if cfg.Goroutines < 1 {
		cfg.Goroutines = FallbackGoroutines
	}
	if cfg.FlushEvery == 0 {
		cfg.FlushEvery = DefaultFlushEvery
	}
	return cfg, nil
}
