package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Config holds all batch-run settings, populated from environment
// variables. Snapshot paths may be overridden by command-line flags.
type Config struct {
	InputPath  string
	OutputPath string
	LogLevel   string
	LogFormat  string

	// MinGroupWeeks is the smallest season group the smoothers are fitted
	// to; smaller groups are emitted unsmoothed.
	MinGroupWeeks int

	// KernelBandwidth is the Gaussian bandwidth in weeks. Zero means the
	// smoother's fixed default.
	KernelBandwidth float64

	// Pushgateway settings; pushing is disabled when the URL is empty.
	PushgatewayURL string
	PushJob        string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	minGroupWeeks, err := parseMinGroupWeeks()
	if err != nil {
		return nil, err
	}

	bandwidth, err := parseKernelBandwidth()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		InputPath:       envOrDefault("INPUT_PATH", "data/raw_surveillance.parquet"),
		OutputPath:      envOrDefault("OUTPUT_PATH", "data/smoothed_surveillance.parquet"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		MinGroupWeeks:   minGroupWeeks,
		KernelBandwidth: bandwidth,
		PushgatewayURL:  os.Getenv("PUSHGATEWAY_URL"),
		PushJob:         envOrDefault("PUSH_JOB", "flu-surveillance-etl"),
	}

	if cfg.InputPath == "" {
		return nil, errors.New("INPUT_PATH is required")
	}
	if cfg.OutputPath == "" {
		return nil, errors.New("OUTPUT_PATH is required")
	}
	if cfg.PushgatewayURL != "" && cfg.PushJob == "" {
		return nil, errors.New("PUSHGATEWAY_URL is set but PUSH_JOB is empty")
	}

	return cfg, nil
}

func parseMinGroupWeeks() (int, error) {
	s := envOrDefault("MIN_GROUP_WEEKS", "5")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid MIN_GROUP_WEEKS %q: %w", s, err)
	}
	// A spline needs three points; anything below that cannot be fitted.
	if n < 3 {
		return 0, fmt.Errorf("invalid MIN_GROUP_WEEKS %d: must be at least 3", n)
	}
	return n, nil
}

func parseKernelBandwidth() (float64, error) {
	s := os.Getenv("KERNEL_BANDWIDTH")
	if s == "" {
		return 0, nil // smoother default
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid KERNEL_BANDWIDTH %q", s)
	}
	return v, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
