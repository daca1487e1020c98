package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/raw_surveillance.parquet", cfg.InputPath)
	assert.Equal(t, "data/smoothed_surveillance.parquet", cfg.OutputPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 5, cfg.MinGroupWeeks)
	assert.Zero(t, cfg.KernelBandwidth)
	assert.Empty(t, cfg.PushgatewayURL)
	assert.Equal(t, "flu-surveillance-etl", cfg.PushJob)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("INPUT_PATH", "in.parquet")
	t.Setenv("OUTPUT_PATH", "out.parquet")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("MIN_GROUP_WEEKS", "8")
	t.Setenv("KERNEL_BANDWIDTH", "1.5")
	t.Setenv("PUSHGATEWAY_URL", "http://gateway:9091")
	t.Setenv("PUSH_JOB", "smoothing-nightly")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "in.parquet", cfg.InputPath)
	assert.Equal(t, "out.parquet", cfg.OutputPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 8, cfg.MinGroupWeeks)
	assert.InEpsilon(t, 1.5, cfg.KernelBandwidth, 1e-9)
	assert.Equal(t, "http://gateway:9091", cfg.PushgatewayURL)
	assert.Equal(t, "smoothing-nightly", cfg.PushJob)
}

func TestLoad_InvalidMinGroupWeeks(t *testing.T) {
	t.Setenv("MIN_GROUP_WEEKS", "not-a-number")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MIN_GROUP_WEEKS")
}

func TestLoad_MinGroupWeeksTooSmall(t *testing.T) {
	t.Setenv("MIN_GROUP_WEEKS", "2")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MIN_GROUP_WEEKS")
}

func TestLoad_InvalidKernelBandwidth(t *testing.T) {
	t.Setenv("KERNEL_BANDWIDTH", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KERNEL_BANDWIDTH")
}

func TestLoad_NegativeKernelBandwidth(t *testing.T) {
	t.Setenv("KERNEL_BANDWIDTH", "-1")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KERNEL_BANDWIDTH")
}
