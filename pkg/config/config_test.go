package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 500*time.Millisecond, cfg.Sampling.Period)
	assert.Equal(t, int32(3300), cfg.Sampling.FullScaleMV)
	assert.Equal(t, uint8(12), cfg.Sampling.Resolution)
	assert.Equal(t, 100*time.Millisecond, cfg.Sampling.WriteTimeout)
	assert.Equal(t, 10*time.Millisecond, cfg.Sampling.ReadTimeout)
	assert.Equal(t, 100*time.Millisecond, cfg.Sampling.SnapshotTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.LED.HalfPeriod)
	assert.Equal(t, PriorityConfig{Renderer: 2, Sampler: 3, Command: 5, Blink: 6}, cfg.Priorities)
	assert.Equal(t, 10, cfg.Console.QueueSize)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileNotExists(t *testing.T) {
	t.Setenv(EnvMQTTURL, "")
	t.Setenv(EnvDeviceID, "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ValidYAML(t *testing.T) {
	t.Setenv(EnvMQTTURL, "")
	t.Setenv(EnvDeviceID, "")
	filename := filepath.Join(t.TempDir(), "panel.yaml")
	content := `
sampling:
  period: 250ms
  full_scale_mv: 5000
adc:
  driver: iio
led:
  driver: gpio
  pin: GPIO22
  half_period: 1s
display:
  sink: none
link:
  mqtt_url: mqtt://broker:1883/panel/
  device_id: bench-1
`
	require.NoError(t, os.WriteFile(filename, []byte(content), 0644))

	cfg, err := Load(filename)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Sampling.Period)
	assert.Equal(t, int32(5000), cfg.Sampling.FullScaleMV)
	assert.Equal(t, int32(3300), cfg.Sampling.ReferenceMV)
	assert.Equal(t, "iio", cfg.ADC.Driver)
	assert.Equal(t, "GPIO22", cfg.LED.Pin)
	assert.Equal(t, time.Second, cfg.LED.HalfPeriod)
	assert.Equal(t, "none", cfg.Display.Sink)
	assert.Equal(t, "mqtt://broker:1883/panel/", cfg.Link.MQTTURL)
	assert.Equal(t, "bench-1", cfg.Link.DeviceID)
	assert.Equal(t, "statuspanel", cfg.Link.DeviceType)
	assert.Equal(t, 2, cfg.Priorities.Renderer)
}

func TestLoad_InvalidYAML(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("sampling: [1, 2"), 0644))
	_, err := Load(filename)
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv(EnvMQTTURL, "mqtt://env:1883/x/")
	t.Setenv(EnvDeviceID, "env-id")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mqtt://env:1883/x/", cfg.Link.MQTTURL)
	assert.Equal(t, "env-id", cfg.Link.DeviceID)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(EnvMQTTURL, "")
	t.Setenv(EnvDeviceID, "")
	filename := filepath.Join(t.TempDir(), "saved.yaml")
	cfg := Default()
	cfg.LED.Pin = "GPIO5"
	require.NoError(t, cfg.Save(filename))
	loaded, err := Load(filename)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSetupFlags(t *testing.T) {
	cfg := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.SetupFlags(fs)
	require.NoError(t, fs.Parse([]string{"-display", "window", "-led", "gpio", "-shell"}))
	assert.Equal(t, "window", cfg.Display.Sink)
	assert.Equal(t, "gpio", cfg.LED.Driver)
	assert.True(t, cfg.Console.Shell)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Display.Sink = "lcd"
	assert.Error(t, cfg.Validate())
	cfg = Default()
	cfg.ADC.Driver = "spi"
	assert.Error(t, cfg.Validate())
	cfg.ADC.Driver = "modbus"
	assert.Error(t, cfg.Validate())
	cfg.ADC.ModbusEndpoint = "10.0.0.7:502"
	assert.NoError(t, cfg.Validate())
}

func TestValidatePriorities(t *testing.T) {
	testCases := []struct {
		name  string
		prios PriorityConfig
		valid bool
	}{
		{name: "default", prios: Default().Priorities, valid: true},
		{name: "top to idle", prios: PriorityConfig{Renderer: 0, Sampler: 1, Command: 14, Blink: 15}, valid: true},
		{name: "renderer after sampler", prios: PriorityConfig{Renderer: 9, Sampler: 3, Command: 5, Blink: 6}},
		{name: "equal levels", prios: PriorityConfig{Renderer: 2, Sampler: 2, Command: 5, Blink: 6}},
		{name: "blink before command", prios: PriorityConfig{Renderer: 2, Sampler: 3, Command: 7, Blink: 6}},
		{name: "negative", prios: PriorityConfig{Renderer: -1, Sampler: 3, Command: 5, Blink: 6}},
		{name: "beyond idle", prios: PriorityConfig{Renderer: 2, Sampler: 3, Command: 5, Blink: 20}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Priorities = tc.prios
			if tc.valid {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

func TestLoad_PartialPriorities(t *testing.T) {
	t.Setenv(EnvMQTTURL, "")
	t.Setenv(EnvDeviceID, "")
	filename := filepath.Join(t.TempDir(), "panel.yaml")

	require.NoError(t, os.WriteFile(filename, []byte("priorities:\n  blink: 9\n"), 0644))
	cfg, err := Load(filename)
	require.NoError(t, err)
	assert.Equal(t, PriorityConfig{Renderer: 2, Sampler: 3, Command: 5, Blink: 9}, cfg.Priorities)
	assert.NoError(t, cfg.Validate())

	require.NoError(t, os.WriteFile(filename, []byte("priorities:\n  renderer: 9\n"), 0644))
	cfg, err = Load(filename)
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}
