package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(defaults())
	require.NoError(t, err)

	assert.Equal(t, 57600, cfg.Sensor.Baud)
	assert.Equal(t, uint32(0xFFFFFFFF), cfg.Sensor.Address)
	assert.Zero(t, cfg.Sensor.Capacity)
	assert.Equal(t, 100*time.Millisecond, cfg.Sensor.FingerPoll)
	assert.Equal(t, time.Second, cfg.Button.LongPress)
	assert.Equal(t, 20*time.Millisecond, cfg.Button.PollInterval)
	assert.Equal(t, "gpiochip0", cfg.Button.Chip)
	assert.Equal(t, "pull-up", cfg.Button.Bias)
	assert.Equal(t, 8*time.Second, cfg.Terminal.ResetWindow)
	assert.Equal(t, 16, cfg.Display.Width)
	assert.Equal(t, "console", cfg.Display.Type)
	assert.Empty(t, cfg.Service.SimulatedTime)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"odd baud", "sensor.baud", 1200},
		{"negative capacity", "sensor.capacity", -1},
		{"unknown bias", "button.bias", "floating"},
		{"empty gpio chip", "button.chip", ""},
		{"long press shorter than poll", "button.long_press", "10ms"},
		{"unknown display", "display.type", "oled"},
		{"serlcd without port", "display.type", "serlcd"},
		{"narrow display", "display.width", 4},
		{"empty registry path", "registry.path", ""},
		{"relative base url", "service.base_url", "attendance.local"},
		{"bad simulated time", "service.simulated_time", "tomorrow"},
		{"zero reset window", "terminal.reset_window", "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := defaults()
			v.Set(tt.key, tt.val)
			_, err := Load(v)
			assert.Error(t, err)
		})
	}
}

func TestNewViperReadsFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attendterm.yaml")
	yaml := "sensor:\n  port: /dev/ttyAMA0\n  capacity: 300\nservice:\n  simulated_time: \"2025-03-03T09:05:00\"\nterminal:\n  reset_window: 5s\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("ATTENDTERM_SERVICE_BASE_URL", "http://10.0.0.2:8080")

	v, err := NewViper(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyAMA0", cfg.Sensor.Port)
	assert.Equal(t, 300, cfg.Sensor.Capacity)
	assert.Equal(t, 5*time.Second, cfg.Terminal.ResetWindow)
	assert.Equal(t, "2025-03-03T09:05:00", cfg.Service.SimulatedTime)
	assert.Equal(t, "http://10.0.0.2:8080", cfg.Service.BaseURL)
}

func TestNewViperMissingExplicitFile(t *testing.T) {
	_, err := NewViper(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
