// Package config загружает конфигурацию терминала через viper: YAML-файл,
// переменные окружения с префиксом ATTENDTERM_ (ATTENDTERM_SENSOR_PORT и т.п.)
// и флаги командной строки. Значения по умолчанию задаются в SetDefaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	timesvc "attendterm/internal/service/time"
)

const EnvPrefix = "ATTENDTERM"

type Config struct {
	Sensor   SensorConfig   `mapstructure:"sensor"`
	Button   ButtonConfig   `mapstructure:"button"`
	Display  DisplayConfig  `mapstructure:"display"`
	Registry RegistryConfig `mapstructure:"registry"`
	Network  NetworkConfig  `mapstructure:"network"`
	Service  ServiceConfig  `mapstructure:"service"`
	Terminal TerminalConfig `mapstructure:"terminal"`
	Log      LogConfig      `mapstructure:"log"`
}

type SensorConfig struct {
	Port       string        `mapstructure:"port"`
	Baud       int           `mapstructure:"baud"`
	Address    uint32        `mapstructure:"address"`
	Password   uint32        `mapstructure:"password"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Capacity   int           `mapstructure:"capacity"` // 0: размер библиотеки модуля
	FingerPoll time.Duration `mapstructure:"finger_poll"`
}

type ButtonConfig struct {
	Chip         string        `mapstructure:"chip"`
	Pin          int           `mapstructure:"pin"` // Номер линии на чипе
	ActiveLow    bool          `mapstructure:"active_low"`
	Bias         string        `mapstructure:"bias"` // pull-up, pull-down или none
	PollInterval time.Duration `mapstructure:"poll_interval"`
	LongPress    time.Duration `mapstructure:"long_press"`
}

type DisplayConfig struct {
	Type  string `mapstructure:"type"` // console или serlcd
	Port  string `mapstructure:"port"`
	Baud  int    `mapstructure:"baud"`
	Width int    `mapstructure:"width"`
}

type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

type NetworkConfig struct {
	Interface string        `mapstructure:"interface"`
	Wait      time.Duration `mapstructure:"wait"`
}

type ServiceConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	CapturePath   string        `mapstructure:"capture_path"`
	DeletePath    string        `mapstructure:"delete_path"`
	DeleteToken   string        `mapstructure:"delete_token"`
	Timeout       time.Duration `mapstructure:"timeout"`
	SimulatedTime string        `mapstructure:"simulated_time"`
}

type TerminalConfig struct {
	ResetWindow time.Duration `mapstructure:"reset_window"`
	ResultHold  time.Duration `mapstructure:"result_hold"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults задаёт значения по умолчанию для всех ключей
func SetDefaults(v *viper.Viper) {
	v.SetDefault("sensor.port", "/dev/ttyS0")
	v.SetDefault("sensor.baud", 57600)
	v.SetDefault("sensor.address", 0xFFFFFFFF)
	v.SetDefault("sensor.password", 0)
	v.SetDefault("sensor.timeout", 2*time.Second)
	v.SetDefault("sensor.capacity", 0)
	v.SetDefault("sensor.finger_poll", 100*time.Millisecond)

	v.SetDefault("button.chip", "gpiochip0")
	v.SetDefault("button.pin", 17)
	v.SetDefault("button.active_low", true)
	v.SetDefault("button.bias", "pull-up")
	v.SetDefault("button.poll_interval", 20*time.Millisecond)
	v.SetDefault("button.long_press", time.Second)

	v.SetDefault("display.type", "console")
	v.SetDefault("display.port", "")
	v.SetDefault("display.baud", 9600)
	v.SetDefault("display.width", 16)

	v.SetDefault("registry.path", "/var/lib/attendterm/registry.json")

	v.SetDefault("network.interface", "")
	v.SetDefault("network.wait", 30*time.Second)

	v.SetDefault("service.base_url", "http://127.0.0.1:5000")
	v.SetDefault("service.capture_path", "/api/attendance/capture")
	v.SetDefault("service.delete_path", "/api/attendance/students")
	v.SetDefault("service.delete_token", "")
	v.SetDefault("service.timeout", 10*time.Second)
	v.SetDefault("service.simulated_time", "")

	v.SetDefault("terminal.reset_window", 8*time.Second)
	v.SetDefault("terminal.result_hold", 2*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// NewViper создает экземпляр viper с умолчаниями и читает конфигурацию через Configure
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	if err := Configure(v, path); err != nil {
		return nil, err
	}
	return v, nil
}

// Configure привязывает v к окружению ATTENDTERM_* и читает файл.
// Если path не пуст, читается этот файл; иначе ищется attendterm.yaml
// в текущем каталоге и /etc/attendterm, отсутствие файла не ошибка.
func Configure(v *viper.Viper, path string) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("attendterm")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/attendterm")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("config: read: %w", err)
		}
	}
	return nil
}

// Load разбирает и проверяет конфигурацию
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate проверяет значения, без которых терминал не запустится
func (c *Config) Validate() error {
	var errs []error
	if c.Sensor.Baud <= 0 || c.Sensor.Baud%9600 != 0 {
		errs = append(errs, fmt.Errorf("sensor.baud %d: must be a multiple of 9600", c.Sensor.Baud))
	}
	if c.Sensor.Capacity < 0 {
		errs = append(errs, fmt.Errorf("sensor.capacity %d: must not be negative", c.Sensor.Capacity))
	}
	if c.Button.LongPress <= c.Button.PollInterval {
		errs = append(errs, fmt.Errorf("button.long_press %s: must exceed poll_interval %s", c.Button.LongPress, c.Button.PollInterval))
	}
	switch c.Button.Bias {
	case "pull-up", "pull-down", "none":
	default:
		errs = append(errs, fmt.Errorf("button.bias %q: want pull-up, pull-down or none", c.Button.Bias))
	}
	if c.Button.Chip == "" {
		errs = append(errs, errors.New("button.chip: required"))
	}
	switch c.Display.Type {
	case "console":
	case "serlcd":
		if c.Display.Port == "" {
			errs = append(errs, errors.New("display.port: required for serlcd"))
		}
	default:
		errs = append(errs, fmt.Errorf("display.type %q: want console or serlcd", c.Display.Type))
	}
	if c.Display.Width < 8 || c.Display.Width > 40 {
		errs = append(errs, fmt.Errorf("display.width %d: out of range 8..40", c.Display.Width))
	}
	if c.Registry.Path == "" {
		errs = append(errs, errors.New("registry.path: required"))
	}
	if u, err := url.Parse(c.Service.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("service.base_url %q: must be an absolute URL", c.Service.BaseURL))
	}
	if c.Service.SimulatedTime != "" {
		if _, err := timesvc.ParseSimulated(c.Service.SimulatedTime); err != nil {
			errs = append(errs, fmt.Errorf("service.simulated_time: %w", err))
		}
	}
	if c.Terminal.ResetWindow <= 0 {
		errs = append(errs, errors.New("terminal.reset_window: must be positive"))
	}
	return errors.Join(errs...)
}
