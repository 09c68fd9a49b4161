// Command attendterm runs the fingerprint attendance terminal.
//
// Configuration sources, highest priority first: command-line flags,
// ATTENDTERM_<SECTION>_<KEY> environment variables, the YAML file given by
// --config (or attendterm.yaml in the working directory or /etc/attendterm),
// built-in defaults.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"attendterm/internal/config"
	"attendterm/internal/domain/ports"
	"attendterm/internal/infrastructure/logger"
)

var (
	cfgFile string
	v       = newViper()
)

var rootCmd = &cobra.Command{
	Use:   "attendterm",
	Short: "Fingerprint attendance terminal",
	Long: `attendterm drives a fingerprint attendance terminal: an R30x-class sensor on a
UART, a single button, a two-line display and an HTTP attendance service.

Commands:
  attendterm run             Run on the device hardware
  attendterm sim             Run with a simulated sensor and keyboard button
  attendterm ports           List serial ports
  attendterm registry show   Print the local fingerprint registry
  attendterm stub            Serve a stub attendance service for bench tests`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Configure(v, cfgFile)
	},
}

func newViper() *viper.Viper {
	v := viper.New()
	config.SetDefaults(v)
	return v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default attendterm.yaml in . or /etc/attendterm)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().String("registry", "", "registry document path")

	v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	v.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	v.BindPFlag("registry.path", rootCmd.PersistentFlags().Lookup("registry"))
}

// loadConfig разбирает конфигурацию и создаёт логгер
func loadConfig() (*config.Config, ports.Logger, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: os.Stderr})
	return cfg, log, nil
}

// signalContext отменяется по SIGINT или SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
