package main

import (
	"os"

	"github.com/spf13/cobra"

	"attendterm/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the terminal on the device hardware",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		hw, err := app.OpenHardware(cfg, os.Stdout, log)
		if err != nil {
			log.Error("hardware init failed", "err", err)
			return err
		}
		a, err := app.New(cfg, hw, log)
		if err != nil {
			hw.Close()
			return err
		}
		defer a.Close()

		ctx, stop := signalContext()
		defer stop()
		return a.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("sensor-port", "", "sensor UART port")
	runCmd.Flags().String("button-chip", "", "GPIO chip of the button line (gpiochip0)")
	runCmd.Flags().Int("button-pin", 0, "button line offset on the GPIO chip")
	runCmd.Flags().String("service", "", "attendance service base URL")
	v.BindPFlag("sensor.port", runCmd.Flags().Lookup("sensor-port"))
	v.BindPFlag("button.chip", runCmd.Flags().Lookup("button-chip"))
	v.BindPFlag("button.pin", runCmd.Flags().Lookup("button-pin"))
	v.BindPFlag("service.base_url", runCmd.Flags().Lookup("service"))
}
