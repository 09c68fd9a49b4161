package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"attendterm/internal/app"
	timesvc "attendterm/internal/service/time"
)

var simOffline bool

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the terminal with a simulated sensor and keyboard button",
	Long: `Run the full terminal against an in-memory sensor. The display is printed to
stdout; commands are read from stdin, one per line:

  n      short press (Next)
  s      long press (Select)
  f N    place finger N on the sensor
  l      lift the finger`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		hw, sim := app.SimHardware(cfg, os.Stdout, timesvc.SystemClock{}, !simOffline, log)
		a, err := app.New(cfg, hw, log)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signalContext()
		defer stop()
		go sim.Feed(ctx, os.Stdin)

		fmt.Fprintln(os.Stderr, "commands: n, s, f <id>, l")
		return a.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(simCmd)
	simCmd.Flags().BoolVar(&simOffline, "offline", false, "simulate missing network")
}
