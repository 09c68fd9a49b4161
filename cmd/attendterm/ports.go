package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"attendterm/internal/service/connection"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports available for the sensor and display",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := connection.GetSystemPorts()
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no serial ports found")
			return nil
		}
		for _, p := range list {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}
