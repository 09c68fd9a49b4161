package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"attendterm/internal/infrastructure/storage"
	"attendterm/internal/service/registry"
)

var registryJSON bool

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect the local fingerprint registry",
}

var registryShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the registry document",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		repo, err := storage.NewFileRegistryRepository(cfg.Registry.Path)
		if err != nil {
			return err
		}
		doc := registry.Open(repo, log).Snapshot()

		out := cmd.OutOrStdout()
		if registryJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		}
		fmt.Fprintf(out, "registry: %s\nnext slot: %d\n", cfg.Registry.Path, doc.NextID)
		for _, fp := range doc.Fingerprints {
			fmt.Fprintf(out, "%5d  %s\n", fp.Slot, fp.Meta)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registryCmd)
	registryCmd.AddCommand(registryShowCmd)
	registryShowCmd.Flags().BoolVar(&registryJSON, "json", false, "print the raw JSON document")
}
