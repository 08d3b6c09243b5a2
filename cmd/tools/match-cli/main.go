// Package main is match-cli, an offline tool for scoring records, checking
// compensation alignment and validating worker configuration.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"talent-match-workers/internal/common/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "match-cli",
		Short:         "Offline talent/opportunity matching tools",
		Long:          "match-cli runs the match engine and compensation aligner outside the worker runtime, and validates configuration before deployment.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "Path to a worker config file; built-in defaults when empty")

	root.AddCommand(newScoreCmd(), newAlignCmd(), newCheckConfigCmd(), newRegistryCmd())
	return root
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig returns nil when --config is not set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return nil, nil
	}
	return config.LoadFromFile(path)
}

func readJSONFile(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
