package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"talent-match-workers/internal/common/config"
	"talent-match-workers/internal/common/validation"
)

func newCheckConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Load the configuration and build every engine table",
		Long:  "Load the configuration and build the weight, rate and badge tables plus the input schemas. Exits non-zero on the first configuration error.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg == nil {
				if cfg, err = config.Load(); err != nil {
					return err
				}
			}

			engine, err := config.BuildEngine(cfg)
			if err != nil {
				return fmt.Errorf("matching: %w", err)
			}
			aligner, err := config.BuildAligner(cfg)
			if err != nil {
				return fmt.Errorf("compensation: %w", err)
			}
			if _, err := config.BuildBadgeTable(cfg); err != nil {
				return fmt.Errorf("badges: %w", err)
			}
			if _, err := validation.NewDefaultValidator(); err != nil {
				return fmt.Errorf("registry: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "engine version:  %s\n", engine.Version())
			fmt.Fprintf(out, "rate version:    %s (reference %s)\n", aligner.Rates().Table().Version(), aligner.Rates().Table().Reference())
			fmt.Fprintf(out, "tolerance:       %.2f\n", aligner.Tolerance())
			for _, e := range engine.Weights().Entries() {
				fmt.Fprintf(out, "weight %-12s %.2f\n", e.Dimension, e.Weight)
			}
			fmt.Fprintln(out, "configuration OK")
			return nil
		},
	}
}
