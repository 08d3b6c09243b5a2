package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"talent-match-workers/internal/common/config"
	"talent-match-workers/internal/common/optional"
	"talent-match-workers/internal/compensation"
)

func newAlignCmd() *cobra.Command {
	var (
		expectation, minBudget, maxBudget float64
		expectationCurrency               string
		budgetCurrency                    string
		ratesFile                         string
	)

	cmd := &cobra.Command{
		Use:   "align",
		Short: "Classify a salary expectation against a budget range",
		Long:  "Classify a salary expectation against a budget range. Omitted amounts are treated as undisclosed.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			aligner, badges := compensation.DefaultAligner(), compensation.DefaultBadgeTable()
			if cfg != nil {
				if aligner, err = config.BuildAligner(cfg); err != nil {
					return fmt.Errorf("build aligner: %w", err)
				}
				if badges, err = config.BuildBadgeTable(cfg); err != nil {
					return fmt.Errorf("build badges: %w", err)
				}
			}
			if ratesFile != "" {
				table, err := config.LoadRates(ratesFile)
				if err != nil {
					return err
				}
				if _, err := aligner.Rates().Reload(table); err != nil {
					return err
				}
			}

			flags := cmd.Flags()
			result := aligner.CalculateCompensationAlignment(
				flagValue(flags, "expectation", expectation),
				flagValue(flags, "min", minBudget),
				flagValue(flags, "max", maxBudget),
				expectationCurrency,
				budgetCurrency,
			)
			return printJSON(cmd.OutOrStdout(), badges.Summarize(result))
		},
	}

	cmd.Flags().Float64Var(&expectation, "expectation", 0, "Expected salary")
	cmd.Flags().Float64Var(&minBudget, "min", 0, "Budget lower bound")
	cmd.Flags().Float64Var(&maxBudget, "max", 0, "Budget upper bound")
	cmd.Flags().StringVar(&expectationCurrency, "expectation-currency", "", "ISO code of the expectation")
	cmd.Flags().StringVar(&budgetCurrency, "budget-currency", "", "ISO code of the budget")
	cmd.Flags().StringVar(&ratesFile, "rates", "", "Rates file overriding the configured table")
	return cmd
}

// flagValue is absent unless the flag was given.
func flagValue(flags *pflag.FlagSet, name string, v float64) optional.Value[float64] {
	if !flags.Changed(name) {
		return optional.None[float64]()
	}
	return optional.Some(v)
}
