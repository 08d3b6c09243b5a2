package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"talent-match-workers/internal/common/config"
	"talent-match-workers/internal/compensation"
	"talent-match-workers/internal/matching"
	"talent-match-workers/internal/models"
)

type scoreOutput struct {
	TalentID      string                `json:"talentId"`
	OpportunityID string                `json:"opportunityId"`
	EngineVersion string                `json:"engineVersion"`
	Result        matching.MatchResult  `json:"result"`
	Compensation  *compensation.Summary `json:"compensation,omitempty"`
}

func newScoreCmd() *cobra.Command {
	var (
		talentFile      string
		opportunityFile string
		withComp        bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one talent against one opportunity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				talent      models.TalentRecord
				opportunity models.OpportunityRecord
			)
			if err := readJSONFile(talentFile, &talent); err != nil {
				return err
			}
			if err := readJSONFile(opportunityFile, &opportunity); err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			engine, aligner, badges := matching.DefaultEngine(), compensation.DefaultAligner(), compensation.DefaultBadgeTable()
			if cfg != nil {
				if engine, err = config.BuildEngine(cfg); err != nil {
					return fmt.Errorf("build engine: %w", err)
				}
				if aligner, err = config.BuildAligner(cfg); err != nil {
					return fmt.Errorf("build aligner: %w", err)
				}
				if badges, err = config.BuildBadgeTable(cfg); err != nil {
					return fmt.Errorf("build badges: %w", err)
				}
			}

			out := scoreOutput{
				TalentID:      talent.ID,
				OpportunityID: opportunity.ID,
				EngineVersion: engine.Version(),
				Result:        engine.CalculateMatch(talent, opportunity),
			}
			if withComp {
				summary := badges.Summarize(aligner.AlignRecords(talent, opportunity))
				out.Compensation = &summary
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVarP(&talentFile, "talent", "t", "", "Path to a TalentRecord JSON file (required)")
	cmd.Flags().StringVarP(&opportunityFile, "opportunity", "o", "", "Path to an OpportunityRecord JSON file (required)")
	cmd.Flags().BoolVar(&withComp, "compensation", false, "Include compensation alignment")
	_ = cmd.MarkFlagRequired("talent")
	_ = cmd.MarkFlagRequired("opportunity")
	return cmd
}
