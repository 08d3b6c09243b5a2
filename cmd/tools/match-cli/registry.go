package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"talent-match-workers/internal/common/errors"
	"talent-match-workers/internal/common/validation"
	"talent-match-workers/pkg/registry"
)

func newRegistryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect the activity registry",
	}

	var path string
	list := &cobra.Command{
		Use:   "list",
		Short: "List registered activities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := loadRegistry(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, taskType := range reg.TaskTypes() {
				a, _ := reg.Find(taskType)
				fmt.Fprintf(out, "%-30s %-12s %-6s %-12s %s\n", a.TaskType, a.Category, a.Timeout, a.ImplementationStatus, a.DisplayName)
			}
			return nil
		},
	}

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Check that the registry parses and every input schema compiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := loadRegistry(path)
			if err != nil {
				return err
			}
			if _, err := validation.NewValidator(reg); err != nil {
				return err
			}
			for _, a := range reg.Activities {
				if !a.DeclaresError(string(errors.ErrCodeInvalidInput)) {
					return fmt.Errorf("activity %q does not declare %s", a.TaskType, errors.ErrCodeInvalidInput)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registry %s is valid: %d activities\n", reg.Version, len(reg.Activities))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&path, "path", "", "Registry file; the embedded registry when empty")
	cmd.AddCommand(list, validate)
	return cmd
}

func loadRegistry(path string) (*registry.ActivityRegistry, error) {
	if path == "" {
		return registry.Load()
	}
	return registry.LoadRegistry(path)
}
