package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check that docket files compile",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validate(args)
		},
	}
}

// validate reports every file and fails with the first error.
func (a *app) validate(files []string) error {
	var first error
	failed := 0

	for _, file := range files {
		log := a.log.WithField("input", file)

		if _, err := loadDocument(file); err != nil {
			log.WithError(err).Error("invalid docket")
			if first == nil {
				first = err
			}
			failed++
			continue
		}
		log.Info("docket is valid")
	}

	if first != nil {
		return exitWith(exitCode(first), fmt.Errorf("%d of %d dockets invalid: %w", failed, len(files), first))
	}
	return nil
}
