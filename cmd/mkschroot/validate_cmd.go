package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dirtbike/mkschroot/internal/config"
)

// createValidateCommand creates the validate subcommand
func createValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate PROFILE_FILE",
		Short: "validates a provisioning profile without side effects",
		Args:  cobra.ExactArgs(1),
		RunE:  executeValidate,
	}
}

// executeValidate handles the validate command execution logic
func executeValidate(cmd *cobra.Command, args []string) error {
	profile, err := config.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "valid profile: prefix %s, schroot root %s, %d include packages\n",
		profile.Prefix, profile.SchrootRoot, len(profile.Includes))
	return nil
}
