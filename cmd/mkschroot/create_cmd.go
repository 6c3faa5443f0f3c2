package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dirtbike/mkschroot/internal/config"
	"github.com/dirtbike/mkschroot/internal/schroot"
	"github.com/dirtbike/mkschroot/internal/utils/logger"
	"github.com/dirtbike/mkschroot/internal/utils/slice"
	"github.com/dirtbike/mkschroot/internal/utils/system"
)

// Create command flags
var (
	profilePath string
	skipReport  bool
)

// createCreateCommand creates the create subcommand
func createCreateCommand() *cobra.Command {
	createCmd := &cobra.Command{
		Use:   "create [flags]",
		Short: "creates a schroot build environment for the host release",
		Long: `Create detects the host architecture and release codename,
		writes a schroot configuration under /etc/schroot/chroot.d,
		bootstraps the chroot directory with debootstrap and runs the
		post-setup commands inside the source view. Running two instances
		concurrently for the same host release is unsupported.`,
		Args: cobra.NoArgs,
		RunE: executeCreate,
	}

	addCreateFlags(createCmd.Flags())
	return createCmd
}

func addCreateFlags(flags *pflag.FlagSet) {
	flags.StringVar(&profilePath, "profile", "",
		"Path to a YAML provisioning profile (built-in defaults when omitted)")
	flags.BoolVar(&skipReport, "no-report", false,
		"Skip appending the chroot name to the provision report under builds/")
}

// executeCreate handles the create command execution logic
func executeCreate(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	profile := config.Default()
	if profilePath != "" {
		p, err := config.Load(profilePath)
		if err != nil {
			return err
		}
		profile = p
	}

	if err := system.EnsureDebootstrap(); err != nil {
		return fmt.Errorf("checking bootstrap tool: %w", err)
	}

	prov := schroot.NewProvisioner(profile)
	if err := prov.Provision(); err != nil {
		return err
	}

	if !skipReport {
		if !slice.Contains(logger.GlobalProvisionReport.Items, prov.ChrootName()) {
			logger.GlobalProvisionReport.Items = append(
				logger.GlobalProvisionReport.Items, prov.ChrootName())
		}
		if err := logger.WriteProvisionReportToFile(); err != nil {
			log.Warnf("Failed to write provision report: %v", err)
		}
	}

	log.Infof("Schroot %s is ready", prov.ChrootName())
	return nil
}
