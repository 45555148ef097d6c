package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osse101/FleetSync_Go/internal/bootstrap"
	"github.com/osse101/FleetSync_Go/internal/config"
	"github.com/osse101/FleetSync_Go/internal/handler"
)

// cli carries state shared by every subcommand
type cli struct {
	cfg    *config.Config
	format string
}

func newRootCommand() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "fleetsync",
		Short: "Driver and vehicle cache synchronisation",
		Long: `FleetSync keeps a local cache of drivers (from the HR platform) and
vehicles (from the rental platform and Wincpl XML exports) in PostgreSQL,
and serves it over a small REST API.`,
		Version:           handler.ResolveVersion(),
		PersistentPreRunE: c.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	root.PersistentFlags().StringVarP(&c.format, "format", "o", formatJSON, "output format: json, yaml")
	root.SetVersionTemplate("fleetsync {{.Version}}\n")

	root.AddCommand(
		c.newServeCommand(),
		c.newSyncCommand(),
		c.newImportCommand(),
		c.newMigrateCommand(),
	)
	return root
}

// setup loads configuration and the logger before any command runs
func (c *cli) setup(_ *cobra.Command, _ []string) error {
	if c.format != formatJSON && c.format != formatYAML {
		return fmt.Errorf("unsupported format %q", c.format)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c.cfg = cfg
	bootstrap.SetupLogger(cfg)
	return nil
}
