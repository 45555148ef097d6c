package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osse101/FleetSync_Go/internal/domain"
)

func (c *cli) newSyncCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "sync [drivers|vehicles|all]",
		Short:     "Run one synchronisation and print the run",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(domain.EntityDrivers), string(domain.EntityVehicles), string(domain.EntityAll)},
		Example: `  fleetsync sync drivers
  fleetsync sync all -o yaml`,
		RunE: c.runSync,
	}
}

func (c *cli) runSync(cmd *cobra.Command, args []string) error {
	entity := domain.EntityAll
	if len(args) == 1 {
		entity = domain.EntityType(args[0])
	}

	ctx := cmd.Context()
	app, err := c.openApp(ctx)
	if err != nil {
		return err
	}
	defer app.DB.Close()

	if entity == domain.EntityAll {
		res := app.Sync.SyncAll(ctx, domain.TriggerCLI)
		if err := printResult(cmd.OutOrStdout(), c.format, res); err != nil {
			return err
		}
		if res.DriversError != "" || res.VehiclesError != "" {
			return fmt.Errorf("sync finished with errors")
		}
		return nil
	}

	run, err := app.Sync.Run(ctx, entity, domain.TriggerCLI)
	if err != nil {
		return err
	}
	if err := printResult(cmd.OutOrStdout(), c.format, run); err != nil {
		return err
	}
	if run.Status == domain.SyncStatusFailed {
		return fmt.Errorf("%s sync failed: %s", entity, run.ErrorMessage)
	}
	return nil
}
