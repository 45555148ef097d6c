package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osse101/FleetSync_Go/internal/database"
)

func (c *cli) newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}
	cmd.AddCommand(
		c.migrateSubcommand("up", "Apply all pending migrations", func(cmd *cobra.Command, m *database.Migrator) error {
			return m.Up(cmd.Context())
		}),
		c.migrateSubcommand("down", "Roll back the latest migration", func(cmd *cobra.Command, m *database.Migrator) error {
			return m.Down(cmd.Context())
		}),
		c.migrateSubcommand("status", "List migrations and whether they are applied", func(cmd *cobra.Command, m *database.Migrator) error {
			states, err := m.Status(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), c.format, states)
		}),
	)
	return cmd
}

func (c *cli) migrateSubcommand(use, short string, run func(*cobra.Command, *database.Migrator) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := database.NewPool(ctx, c.poolConfig())
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer pool.Close()

			m, err := database.NewMigrator(pool)
			if err != nil {
				return err
			}
			defer m.Close()
			return run(cmd, m)
		},
	}
}
