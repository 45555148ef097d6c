package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/osse101/FleetSync_Go/internal/wincpl"
)

func (c *cli) newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "import-wincpl <file>...",
		Short:   "Import Wincpl XML vehicle and absence files",
		Args:    cobra.MinimumNArgs(1),
		Example: `  fleetsync import-wincpl exports/*.xml`,
		RunE:    c.runImport,
	}
}

func readDocuments(paths []string) ([]wincpl.Document, error) {
	docs := make([]wincpl.Document, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		docs = append(docs, wincpl.Document{Name: filepath.Base(p), Data: data})
	}
	return docs, nil
}

func (c *cli) runImport(cmd *cobra.Command, args []string) error {
	docs, err := readDocuments(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	app, err := c.openApp(ctx)
	if err != nil {
		return err
	}
	defer app.DB.Close()

	report := app.Vehicles.Import(ctx, docs)
	if err := printResult(cmd.OutOrStdout(), c.format, report); err != nil {
		return err
	}
	if len(report.Errors) > 0 {
		return fmt.Errorf("import finished with %d errors", len(report.Errors))
	}
	return nil
}
