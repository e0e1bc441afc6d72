package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/light-bringer/catalog-service/internal/services"
)

var (
	// Import flags
	importFile string
)

// importCmd loads products from a CSV file
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load products from a CSV file",
	Long: `Load products from a CSV file with the header

  id,cost,category,name,brand,retail_price,department,sku,distribution_center_id

Departments are created on first sight of their name. Products are upserted
by id, so the import can be re-run. Rows with unparsable numbers are skipped.

Examples:
  catalogctl import --file products.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd)
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "CSV file to import")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	f, err := os.Open(importFile)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", importFile, err)
	}
	defer f.Close()

	ctx := cmd.Context()
	serviceOpts, err := services.NewServiceOptions(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer serviceOpts.Close()

	res, err := serviceOpts.Importer.Import(ctx, f)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d rows (%d skipped, %d duplicate ids), %d departments\n",
		res.Imported, res.Rows, res.Skipped, res.Duplicates, res.Departments)
	return nil
}
