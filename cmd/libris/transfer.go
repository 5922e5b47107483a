// Bulk transfer commands: JSON classification import and CSV export.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/librisdb/libris/internal/sqlite"
	"github.com/librisdb/libris/pkg/types"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import a classification vocabulary from JSON",
	Long: `Import merges a nested classification vocabulary into the catalog.
The payload is an object with a "categories" object; nodes that already
exist are reused, new nodes are created.

Example:
  libris import classifications.json`,
	Args: cobra.ExactArgs(1),
	RunE: withStore(func(store *sqlite.Store, actor types.Actor, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return sysErrf("read %s: %w", args[0], err)
		}
		report, res := store.Importer.ImportClassifications(data, actor)
		if res.OK && flagJSON {
			return printJSON(report)
		}
		return finishResult(res)
	}),
}

var exportCmd = &cobra.Command{
	Use:   "export <file.csv>",
	Short: "Export every record to semicolon-delimited CSV",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(store *sqlite.Store, actor types.Actor, args []string) error {
		return finishResult(store.Exporter.ExportCSV(args[0], actor))
	}),
}
