// Log command: reads the catalog's activity trail.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/librisdb/libris/internal/sqlite"
	"github.com/librisdb/libris/pkg/types"
)

var logFilter types.AuditFilter

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the activity log, newest first",
	Long: `Log prints the catalog's activity trail. Filters narrow by level,
source module or error type; they are ANDed together.

Example:
  libris log
  libris log --level ERROR
  libris log --source sqlite.Classifications.Add --json`,
	Args: cobra.NoArgs,
	RunE: withStore(func(store *sqlite.Store, actor types.Actor, args []string) error {
		events := store.Audit.Events(logFilter)
		if flagJSON {
			return printJSON(events)
		}
		for _, e := range events {
			who := e.SystemName
			if who == "" {
				who = "-"
			}
			fmt.Printf("%s  %-8s %-40s %s  [%s]\n", e.Timestamp, e.Level, e.SourceModule, e.Message, who)
		}
		return nil
	}),
}

func init() {
	logCmd.Flags().StringVar(&logFilter.Level, "level", "", "filter by level (SUCCESS, INFO, WARNING, ERROR, CRITICAL)")
	logCmd.Flags().StringVar(&logFilter.SourceModule, "source", "", "filter by source module")
	logCmd.Flags().StringVar(&logFilter.ErrorType, "error-type", "", "filter by error type")
}
