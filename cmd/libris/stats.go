// Stats command: the dashboard aggregates, rendered for a terminal.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/librisdb/libris/internal/sqlite"
	"github.com/librisdb/libris/pkg/types"
)

var (
	statsLocation string
	statsLimit    int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print catalog statistics",
	Long: `Stats prints the per-location record counts, cover completion,
most frequent categories and most recent records.

Use --location to narrow the detail sections to one location, or to
"` + types.LocationNone + `" for records without one.

Example:
  libris stats
  libris stats --location Salon
  libris stats --json`,
	Args: cobra.NoArgs,
	RunE: withStore(func(store *sqlite.Store, actor types.Actor, args []string) error {
		counts := store.Reports.CountByLocation()
		front := store.Reports.CoverStats(types.CoverFront, statsLocation)
		back := store.Reports.CoverStats(types.CoverBack, statsLocation)
		top := store.Reports.TopCategories(statsLocation, statsLimit)
		recent := store.Reports.RecentOuvrages(statsLocation, statsLimit)

		if flagJSON {
			return printJSON(map[string]any{
				"records_by_location": counts,
				"front_cover":         front,
				"back_cover":          back,
				"top_categories":      top,
				"recent_records":      recent,
			})
		}

		fmt.Println("Records by location:")
		for loc, total := range counts {
			fmt.Printf("  %s: %d\n", loc, total)
		}

		fmt.Printf("\nCovers (%s):\n", statsLocation)
		fmt.Printf("  front: %d with, %d without\n", front.With, front.Without)
		fmt.Printf("  back:  %d with, %d without\n", back.With, back.Without)

		fmt.Println("\nTop categories:")
		for _, cc := range top {
			fmt.Printf("  %s: %d\n", cc.Nom, cc.Total)
		}

		fmt.Println("\nMost recent records:")
		for _, ro := range recent {
			fmt.Printf("  %s, %s (%s)\n", ro.Titre, ro.Auteur, ro.DateCreation)
		}
		return nil
	}),
}

func init() {
	statsCmd.Flags().StringVar(&statsLocation, "location", types.LocationAll, "location filter")
	statsCmd.Flags().IntVar(&statsLimit, "limit", 5, "rows per detail section")
}
