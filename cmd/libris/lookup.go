// Lookup vocabulary commands covering the four flat value lists.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/librisdb/libris/internal/sqlite"
	"github.com/librisdb/libris/pkg/types"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Manage the flat lookup vocabularies",
	Long: `Lookup manages the four independent value lists referenced by
catalog records: illustration, periode, reliure and localisation.

Example:
  libris lookup list periode
  libris lookup add localisation "Salon"
  libris lookup rename reliure 2 "Broché"
  libris lookup delete illustration 3`,
}

func init() {
	lookupCmd.AddCommand(
		&cobra.Command{
			Use:   "list <kind>",
			Short: "List one vocabulary ordered by name",
			Args:  cobra.ExactArgs(1),
			RunE: withStore(func(store *sqlite.Store, actor types.Actor, args []string) error {
				kind, err := parseLookupKind(args[0])
				if err != nil {
					return err
				}
				items := store.Lookups.Values(kind)
				if flagJSON {
					return printJSON(items)
				}
				for _, it := range items {
					fmt.Printf("%d\t%s\n", it.ID, it.Nom)
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "add <kind> <name>",
			Short: "Add one vocabulary value",
			Args:  cobra.ExactArgs(2),
			RunE: withStore(func(store *sqlite.Store, actor types.Actor, args []string) error {
				kind, err := parseLookupKind(args[0])
				if err != nil {
					return err
				}
				id, res := store.Lookups.Add(kind, args[1], actor)
				if res.OK {
					fmt.Printf("created %s %d\n", kind, id)
				}
				return finishResult(res)
			}),
		},
		&cobra.Command{
			Use:   "rename <kind> <id> <name>",
			Short: "Rename one vocabulary value",
			Args:  cobra.ExactArgs(3),
			RunE: withStore(func(store *sqlite.Store, actor types.Actor, args []string) error {
				kind, err := parseLookupKind(args[0])
				if err != nil {
					return err
				}
				id, err := parseID(args[1])
				if err != nil {
					return err
				}
				return finishResult(store.Lookups.Rename(kind, id, args[2], actor))
			}),
		},
		&cobra.Command{
			Use:   "delete <kind> <id>",
			Short: "Delete one vocabulary value",
			Args:  cobra.ExactArgs(2),
			RunE: withStore(func(store *sqlite.Store, actor types.Actor, args []string) error {
				kind, err := parseLookupKind(args[0])
				if err != nil {
					return err
				}
				id, err := parseID(args[1])
				if err != nil {
					return err
				}
				return finishResult(store.Lookups.Delete(kind, id, actor))
			}),
		},
	)
}

// parseLookupKind maps a positional argument to its vocabulary.
func parseLookupKind(arg string) (types.LookupKind, error) {
	for _, kind := range types.LookupKinds {
		if arg == kind.String() {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown lookup %q (valid: illustration, periode, reliure, localisation)", arg)
}
