// Classification tree commands: category, genre and subgenre each get
// list/add/rename/delete subcommands built from one factory.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/librisdb/libris/internal/sqlite"
	"github.com/librisdb/libris/pkg/types"
)

// kindSpec binds one classification level to its command surface.
type kindSpec struct {
	use        string
	kind       types.ClassificationKind
	parentFlag string
}

var kindSpecs = []kindSpec{
	{use: "category", kind: types.KindCategorie},
	{use: "genre", kind: types.KindGenre, parentFlag: "category-id"},
	{use: "subgenre", kind: types.KindSousGenre, parentFlag: "genre-id"},
}

// classificationCmd builds the command group for one level of the tree.
func classificationCmd(spec kindSpec) *cobra.Command {
	group := &cobra.Command{
		Use:   spec.use,
		Short: "Manage " + spec.use + " entries",
	}

	var parentID int64

	list := &cobra.Command{
		Use:   "list",
		Short: "List " + spec.use + " entries ordered by name",
		Args:  cobra.NoArgs,
		RunE: withStore(func(store *sqlite.Store, actor types.Actor, args []string) error {
			items, err := classificationItems(store, spec.kind, parentID)
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(items)
			}
			for _, it := range items {
				fmt.Printf("%d\t%s\n", it.ID, it.Nom)
			}
			return nil
		}),
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add one " + spec.use,
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(store *sqlite.Store, actor types.Actor, args []string) error {
			id, res := store.Classifications.Add(spec.kind, args[0], parentID, actor)
			if res.OK {
				fmt.Printf("created %s %d\n", spec.use, id)
			}
			return finishResult(res)
		}),
	}

	rename := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename one " + spec.use,
		Args:  cobra.ExactArgs(2),
		RunE: withStore(func(store *sqlite.Store, actor types.Actor, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return finishResult(store.Classifications.Rename(spec.kind, id, args[1], actor))
		}),
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one " + spec.use + " and its descendants",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(store *sqlite.Store, actor types.Actor, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return finishResult(store.Classifications.Delete(spec.kind, id, actor))
		}),
	}

	if spec.parentFlag != "" {
		list.Flags().Int64Var(&parentID, spec.parentFlag, 0, "parent id")
		list.MarkFlagRequired(spec.parentFlag)
		add.Flags().Int64Var(&parentID, spec.parentFlag, 0, "parent id")
		add.MarkFlagRequired(spec.parentFlag)
	}

	group.AddCommand(list, add, rename, del)
	return group
}

// classificationItems reads one level of the tree for the list command.
func classificationItems(store *sqlite.Store, kind types.ClassificationKind, parentID int64) ([]types.Item, error) {
	switch kind {
	case types.KindCategorie:
		return store.Classifications.Categories(), nil
	case types.KindGenre:
		return store.Classifications.Genres(parentID), nil
	case types.KindSousGenre:
		return store.Classifications.SubGenres(parentID), nil
	default:
		return nil, fmt.Errorf("unknown classification %q", kind)
	}
}
