// User command: shows or renames the acting identity.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/librisdb/libris/internal/sqlite"
	"github.com/librisdb/libris/pkg/types"
)

var userRename string

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Show or rename the acting identity",
	Long: `User prints the identity writes are attributed to: the OS login
and its display name in the catalog. With --rename the display name is
changed; the OS identity itself never changes.

Example:
  libris user
  libris user --rename "Marie"`,
	Args: cobra.NoArgs,
	RunE: withStore(func(store *sqlite.Store, actor types.Actor, args []string) error {
		if userRename != "" {
			return finishResult(store.Users.Rename(actor, userRename))
		}
		if flagJSON {
			return printJSON(actor)
		}
		fmt.Printf("%s (id %d, login %s)\n", actor.DisplayName, actor.ID, actor.SystemName)
		return nil
	}),
}

func init() {
	userCmd.Flags().StringVar(&userRename, "rename", "", "new display name")
}
