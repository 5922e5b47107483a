// Shared helpers for libris CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/librisdb/libris/internal/sqlite"
	"github.com/librisdb/libris/pkg/types"
)

// openStore resolves the catalog path, opens the store and resolves the
// acting identity. The caller must defer store.Close().
func openStore() (*sqlite.Store, types.Actor, error) {
	path, err := resolveCatalogPath()
	if err != nil {
		return nil, types.Nobody, sysErrf("resolve catalog path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, types.Nobody, sysErrf("create data dir: %w", err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).With().Timestamp().Logger()

	store, err := sqlite.Open(path, sqlite.WithLogger(logger))
	if err != nil {
		return nil, types.Nobody, sysErrf("open catalog: %w", err)
	}

	actor, err := store.Users.Resolve(sqlite.SystemUserName())
	if err != nil {
		store.Close()
		return nil, types.Nobody, sysErrf("resolve user: %w", err)
	}
	return store, actor, nil
}

// finishResult prints a write outcome and maps failure to a user error.
func finishResult(res types.Result) error {
	if !res.OK {
		return fmt.Errorf("%s", res.Message)
	}
	fmt.Println(res.Message)
	return nil
}

// printJSON renders v as indented JSON on stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// parseID converts a positional argument to a record id.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// withStore opens the store for one command run and closes it after.
func withStore(run func(store *sqlite.Store, actor types.Actor, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		store, actor, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		return run(store, actor, args)
	}
}
