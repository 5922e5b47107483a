// Root command for the libris CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/librisdb/libris/internal/paths"
)

// Version is the CLI version string.
const Version = "0.1.0"

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDB        string
	flagJSON      bool
)

// configDBPath holds the database value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configDBPath string

var rootCmd = &cobra.Command{
	Use:     "libris",
	Short:   "Libris is a personal book catalog",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDBPath = cfg.GetString(cfgKeyDatabase)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "catalog file (default: bibliotheque.db in the platform data dir)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(classificationCmd(kindSpecs[0]))
	rootCmd.AddCommand(classificationCmd(kindSpecs[1]))
	rootCmd.AddCommand(classificationCmd(kindSpecs[2]))
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(logCmd)
}

// resolveCatalogPath returns the catalog file path following the
// precedence: --db flag > config.yaml database > LIBRIS_DATA_DIR env >
// bibliotheque.db in the platform data dir.
func resolveCatalogPath() (string, error) {
	return paths.ResolveCatalogPath(flagDB, configDBPath)
}
