// Catalog record commands: list, count, show, add, update, delete.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/librisdb/libris/internal/sqlite"
	"github.com/librisdb/libris/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all catalog records",
	Long: `List fetches every record ordered by author then title.

Example:
  libris list
  libris list --json`,
	Args: cobra.NoArgs,
	RunE: withStore(func(store *sqlite.Store, actor types.Actor, args []string) error {
		summaries := store.Ouvrages.List()
		if flagJSON {
			return printJSON(summaries)
		}
		printSummaryTable(summaries)
		return nil
	}),
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of catalog records",
	Args:  cobra.NoArgs,
	RunE: withStore(func(store *sqlite.Store, actor types.Actor, args []string) error {
		fmt.Println(store.Ouvrages.Count())
		return nil
	}),
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one record in full",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(store *sqlite.Store, actor types.Actor, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		details, ok := store.Ouvrages.Details(id)
		if !ok {
			return fmt.Errorf("no record found with id %d", id)
		}
		return printJSON(details)
	}),
}

var (
	addFromFile    string
	updateFromFile string
)

var addCmd = &cobra.Command{
	Use:   "add --file <record.json>",
	Short: "Add one record from a JSON file",
	Long: `Add creates one catalog record from a JSON description. Titre and
auteur are mandatory; classification and lookup fields reference ids.

Example:
  libris add --file ouvrage.json`,
	Args: cobra.NoArgs,
	RunE: withStore(func(store *sqlite.Store, actor types.Actor, args []string) error {
		in, err := readOuvrage(addFromFile)
		if err != nil {
			return err
		}
		id, res := store.Ouvrages.Add(actor, in)
		if res.OK {
			fmt.Printf("created record %d\n", id)
		}
		return finishResult(res)
	}),
}

var updateCmd = &cobra.Command{
	Use:   "update <id> --file <record.json>",
	Short: "Replace one record's fields from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(store *sqlite.Store, actor types.Actor, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		in, err := readOuvrage(updateFromFile)
		if err != nil {
			return err
		}
		return finishResult(store.Ouvrages.Update(actor, id, in))
	}),
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one record",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(store *sqlite.Store, actor types.Actor, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return finishResult(store.Ouvrages.Delete(id, actor))
	}),
}

func init() {
	addCmd.Flags().StringVar(&addFromFile, "file", "", "JSON file holding the record fields")
	addCmd.MarkFlagRequired("file")
	updateCmd.Flags().StringVar(&updateFromFile, "file", "", "JSON file holding the record fields")
	updateCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
}

// readOuvrage parses the record fields from a JSON file.
func readOuvrage(path string) (types.Ouvrage, error) {
	var in types.Ouvrage
	data, err := os.ReadFile(path)
	if err != nil {
		return in, sysErrf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("parse %s: %w", path, err)
	}
	return in, nil
}

// printSummaryTable prints records in a human-readable table format.
func printSummaryTable(summaries []types.OuvrageSummary) {
	if len(summaries) == 0 {
		fmt.Println("No records found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTITRE\tAUTEUR\tEDITION\tCATEGORIE")
	fmt.Fprintln(w, "--\t-----\t------\t-------\t---------")
	for _, s := range summaries {
		titre := s.Titre
		if len(titre) > 40 {
			titre = titre[:37] + "..."
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", s.ID, titre, s.Auteur, s.Edition, s.CategorieNom)
	}
	w.Flush()

	for _, line := range strings.Split(sb.String(), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}
	fmt.Printf("Total: %d record(s)\n", len(summaries))
}
