// First-run seeding of the flat lookup vocabularies. Each table is
// populated only when currently empty, so reopening an existing catalog
// never duplicates or resurrects rows the user has edited.
package sqlite

import (
	"database/sql"
	"fmt"
)

// seedValues holds the default vocabulary rows per lookup table.
var seedValues = map[string][]string{
	"illustrations": {
		"Aucune", "Visuel(s) N&B", "Visuel(s) Couleurs", "Visuel(s) N&B et Couleurs",
	},
	"periodes": {
		"1re Guerre Mondiale", "2e Guerre Mondiale", "Antiquité",
		"Classique", "Contemporain", "Guerres Coloniales",
		"Guerres d'Israël", "Moyen-Âge", "Préhistoire",
		"Renaissance", "Révolution / 1er Empire",
	},
	"reliures": {
		"À Oeillets", "À Vis", "Agrafée",
		"En Spirale", "Dos Carré Collé", "Dos Carré Collé à Rabat",
		"Dos Carré Collé en Coffret", "Dos Carré Collé sous Jaquette",
		"Dos Cousu", "Dos Cousu en Coffret", "Dos Cousu sous Jaquette",
	},
	"localisations": {
		"Salon", "Salle à manger", "Bureau", "Cabinet de curiosités", "Chambre",
	},
}

// seedLookups inserts the default vocabularies into every empty lookup
// table, in one transaction.
func seedLookups(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for table, values := range seedValues {
		var count int
		if err := tx.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			return fmt.Errorf("counting %s: %w", table, err)
		}
		if count > 0 {
			continue
		}
		for _, v := range values {
			if _, err := tx.Exec("INSERT INTO "+table+" (nom) VALUES (?)", v); err != nil {
				return fmt.Errorf("seeding %s %q: %w", table, v, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}
	return nil
}
