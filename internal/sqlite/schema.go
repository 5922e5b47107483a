// Schema registry: the single source of truth for the catalog DDL.
// Every statement is idempotent so the whole set runs on each open.
package sqlite

import (
	"database/sql"
	"fmt"
)

const (
	createIllustrations = `CREATE TABLE IF NOT EXISTS illustrations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    nom TEXT NOT NULL UNIQUE
);`

	createCategories = `CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    nom TEXT NOT NULL UNIQUE
);`

	createGenres = `CREATE TABLE IF NOT EXISTS genres (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    nom TEXT NOT NULL,
    id_categorie INTEGER NOT NULL,
    UNIQUE (nom, id_categorie),
    FOREIGN KEY (id_categorie) REFERENCES categories (id) ON DELETE CASCADE
);`

	createSousGenres = `CREATE TABLE IF NOT EXISTS sous_genres (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    nom TEXT NOT NULL,
    id_genre INTEGER NOT NULL,
    UNIQUE (nom, id_genre),
    FOREIGN KEY (id_genre) REFERENCES genres (id) ON DELETE CASCADE
);`

	createPeriodes = `CREATE TABLE IF NOT EXISTS periodes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    nom TEXT NOT NULL UNIQUE
);`

	createReliures = `CREATE TABLE IF NOT EXISTS reliures (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    nom TEXT NOT NULL UNIQUE
);`

	createLocalisations = `CREATE TABLE IF NOT EXISTS localisations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    nom TEXT NOT NULL UNIQUE
);`

	createUsers = `CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    system_name TEXT NOT NULL UNIQUE,
    user_name TEXT NOT NULL UNIQUE,
    date_creation TEXT NOT NULL
);`

	createOuvrages = `CREATE TABLE IF NOT EXISTS ouvrages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    titre TEXT NOT NULL,
    sous_titre TEXT,
    auteur TEXT NOT NULL,
    auteur_2 TEXT,
    titre_original TEXT,
    cycle TEXT,
    tome INTEGER,
    id_illustration INTEGER,
    id_categorie INTEGER,
    id_genre INTEGER,
    id_sous_genre INTEGER,
    id_periode INTEGER,
    edition TEXT,
    collection TEXT,
    edition_annee TEXT,
    edition_numero TEXT,
    edition_premiere_annee TEXT,
    isbn TEXT,
    id_reliure INTEGER,
    nombre_page INTEGER,
    dimension TEXT,
    id_localisation INTEGER,
    localisation_details TEXT,
    resume TEXT,
    remarques TEXT,
    couverture_premiere_chemin TEXT,
    couverture_premiere_emplacement TEXT,
    couverture_quatrieme_chemin TEXT,
    couverture_quatrieme_emplacement TEXT,
    date_creation TEXT NOT NULL,
    date_modification TEXT NOT NULL,
    cree_par INTEGER NOT NULL,
    modifie_par INTEGER NOT NULL,
    FOREIGN KEY (id_illustration) REFERENCES illustrations (id) ON DELETE SET NULL,
    FOREIGN KEY (id_categorie) REFERENCES categories (id) ON DELETE SET NULL,
    FOREIGN KEY (id_genre) REFERENCES genres (id) ON DELETE SET NULL,
    FOREIGN KEY (id_sous_genre) REFERENCES sous_genres (id) ON DELETE SET NULL,
    FOREIGN KEY (id_periode) REFERENCES periodes (id) ON DELETE SET NULL,
    FOREIGN KEY (id_reliure) REFERENCES reliures (id) ON DELETE SET NULL,
    FOREIGN KEY (id_localisation) REFERENCES localisations (id) ON DELETE SET NULL,
    FOREIGN KEY (cree_par) REFERENCES users (id) ON DELETE SET NULL,
    FOREIGN KEY (modifie_par) REFERENCES users (id) ON DELETE SET NULL
);`

	createLogs = `CREATE TABLE IF NOT EXISTS logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp TEXT NOT NULL,
    level TEXT NOT NULL,
    source_module TEXT,
    error_type TEXT,
    message TEXT NOT NULL,
    user_id INTEGER,
    FOREIGN KEY (user_id) REFERENCES users (id)
);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createIllustrations,
	createCategories,
	createGenres,
	createSousGenres,
	createPeriodes,
	createReliures,
	createLocalisations,
	createUsers,
	createOuvrages,
	createLogs,
}

// createSchema runs the full DDL set. Safe to call on an existing store.
func createSchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}
