// CSV export of the whole catalog: one denormalized row per record
// with classification and lookup names resolved, semicolon-delimited.
package sqlite

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/librisdb/libris/pkg/types"
)

// Exporter writes catalog snapshots to files.
type Exporter struct {
	s *Store
}

// exportHeaders are the labeled CSV columns, in select order.
var exportHeaders = []string{
	"ID", "Titre", "Sous-Titre", "Auteur", "Auteur 2", "Titre Original",
	"Cycle", "tome", "Illustration", "Catégorie", "Genre", "Sous-Genre",
	"Periode", "Edition", "Collection", "Année Edition", "Numéro Edition",
	"Année Première Edition", "ISBN", "Reliure", "Nombre Page", "Dimension",
	"Localisation", "Résumé", "Remarques",
	"Première Couverture Chemin", "Première Couverture Emplacement",
	"Quatrième Couverture Chemin", "Quatrième Couverture Emplacement",
}

const exportQuery = `
	SELECT
		o.id, o.titre, o.sous_titre, o.auteur, o.auteur_2, o.titre_original,
		o.cycle, o.tome, i.nom, c.nom, g.nom, sg.nom,
		p.nom, o.edition, o.collection, o.edition_annee, o.edition_numero,
		o.edition_premiere_annee, o.isbn, r.nom, o.nombre_page, o.dimension,
		l.nom, o.resume, o.remarques,
		o.couverture_premiere_chemin, o.couverture_premiere_emplacement,
		o.couverture_quatrieme_chemin, o.couverture_quatrieme_emplacement
	FROM ouvrages o
	LEFT JOIN illustrations i ON o.id_illustration = i.id
	LEFT JOIN categories c ON o.id_categorie = c.id
	LEFT JOIN genres g ON o.id_genre = g.id
	LEFT JOIN sous_genres sg ON o.id_sous_genre = sg.id
	LEFT JOIN periodes p ON o.id_periode = p.id
	LEFT JOIN reliures r ON o.id_reliure = r.id
	LEFT JOIN localisations l ON o.id_localisation = l.id
	ORDER BY o.titre, o.auteur`

// ExportCSV writes every catalog record to path as semicolon-delimited
// CSV with a header row. NULL columns export as empty cells.
func (e *Exporter) ExportCSV(path string, actor types.Actor) types.Result {
	source := "sqlite.Exporter.ExportCSV"
	if !e.s.connected() {
		e.s.noConnection(source)
		return types.Fail(types.ErrNotConnected.Error())
	}

	records, err := e.readAll()
	if err != nil {
		e.s.Audit.Record(types.LevelError, source, "reading records for export failed", err, actor)
		return types.Fail("could not export the catalog; see the activity log")
	}

	f, err := os.Create(path)
	if err != nil {
		e.s.Audit.Record(types.LevelError, source, fmt.Sprintf("creating %s failed", path), err, actor)
		return types.Fail("could not export the catalog; see the activity log")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'
	if err := w.Write(exportHeaders); err != nil {
		e.s.Audit.Record(types.LevelError, source, "writing CSV header failed", err, actor)
		return types.Fail("could not export the catalog; see the activity log")
	}
	if err := w.WriteAll(records); err != nil {
		e.s.Audit.Record(types.LevelError, source, "writing CSV rows failed", err, actor)
		return types.Fail("could not export the catalog; see the activity log")
	}

	e.s.log.Info().Str("path", path).Int("rows", len(records)).Msg("catalog exported")
	return types.Ok(fmt.Sprintf("exported %d records to %s", len(records), path))
}

// readAll materializes the denormalized rows, NULLs as empty cells.
func (e *Exporter) readAll() ([][]string, error) {
	rows, err := e.s.db.Query(exportQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records [][]string
	cells := make([]any, len(exportHeaders))
	for rows.Next() {
		raw := make([]*string, len(exportHeaders))
		for i := range raw {
			cells[i] = &raw[i]
		}
		if err := rows.Scan(cells...); err != nil {
			return nil, err
		}
		record := make([]string, len(exportHeaders))
		for i, v := range raw {
			if v != nil {
				record[i] = *v
			}
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
