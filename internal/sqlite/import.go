// Bulk classification import: reads a nested JSON vocabulary and
// resolves or creates every node inside one transaction. A node that
// fails is recorded and skipped; its siblings still import.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/librisdb/libris/pkg/types"
)

// Importer loads classification vocabularies from JSON payloads.
type Importer struct {
	s *Store
}

// categoryNode and genreNode mirror the exchange format:
//
//	{"categories": {"<nom>": {"genres": {"<nom>": {"sous_genres": ["<nom>", ...]}}}}}
type categoryNode struct {
	Genres map[string]genreNode `json:"genres"`
}

type genreNode struct {
	SousGenres []string `json:"sous_genres"`
}

// ImportClassifications merges the payload's classification tree into
// the store. Counts report every node the run resolved, whether it
// already existed or was created. The run only fails outright when the
// payload is malformed or no node at all could be resolved; partial
// failures succeed with a warning note.
func (im *Importer) ImportClassifications(data []byte, actor types.Actor) (types.ImportReport, types.Result) {
	source := "sqlite.Importer.ImportClassifications"
	if !im.s.connected() {
		im.s.noConnection(source)
		return types.ImportReport{}, types.Fail(types.ErrNotConnected.Error())
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		im.s.Audit.Record(types.LevelError, source, "payload is not a JSON object", err, actor)
		return types.ImportReport{}, types.Fail(types.ErrBadFormat.Error())
	}
	raw, ok := top["categories"]
	if !ok {
		im.s.Audit.Record(types.LevelError, source, "payload has no categories object", nil, actor)
		return types.ImportReport{}, types.Fail(types.ErrBadFormat.Error())
	}
	var categories map[string]categoryNode
	if err := json.Unmarshal(raw, &categories); err != nil {
		im.s.Audit.Record(types.LevelError, source, "categories object is malformed", err, actor)
		return types.ImportReport{}, types.Fail(types.ErrBadFormat.Error())
	}

	batch := uuid.Must(uuid.NewV7()).String()
	im.s.log.Info().Str("batch", batch).Int("categories", len(categories)).Msg("classification import started")

	tx, err := im.s.db.Begin()
	if err != nil {
		im.s.Audit.Record(types.LevelError, source, "beginning import transaction failed", err, actor)
		return types.ImportReport{}, types.Fail("could not import classifications; see the activity log")
	}
	defer tx.Rollback()

	var report types.ImportReport
	for catName, catData := range categories {
		catID, err := resolveNode(tx, types.KindCategorie, catName, 0)
		if err != nil {
			report.ErrorNote = fmt.Sprintf("could not import category %q", catName)
			im.s.Audit.record(tx, types.LevelError, source,
				fmt.Sprintf("batch %s: importing category %q failed", batch, catName), err, actor)
			continue
		}
		report.Categories++

		for genreName, genreData := range catData.Genres {
			genreID, err := resolveNode(tx, types.KindGenre, genreName, catID)
			if err != nil {
				report.ErrorNote = fmt.Sprintf("could not import genre %q under %q", genreName, catName)
				im.s.Audit.record(tx, types.LevelError, source,
					fmt.Sprintf("batch %s: importing genre %q under %q failed", batch, genreName, catName), err, actor)
				continue
			}
			report.Genres++

			for _, subName := range genreData.SousGenres {
				if _, err := resolveNode(tx, types.KindSousGenre, subName, genreID); err != nil {
					report.ErrorNote = fmt.Sprintf("could not import sub-genre %q under %q", subName, genreName)
					im.s.Audit.record(tx, types.LevelError, source,
						fmt.Sprintf("batch %s: importing sub-genre %q under %q failed", batch, subName, genreName), err, actor)
					continue
				}
				report.SousGenres++
			}
		}
	}

	if report.ErrorNote != "" && report.Categories == 0 && report.Genres == 0 && report.SousGenres == 0 {
		return types.ImportReport{}, types.Fail("import failed completely: " + report.ErrorNote)
	}

	if err := tx.Commit(); err != nil {
		im.s.Audit.Record(types.LevelError, source, "committing import failed", err, actor)
		return types.ImportReport{}, types.Fail("could not import classifications; see the activity log")
	}

	message := fmt.Sprintf("import finished: %d categories, %d genres, %d sub-genres",
		report.Categories, report.Genres, report.SousGenres)
	if report.ErrorNote != "" {
		im.s.Audit.Record(types.LevelWarning, source,
			fmt.Sprintf("batch %s finished with partial errors: %dc %dg %ds",
				batch, report.Categories, report.Genres, report.SousGenres), nil, actor)
		message += "; some nodes failed, see the activity log"
	}
	im.s.log.Info().Str("batch", batch).
		Int("categories", report.Categories).Int("genres", report.Genres).Int("sous_genres", report.SousGenres).
		Msg("classification import finished")
	return report, types.Ok(message)
}

// resolveNode returns the id of the named node under parentID, creating
// it when absent. Runs on the importer's ambient transaction.
func resolveNode(on queryExecer, kind types.ClassificationKind, nom string, parentID int64) (int64, error) {
	var id int64
	var err error
	if kind.HasParent() {
		err = on.QueryRow(
			fmt.Sprintf("SELECT id FROM %s WHERE nom = ? AND %s = ?", kind.Table(), kind.ParentColumn()),
			nom, parentID,
		).Scan(&id)
	} else {
		err = on.QueryRow(fmt.Sprintf("SELECT id FROM %s WHERE nom = ?", kind.Table()), nom).Scan(&id)
	}
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	return insertNode(on, kind, nom, parentID)
}
