// Fixed aggregate queries over the catalog, grouped by storage
// location. Every report degrades to an empty result on error; nothing
// here mutates the store.
package sqlite

import (
	"database/sql"

	"github.com/librisdb/libris/pkg/types"
)

// Reports runs the read-only dashboard aggregates.
type Reports struct {
	s *Store
}

// CountByLocation returns the number of records per location name.
// Records without a localisation count under types.LocationNone.
func (r *Reports) CountByLocation() map[string]int {
	source := "sqlite.Reports.CountByLocation"
	if !r.s.connected() {
		r.s.noConnection(source)
		return nil
	}

	rows, err := r.s.db.Query(`
		SELECT COALESCE(loc.nom, '` + types.LocationNone + `') AS localisation, COUNT(*) AS total
		FROM ouvrages o
		LEFT JOIN localisations loc ON o.id_localisation = loc.id
		GROUP BY COALESCE(loc.nom, '` + types.LocationNone + `')
		ORDER BY total DESC`)
	if err != nil {
		r.s.Audit.Record(types.LevelError, source, "counting records by location failed", err, types.Nobody)
		return nil
	}
	defer rows.Close()

	result := map[string]int{}
	for rows.Next() {
		var loc string
		var total int
		if err := rows.Scan(&loc, &total); err != nil {
			rows.Close()
			r.s.Audit.Record(types.LevelError, source, "scanning location count failed", err, types.Nobody)
			return nil
		}
		result[loc] = total
	}
	if err := rows.Err(); err != nil {
		r.s.Audit.Record(types.LevelError, source, "counting records by location failed", err, types.Nobody)
		return nil
	}
	return result
}

// CoverStats splits the records matching location into those with and
// without the given cover side recorded. A location with no records
// yields zero for both.
func (r *Reports) CoverStats(side types.CoverSide, location string) types.CoverStats {
	source := "sqlite.Reports.CoverStats"
	if !r.s.connected() {
		r.s.noConnection(source)
		return types.CoverStats{}
	}

	column := side.Column()
	var totalQuery, withQuery string
	var args []any
	switch location {
	case types.LocationAll:
		totalQuery = "SELECT COUNT(*) FROM ouvrages"
		withQuery = "SELECT COUNT(*) FROM ouvrages WHERE " + column + " IS NOT NULL"
	case types.LocationNone:
		totalQuery = "SELECT COUNT(*) FROM ouvrages WHERE id_localisation IS NULL"
		withQuery = "SELECT COUNT(*) FROM ouvrages WHERE id_localisation IS NULL AND " + column + " IS NOT NULL"
	default:
		totalQuery = `SELECT COUNT(*) FROM ouvrages o
			JOIN localisations loc ON o.id_localisation = loc.id
			WHERE loc.nom = ?`
		withQuery = `SELECT COUNT(*) FROM ouvrages o
			JOIN localisations loc ON o.id_localisation = loc.id
			WHERE loc.nom = ? AND ` + column + " IS NOT NULL"
		args = []any{location}
	}

	var total, withCover int
	if err := r.s.db.QueryRow(totalQuery, args...).Scan(&total); err != nil {
		r.s.Audit.Record(types.LevelError, source, "counting cover completion failed", err, types.Nobody)
		return types.CoverStats{}
	}
	if total == 0 {
		return types.CoverStats{}
	}
	if err := r.s.db.QueryRow(withQuery, args...).Scan(&withCover); err != nil {
		r.s.Audit.Record(types.LevelError, source, "counting cover completion failed", err, types.Nobody)
		return types.CoverStats{}
	}
	return types.CoverStats{With: withCover, Without: total - withCover}
}

// TopCategories returns the most frequent categories for location,
// largest first. Records without a category report under
// types.LocationNone.
func (r *Reports) TopCategories(location string, limit int) []types.CategoryCount {
	source := "sqlite.Reports.TopCategories"
	if !r.s.connected() {
		r.s.noConnection(source)
		return nil
	}

	var query string
	var args []any
	switch location {
	case types.LocationAll:
		query = `SELECT c.nom, COUNT(*) AS total
			FROM ouvrages o
			LEFT JOIN categories c ON o.id_categorie = c.id
			GROUP BY c.nom
			ORDER BY total DESC
			LIMIT ?`
		args = []any{limit}
	case types.LocationNone:
		query = `SELECT c.nom, COUNT(*) AS total
			FROM ouvrages o
			LEFT JOIN categories c ON o.id_categorie = c.id
			WHERE o.id_localisation IS NULL
			GROUP BY c.nom
			ORDER BY total DESC
			LIMIT ?`
		args = []any{limit}
	default:
		query = `SELECT c.nom, COUNT(*) AS total
			FROM ouvrages o
			JOIN localisations loc ON o.id_localisation = loc.id
			LEFT JOIN categories c ON o.id_categorie = c.id
			WHERE loc.nom = ?
			GROUP BY c.nom
			ORDER BY total DESC
			LIMIT ?`
		args = []any{location, limit}
	}

	rows, err := r.s.db.Query(query, args...)
	if err != nil {
		r.s.Audit.Record(types.LevelError, source, "reading top categories failed", err, types.Nobody)
		return nil
	}
	defer rows.Close()

	var counts []types.CategoryCount
	for rows.Next() {
		var nom sql.NullString
		var cc types.CategoryCount
		if err := rows.Scan(&nom, &cc.Total); err != nil {
			rows.Close()
			r.s.Audit.Record(types.LevelError, source, "scanning top categories failed", err, types.Nobody)
			return nil
		}
		cc.Nom = nom.String
		if !nom.Valid {
			cc.Nom = types.LocationNone
		}
		counts = append(counts, cc)
	}
	if err := rows.Err(); err != nil {
		r.s.Audit.Record(types.LevelError, source, "reading top categories failed", err, types.Nobody)
		return nil
	}
	return counts
}

// RecentOuvrages returns the most recently created records for
// location, newest first.
func (r *Reports) RecentOuvrages(location string, limit int) []types.RecentOuvrage {
	source := "sqlite.Reports.RecentOuvrages"
	if !r.s.connected() {
		r.s.noConnection(source)
		return nil
	}

	var query string
	var args []any
	switch location {
	case types.LocationAll:
		query = `SELECT titre, auteur, date_creation
			FROM ouvrages
			ORDER BY date_creation DESC
			LIMIT ?`
		args = []any{limit}
	case types.LocationNone:
		query = `SELECT titre, auteur, date_creation
			FROM ouvrages
			WHERE id_localisation IS NULL
			ORDER BY date_creation DESC
			LIMIT ?`
		args = []any{limit}
	default:
		query = `SELECT o.titre, o.auteur, o.date_creation
			FROM ouvrages o
			JOIN localisations loc ON o.id_localisation = loc.id
			WHERE loc.nom = ?
			ORDER BY o.date_creation DESC
			LIMIT ?`
		args = []any{location, limit}
	}

	rows, err := r.s.db.Query(query, args...)
	if err != nil {
		r.s.Audit.Record(types.LevelError, source, "reading recent records failed", err, types.Nobody)
		return nil
	}
	defer rows.Close()

	var recent []types.RecentOuvrage
	for rows.Next() {
		var ro types.RecentOuvrage
		if err := rows.Scan(&ro.Titre, &ro.Auteur, &ro.DateCreation); err != nil {
			rows.Close()
			r.s.Audit.Record(types.LevelError, source, "scanning recent records failed", err, types.Nobody)
			return nil
		}
		recent = append(recent, ro)
	}
	if err := rows.Err(); err != nil {
		r.s.Audit.Record(types.LevelError, source, "reading recent records failed", err, types.Nobody)
		return nil
	}
	return recent
}

// CategoriesByLocation returns per-location category counts, keyed
// location then category. Records without a category are excluded.
func (r *Reports) CategoriesByLocation() map[string]map[string]int {
	return r.breakdown("sqlite.Reports.CategoriesByLocation", `
		SELECT COALESCE(loc.nom, '`+types.LocationNone+`') AS localisation,
			cat.nom,
			COUNT(*) AS total
		FROM ouvrages o
		LEFT JOIN localisations loc ON o.id_localisation = loc.id
		JOIN categories cat ON o.id_categorie = cat.id
		GROUP BY COALESCE(loc.nom, '`+types.LocationNone+`'), cat.nom
		ORDER BY localisation, total DESC`)
}

// PeriodesByLocation returns per-location period counts, keyed location
// then period. Records without a period report under
// types.LocationNone.
func (r *Reports) PeriodesByLocation() map[string]map[string]int {
	return r.breakdown("sqlite.Reports.PeriodesByLocation", `
		SELECT COALESCE(loc.nom, '`+types.LocationNone+`') AS localisation,
			COALESCE(per.nom, '`+types.LocationNone+`') AS periode,
			COUNT(*) AS total
		FROM ouvrages o
		LEFT JOIN localisations loc ON o.id_localisation = loc.id
		LEFT JOIN periodes per ON o.id_periode = per.id
		GROUP BY COALESCE(loc.nom, '`+types.LocationNone+`'), COALESCE(per.nom, '`+types.LocationNone+`')
		ORDER BY localisation, total DESC`)
}

// breakdown runs a (location, name, count) query into a nested map.
func (r *Reports) breakdown(source, query string) map[string]map[string]int {
	if !r.s.connected() {
		r.s.noConnection(source)
		return nil
	}

	rows, err := r.s.db.Query(query)
	if err != nil {
		r.s.Audit.Record(types.LevelError, source, "reading location breakdown failed", err, types.Nobody)
		return nil
	}
	defer rows.Close()

	result := map[string]map[string]int{}
	for rows.Next() {
		var loc, name string
		var total int
		if err := rows.Scan(&loc, &name, &total); err != nil {
			rows.Close()
			r.s.Audit.Record(types.LevelError, source, "scanning location breakdown failed", err, types.Nobody)
			return nil
		}
		if result[loc] == nil {
			result[loc] = map[string]int{}
		}
		result[loc][name] = total
	}
	if err := rows.Err(); err != nil {
		r.s.Audit.Record(types.LevelError, source, "reading location breakdown failed", err, types.Nobody)
		return nil
	}
	return result
}
