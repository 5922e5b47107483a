// Flat lookup vocabularies: illustrations, periods, bindings and
// locations. Same contract as classifications, minus the hierarchy.
package sqlite

import (
	"fmt"

	"github.com/librisdb/libris/pkg/types"
)

// Lookups manages the four independent flat vocabularies.
type Lookups struct {
	s *Store
}

// Values returns the vocabulary's rows ordered by name.
func (l *Lookups) Values(kind types.LookupKind) []types.Item {
	source := "sqlite.Lookups.Values"
	if !l.s.connected() {
		l.s.noConnection(source)
		return nil
	}
	rows, err := l.s.db.Query("SELECT id, nom FROM " + kind.Table() + " ORDER BY nom")
	if err != nil {
		l.s.Audit.Record(types.LevelError, source, "reading "+kind.Table()+" failed", err, types.Nobody)
		return nil
	}
	defer rows.Close()

	var items []types.Item
	for rows.Next() {
		var it types.Item
		if err := rows.Scan(&it.ID, &it.Nom); err != nil {
			rows.Close()
			l.s.Audit.Record(types.LevelError, source, "scanning "+kind.Table()+" failed", err, types.Nobody)
			return nil
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		l.s.Audit.Record(types.LevelError, source, "reading "+kind.Table()+" failed", err, types.Nobody)
		return nil
	}
	return items
}

// Add inserts one vocabulary value. Duplicates fail with a
// warning-level audit event.
func (l *Lookups) Add(kind types.LookupKind, nom string, actor types.Actor) (int64, types.Result) {
	source := "sqlite.Lookups.Add"
	if !l.s.connected() {
		l.s.noConnection(source)
		return 0, types.Fail(types.ErrNotConnected.Error())
	}

	res, err := l.s.db.Exec("INSERT INTO "+kind.Table()+" (nom) VALUES (?)", nom)
	if err != nil {
		if isConstraint(err) {
			l.s.Audit.Record(types.LevelWarning, source,
				fmt.Sprintf("duplicate: %q already exists in %s", nom, kind.Table()), err, actor)
			return 0, types.Fail(fmt.Sprintf("%q already exists", nom))
		}
		l.s.Audit.Record(types.LevelError, source,
			fmt.Sprintf("adding %q to %s failed", nom, kind.Table()), err, actor)
		return 0, types.Fail("could not add " + kind.String() + "; see the activity log")
	}
	id, _ := res.LastInsertId()
	return id, types.Ok(fmt.Sprintf("%s %q added", kind, nom))
}

// Rename changes one vocabulary value's name.
func (l *Lookups) Rename(kind types.LookupKind, id int64, nom string, actor types.Actor) types.Result {
	source := "sqlite.Lookups.Rename"
	if !l.s.connected() {
		l.s.noConnection(source)
		return types.Fail(types.ErrNotConnected.Error())
	}

	res, err := l.s.db.Exec("UPDATE "+kind.Table()+" SET nom = ? WHERE id = ?", nom, id)
	if err != nil {
		if isConstraint(err) {
			l.s.Audit.Record(types.LevelWarning, source,
				fmt.Sprintf("duplicate: %q already exists in %s", nom, kind.Table()), err, actor)
			return types.Fail(fmt.Sprintf("%q already exists", nom))
		}
		l.s.Audit.Record(types.LevelError, source,
			fmt.Sprintf("renaming item %d in %s failed", id, kind.Table()), err, actor)
		return types.Fail("could not rename " + kind.String() + "; see the activity log")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.Fail(fmt.Sprintf("no %s found with id %d", kind, id))
	}
	return types.Ok(fmt.Sprintf("%s renamed to %q", kind, nom))
}

// Delete removes one vocabulary value; catalog references are nulled by
// the schema.
func (l *Lookups) Delete(kind types.LookupKind, id int64, actor types.Actor) types.Result {
	source := "sqlite.Lookups.Delete"
	if !l.s.connected() {
		l.s.noConnection(source)
		return types.Fail(types.ErrNotConnected.Error())
	}

	res, err := l.s.db.Exec("DELETE FROM "+kind.Table()+" WHERE id = ?", id)
	if err != nil {
		l.s.Audit.Record(types.LevelError, source,
			fmt.Sprintf("deleting item %d from %s failed", id, kind.Table()), err, actor)
		return types.Fail("could not delete " + kind.String() + "; see the activity log")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.Fail(fmt.Sprintf("no %s found with id %d", kind, id))
	}
	return types.Ok(kind.String() + " deleted")
}
