// Classification hierarchy: CRUD over the three-level category / genre
// / sub-genre tree. Deletes rely on the cascade declared in the schema;
// the manager never traverses children itself. Writes are single
// statements, atomic on their own; only the importer needs an explicit
// transaction.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/librisdb/libris/pkg/types"
)

// Classifications manages the category/genre/sub-genre tree.
type Classifications struct {
	s *Store
}

// Categories returns every category ordered by name.
func (c *Classifications) Categories() []types.Item {
	return c.list("SELECT id, nom FROM categories ORDER BY nom", "sqlite.Classifications.Categories")
}

// Genres returns the genres under one category, ordered by name.
func (c *Classifications) Genres(categoryID int64) []types.Item {
	return c.list("SELECT id, nom FROM genres WHERE id_categorie = ? ORDER BY nom",
		"sqlite.Classifications.Genres", categoryID)
}

// SubGenres returns the sub-genres under one genre, ordered by name.
func (c *Classifications) SubGenres(genreID int64) []types.Item {
	return c.list("SELECT id, nom FROM sous_genres WHERE id_genre = ? ORDER BY nom",
		"sqlite.Classifications.SubGenres", genreID)
}

func (c *Classifications) list(query, source string, args ...any) []types.Item {
	if !c.s.connected() {
		c.s.noConnection(source)
		return nil
	}
	rows, err := c.s.db.Query(query, args...)
	if err != nil {
		c.s.Audit.Record(types.LevelError, source, "reading classification items failed", err, types.Nobody)
		return nil
	}
	defer rows.Close()

	var items []types.Item
	for rows.Next() {
		var it types.Item
		if err := rows.Scan(&it.ID, &it.Nom); err != nil {
			rows.Close()
			c.s.Audit.Record(types.LevelError, source, "scanning classification item failed", err, types.Nobody)
			return nil
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		c.s.Audit.Record(types.LevelError, source, "reading classification items failed", err, types.Nobody)
		return nil
	}
	return items
}

// Add inserts one classification node and returns its id. Genres and
// sub-genres require a parent id; a missing parent is rejected before
// any store access. A duplicate sibling name fails with a warning-level
// audit event, distinct from generic store errors.
func (c *Classifications) Add(kind types.ClassificationKind, nom string, parentID int64, actor types.Actor) (int64, types.Result) {
	source := "sqlite.Classifications.Add"
	if !c.s.connected() {
		c.s.noConnection(source)
		return 0, types.Fail(types.ErrNotConnected.Error())
	}
	if kind.HasParent() && parentID == 0 {
		return 0, types.Fail(types.ErrMissingParent.Error())
	}

	id, err := insertNode(c.s.db, kind, nom, parentID)
	if err != nil {
		if isConstraint(err) {
			c.s.Audit.Record(types.LevelWarning, source,
				fmt.Sprintf("duplicate: %q already exists in %s", nom, kind.Table()), err, actor)
			return 0, types.Fail(fmt.Sprintf("%q already exists", nom))
		}
		c.s.Audit.Record(types.LevelError, source,
			fmt.Sprintf("adding %q to %s failed", nom, kind.Table()), err, actor)
		return 0, types.Fail("could not add " + kind.String() + "; see the activity log")
	}
	return id, types.Ok(fmt.Sprintf("%s %q added", kind, nom))
}

// insertNode runs the INSERT for one node on the given handle. Shared
// with the importer, which supplies its ambient transaction.
func insertNode(on execer, kind types.ClassificationKind, nom string, parentID int64) (int64, error) {
	var res sql.Result
	var err error
	if kind.HasParent() {
		res, err = on.Exec(
			fmt.Sprintf("INSERT INTO %s (nom, %s) VALUES (?, ?)", kind.Table(), kind.ParentColumn()),
			nom, parentID,
		)
	} else {
		res, err = on.Exec(fmt.Sprintf("INSERT INTO %s (nom) VALUES (?)", kind.Table()), nom)
	}
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Rename changes a node's name. Zero matched rows is a non-exceptional
// failure, not a store error.
func (c *Classifications) Rename(kind types.ClassificationKind, id int64, nom string, actor types.Actor) types.Result {
	source := "sqlite.Classifications.Rename"
	if !c.s.connected() {
		c.s.noConnection(source)
		return types.Fail(types.ErrNotConnected.Error())
	}

	res, err := c.s.db.Exec(fmt.Sprintf("UPDATE %s SET nom = ? WHERE id = ?", kind.Table()), nom, id)
	if err != nil {
		if isConstraint(err) {
			c.s.Audit.Record(types.LevelWarning, source,
				fmt.Sprintf("duplicate: %q already exists in %s", nom, kind.Table()), err, actor)
			return types.Fail(fmt.Sprintf("%q already exists", nom))
		}
		c.s.Audit.Record(types.LevelError, source,
			fmt.Sprintf("renaming item %d in %s failed", id, kind.Table()), err, actor)
		return types.Fail("could not rename " + kind.String() + "; see the activity log")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.s.Audit.Record(types.LevelInfo, source,
			fmt.Sprintf("rename skipped in %s: no item with id %d", kind.Table(), id), nil, actor)
		return types.Fail(fmt.Sprintf("no %s found with id %d", kind, id))
	}
	return types.Ok(fmt.Sprintf("%s renamed to %q", kind, nom))
}

// Delete removes one node. The schema cascade removes descendants and
// nulls catalog references; a single DELETE is issued.
func (c *Classifications) Delete(kind types.ClassificationKind, id int64, actor types.Actor) types.Result {
	source := "sqlite.Classifications.Delete"
	if !c.s.connected() {
		c.s.noConnection(source)
		return types.Fail(types.ErrNotConnected.Error())
	}

	res, err := c.s.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", kind.Table()), id)
	if err != nil {
		c.s.Audit.Record(types.LevelError, source,
			fmt.Sprintf("deleting item %d from %s failed", id, kind.Table()), err, actor)
		return types.Fail("could not delete " + kind.String() + "; see the activity log")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.s.Audit.Record(types.LevelInfo, source,
			fmt.Sprintf("delete skipped in %s: no item with id %d", kind.Table(), id), nil, actor)
		return types.Fail(fmt.Sprintf("no %s found with id %d", kind, id))
	}
	return types.Ok(kind.String() + " deleted")
}
