// Actor identities: one row per distinct OS login that has ever used
// the catalog, created lazily and resolved once per session.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/user"

	"github.com/librisdb/libris/pkg/types"
)

// Users manages actor identity rows.
type Users struct {
	s *Store
}

// SystemUserName returns the OS login name, with environment fallbacks.
func SystemUserName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	if name := os.Getenv("USERNAME"); name != "" {
		return name
	}
	return "Default_User"
}

// Resolve fetches the actor row keyed by systemName, creating it on
// first use with the system name as the initial display name. Callers
// resolve once per session and thread the Actor into every write.
func (u *Users) Resolve(systemName string) (types.Actor, error) {
	source := "sqlite.Users.Resolve"
	if !u.s.connected() {
		u.s.noConnection(source)
		return types.Nobody, types.ErrNotConnected
	}

	actor := types.Actor{SystemName: systemName}
	err := u.s.db.QueryRow(
		"SELECT id, user_name FROM users WHERE system_name = ?", systemName,
	).Scan(&actor.ID, &actor.DisplayName)
	if err == nil {
		return actor, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		u.s.Audit.Record(types.LevelError, source,
			fmt.Sprintf("looking up user %q failed", systemName), err, types.Nobody)
		return types.Nobody, fmt.Errorf("looking up user %q: %w", systemName, err)
	}

	res, err := u.s.db.Exec(
		"INSERT INTO users (system_name, user_name, date_creation) VALUES (?, ?, ?)",
		systemName, systemName, now(),
	)
	if err != nil {
		u.s.Audit.Record(types.LevelError, source,
			fmt.Sprintf("creating user %q failed", systemName), err, types.Nobody)
		return types.Nobody, fmt.Errorf("creating user %q: %w", systemName, err)
	}
	actor.ID, _ = res.LastInsertId()
	actor.DisplayName = systemName
	return actor, nil
}

// Rename updates the display name of the given actor only; the system
// identity never changes.
func (u *Users) Rename(actor types.Actor, displayName string) types.Result {
	source := "sqlite.Users.Rename"
	if !u.s.connected() {
		u.s.noConnection(source)
		return types.Fail(types.ErrNotConnected.Error())
	}
	if actor.ID == 0 {
		return types.Fail("no resolved actor to rename")
	}

	if _, err := u.s.db.Exec("UPDATE users SET user_name = ? WHERE id = ?", displayName, actor.ID); err != nil {
		if isConstraint(err) {
			u.s.Audit.Record(types.LevelWarning, source,
				fmt.Sprintf("duplicate: display name %q already taken", displayName), err, actor)
			return types.Fail(fmt.Sprintf("%q already exists", displayName))
		}
		u.s.Audit.Record(types.LevelError, source,
			fmt.Sprintf("renaming user %d failed", actor.ID), err, actor)
		return types.Fail("could not rename user; see the activity log")
	}
	return types.Ok(fmt.Sprintf("display name set to %q", displayName))
}
