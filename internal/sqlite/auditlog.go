// Audit trail: best-effort, append-only activity log on the catalog's
// own logs table. Recording never fails a business operation; when the
// write itself fails the failure goes to the process log only.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/librisdb/libris/pkg/types"
)

// AuditLog reads and appends structured activity events.
type AuditLog struct {
	s *Store
}

// Record appends one event in its own implicit transaction.
func (a *AuditLog) Record(level, source, message string, cause error, actor types.Actor) {
	if !a.s.connected() {
		a.s.noConnection("sqlite.AuditLog.Record")
		return
	}
	a.record(a.s.db, level, source, message, cause, actor)
}

// record appends one event on the given handle, which may be a caller's
// ambient transaction. Failures are swallowed by construction.
func (a *AuditLog) record(on execer, level, source, message string, cause error, actor types.Actor) {
	errType := ""
	if cause != nil {
		errType = strings.TrimPrefix(fmt.Sprintf("%T", cause), "*")
		message = fmt.Sprintf("%s | cause: %v", message, cause)
	}

	var userID any
	if actor.ID != 0 {
		userID = actor.ID
	}

	_, err := on.Exec(
		`INSERT INTO logs (timestamp, level, source_module, error_type, message, user_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		now(), level, source, nullStr(errType), message, userID,
	)
	if err != nil {
		a.s.log.Error().Err(err).Str("source", source).Msg("audit event write failed")
	}
}

// Events returns log entries joined to the acting identity's system
// name, newest first, optionally narrowed by filter. An absent
// connection yields an empty result.
func (a *AuditLog) Events(filter types.AuditFilter) []types.AuditEvent {
	if !a.s.connected() {
		a.s.noConnection("sqlite.AuditLog.Events")
		return nil
	}

	query := `SELECT l.id, l.timestamp, l.level, l.source_module, l.error_type, l.message, u.system_name
	FROM logs l
	LEFT JOIN users u ON l.user_id = u.id`

	var conditions []string
	var args []any
	for col, val := range map[string]string{
		"level":         filter.Level,
		"source_module": filter.SourceModule,
		"error_type":    filter.ErrorType,
	} {
		if val != "" {
			conditions = append(conditions, "l."+col+" = ?")
			args = append(args, val)
		}
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY l.timestamp DESC, l.id DESC"

	rows, err := a.s.db.Query(query, args...)
	if err != nil {
		a.s.log.Error().Err(err).Msg("reading audit events failed")
		return nil
	}
	defer rows.Close()

	var events []types.AuditEvent
	for rows.Next() {
		var e types.AuditEvent
		var source, errType, sysName sql.NullString
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Level, &source, &errType, &e.Message, &sysName); err != nil {
			a.s.log.Error().Err(err).Msg("scanning audit event failed")
			return nil
		}
		e.SourceModule = source.String
		e.ErrorType = errType.String
		e.SystemName = sysName.String
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		a.s.log.Error().Err(err).Msg("reading audit events failed")
		return nil
	}
	return events
}

// DistinctValues returns the distinct non-empty values of one log
// column, restricted to the allow-list in types.AuditColumns.
func (a *AuditLog) DistinctValues(column string) []string {
	if !a.s.connected() {
		a.s.noConnection("sqlite.AuditLog.DistinctValues")
		return nil
	}

	allowed := false
	for _, col := range types.AuditColumns {
		if column == col {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil
	}

	rows, err := a.s.db.Query("SELECT DISTINCT " + column + " FROM logs ORDER BY " + column + " ASC")
	if err != nil {
		a.s.log.Error().Err(err).Str("column", column).Msg("reading distinct log values failed")
		return nil
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return nil
		}
		if v.Valid && v.String != "" {
			values = append(values, v.String)
		}
	}
	if err := rows.Err(); err != nil {
		a.s.log.Error().Err(err).Str("column", column).Msg("reading distinct log values failed")
		return nil
	}
	return values
}
