package sqlite

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librisdb/libris/pkg/types"
)

func TestAuditRecord(t *testing.T) {
	store, actor := newTestStore(t)

	store.Audit.Record(types.LevelInfo, "test.source", "plain event", nil, actor)
	store.Audit.Record(types.LevelError, "test.source", "failing event",
		errors.New("disk full"), actor)
	store.Audit.Record(types.LevelSuccess, "other.source", "anonymous event", nil, types.Nobody)

	events := store.Audit.Events(types.AuditFilter{})
	require.Len(t, events, 3)

	// Newest first.
	assert.Equal(t, "anonymous event", events[0].Message)
	assert.Empty(t, events[0].SystemName, "anonymous events carry no identity")

	withCause := events[1]
	assert.Equal(t, types.LevelError, withCause.Level)
	assert.Contains(t, withCause.Message, "cause: disk full")
	assert.Equal(t, "errors.errorString", withCause.ErrorType)
	assert.Equal(t, "tester", withCause.SystemName)
}

func TestAuditEventsFilter(t *testing.T) {
	store, actor := newTestStore(t)
	store.Audit.Record(types.LevelInfo, "module.a", "a", nil, actor)
	store.Audit.Record(types.LevelError, "module.a", "b", nil, actor)
	store.Audit.Record(types.LevelError, "module.b", "c", nil, actor)

	assert.Len(t, store.Audit.Events(types.AuditFilter{Level: types.LevelError}), 2)
	assert.Len(t, store.Audit.Events(types.AuditFilter{SourceModule: "module.a"}), 2)
	assert.Len(t, store.Audit.Events(types.AuditFilter{
		Level: types.LevelError, SourceModule: "module.a",
	}), 1)
	assert.Empty(t, store.Audit.Events(types.AuditFilter{Level: "NOPE"}))
}

func TestAuditDistinctValues(t *testing.T) {
	store, actor := newTestStore(t)
	store.Audit.Record(types.LevelInfo, "module.a", "a", nil, actor)
	store.Audit.Record(types.LevelInfo, "module.a", "b", nil, actor)
	store.Audit.Record(types.LevelError, "module.b", "c", nil, actor)

	assert.ElementsMatch(t, []string{"module.a", "module.b"},
		store.Audit.DistinctValues("source_module"))
	assert.ElementsMatch(t, []string{types.LevelInfo, types.LevelError},
		store.Audit.DistinctValues("level"))

	assert.Nil(t, store.Audit.DistinctValues("message; DROP TABLE logs"),
		"columns outside the allow-list are refused")
}

func TestAuditNeverFailsTheOperation(t *testing.T) {
	store, actor := newTestStore(t)

	// Sabotage the logs table; outcomes must stay unchanged even when
	// the audit write behind them fails.
	_, err := store.db.Exec("DROP TABLE logs")
	require.NoError(t, err)

	id, res := store.Classifications.Add(types.KindCategorie, "Roman", 0, actor)
	require.True(t, res.OK, res.Message)
	assert.NotZero(t, id)

	// The duplicate path records a warning event; with logs gone the
	// failure is swallowed and the caller still gets the plain message.
	_, res = store.Classifications.Add(types.KindCategorie, "Roman", 0, actor)
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "already exists")
}
