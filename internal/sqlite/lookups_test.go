package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librisdb/libris/pkg/types"
)

func TestLookupsValues(t *testing.T) {
	store, _ := newTestStore(t)

	periodes := store.Lookups.Values(types.LookupPeriode)
	require.NotEmpty(t, periodes)
	for i := 1; i < len(periodes); i++ {
		assert.LessOrEqual(t, periodes[i-1].Nom, periodes[i].Nom, "values ordered by name")
	}
}

func TestLookupsAdd(t *testing.T) {
	store, actor := newTestStore(t)

	id, res := store.Lookups.Add(types.LookupLocalisation, "Grenier", actor)
	require.True(t, res.OK, res.Message)
	assert.NotZero(t, id)

	_, res = store.Lookups.Add(types.LookupLocalisation, "Grenier", actor)
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "already exists")
}

func TestLookupsRename(t *testing.T) {
	store, actor := newTestStore(t)
	id, res := store.Lookups.Add(types.LookupReliure, "Inconnue", actor)
	require.True(t, res.OK)

	res = store.Lookups.Rename(types.LookupReliure, id, "Reliure Inconnue", actor)
	require.True(t, res.OK)

	res = store.Lookups.Rename(types.LookupReliure, 999, "X", actor)
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "no reliure found with id 999")
}

func TestLookupsDelete(t *testing.T) {
	store, actor := newTestStore(t)
	id, res := store.Lookups.Add(types.LookupPeriode, "Futur", actor)
	require.True(t, res.OK)

	// A record referencing the value keeps living after the delete.
	recID, res2 := store.Ouvrages.Add(actor, types.Ouvrage{
		Titre: "Dune", Auteur: "Herbert", IDPeriode: id,
	})
	require.True(t, res2.OK)

	res = store.Lookups.Delete(types.LookupPeriode, id, actor)
	require.True(t, res.OK)

	details, ok := store.Ouvrages.Details(recID)
	require.True(t, ok)
	assert.Zero(t, details.IDPeriode, "reference nulled by the schema")
}
