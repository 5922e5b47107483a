package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librisdb/libris/pkg/types"
)

// seedReportData builds a small catalog spread over two locations plus
// unlocated records.
func seedReportData(t *testing.T, store *Store, actor types.Actor) {
	t.Helper()

	salon, res := store.Lookups.Add(types.LookupLocalisation, "Le Salon", actor)
	require.True(t, res.OK)
	bureau, res := store.Lookups.Add(types.LookupLocalisation, "Le Bureau", actor)
	require.True(t, res.OK)

	roman, res := store.Classifications.Add(types.KindCategorie, "Roman", 0, actor)
	require.True(t, res.OK)
	essai, res := store.Classifications.Add(types.KindCategorie, "Essai", 0, actor)
	require.True(t, res.OK)

	periode, res := store.Lookups.Add(types.LookupPeriode, "Ère spatiale", actor)
	require.True(t, res.OK)

	for _, in := range []types.Ouvrage{
		{Titre: "A", Auteur: "X", IDLocalisation: salon, IDCategorie: roman, IDPeriode: periode, CouvPremiereChemin: "covers/a.jpg"},
		{Titre: "B", Auteur: "X", IDLocalisation: salon, IDCategorie: roman},
		{Titre: "C", Auteur: "X", IDLocalisation: salon, IDCategorie: essai},
		{Titre: "D", Auteur: "Y", IDLocalisation: bureau, IDCategorie: essai},
		{Titre: "E", Auteur: "Y"},
	} {
		_, res := store.Ouvrages.Add(actor, in)
		require.True(t, res.OK, res.Message)
	}
}

func TestCountByLocation(t *testing.T) {
	store, actor := newTestStore(t)
	seedReportData(t, store, actor)

	counts := store.Reports.CountByLocation()
	assert.Equal(t, map[string]int{
		"Le Salon":         3,
		"Le Bureau":        1,
		types.LocationNone: 1,
	}, counts)
}

func TestCoverStats(t *testing.T) {
	store, actor := newTestStore(t)
	seedReportData(t, store, actor)

	tests := []struct {
		name     string
		side     types.CoverSide
		location string
		want     types.CoverStats
	}{
		{name: "front, all locations", side: types.CoverFront, location: types.LocationAll, want: types.CoverStats{With: 1, Without: 4}},
		{name: "front, one location", side: types.CoverFront, location: "Le Salon", want: types.CoverStats{With: 1, Without: 2}},
		{name: "front, unlocated", side: types.CoverFront, location: types.LocationNone, want: types.CoverStats{With: 0, Without: 1}},
		{name: "back has no covers", side: types.CoverBack, location: types.LocationAll, want: types.CoverStats{With: 0, Without: 5}},
		{name: "unknown location is empty", side: types.CoverFront, location: "Grenier", want: types.CoverStats{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.Reports.CoverStats(tt.side, tt.location))
		})
	}
}

func TestTopCategories(t *testing.T) {
	store, actor := newTestStore(t)
	seedReportData(t, store, actor)

	t.Run("all locations", func(t *testing.T) {
		top := store.Reports.TopCategories(types.LocationAll, 2)
		require.Len(t, top, 2)
		// Essai and Roman both count 2; the uncategorized record ranks last.
		assert.Equal(t, 2, top[0].Total)
		assert.Equal(t, 2, top[1].Total)
	})

	t.Run("one location", func(t *testing.T) {
		top := store.Reports.TopCategories("Le Salon", 3)
		require.Len(t, top, 2)
		assert.Equal(t, types.CategoryCount{Nom: "Roman", Total: 2}, top[0])
		assert.Equal(t, types.CategoryCount{Nom: "Essai", Total: 1}, top[1])
	})

	t.Run("unlocated records", func(t *testing.T) {
		top := store.Reports.TopCategories(types.LocationNone, 3)
		require.Len(t, top, 1)
		assert.Equal(t, types.LocationNone, top[0].Nom, "missing category reports as unset")
		assert.Equal(t, 1, top[0].Total)
	})
}

func TestRecentOuvrages(t *testing.T) {
	store, actor := newTestStore(t)
	seedReportData(t, store, actor)

	recent := store.Reports.RecentOuvrages(types.LocationAll, 3)
	require.Len(t, recent, 3)
	for _, ro := range recent {
		assert.NotEmpty(t, ro.Titre)
		assert.NotEmpty(t, ro.DateCreation)
	}

	assert.Len(t, store.Reports.RecentOuvrages("Le Bureau", 5), 1)
	assert.Empty(t, store.Reports.RecentOuvrages("Grenier", 5))
}

func TestCategoriesByLocation(t *testing.T) {
	store, actor := newTestStore(t)
	seedReportData(t, store, actor)

	got := store.Reports.CategoriesByLocation()
	assert.Equal(t, map[string]map[string]int{
		"Le Salon":  {"Roman": 2, "Essai": 1},
		"Le Bureau": {"Essai": 1},
	}, got, "uncategorized records are excluded")
}

func TestPeriodesByLocation(t *testing.T) {
	store, actor := newTestStore(t)
	seedReportData(t, store, actor)

	got := store.Reports.PeriodesByLocation()
	assert.Equal(t, map[string]map[string]int{
		"Le Salon":         {"Ère spatiale": 1, types.LocationNone: 2},
		"Le Bureau":        {types.LocationNone: 1},
		types.LocationNone: {types.LocationNone: 1},
	}, got)
}

func TestBreakdownIterationFailure(t *testing.T) {
	store, _ := newTestStore(t)

	got := store.Reports.breakdown("sqlite.Reports.CategoriesByLocation",
		"SELECT 'a', 'b', 1 UNION ALL SELECT 'c', 'd', abs(-9223372036854775808)")
	assert.Nil(t, got, "a mid-iteration failure must not return a partial breakdown")

	events := store.Audit.Events(types.AuditFilter{SourceModule: "sqlite.Reports.CategoriesByLocation"})
	require.Len(t, events, 1)
	assert.Equal(t, types.LevelError, events[0].Level)
}
