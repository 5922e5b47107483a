package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librisdb/libris/pkg/types"
)

func TestOuvragesAdd(t *testing.T) {
	t.Run("stamps creation metadata", func(t *testing.T) {
		store, actor := newTestStore(t)
		id, res := store.Ouvrages.Add(actor, types.Ouvrage{Titre: "Dune", Auteur: "Herbert"})
		require.True(t, res.OK, res.Message)

		details, ok := store.Ouvrages.Details(id)
		require.True(t, ok)
		assert.Equal(t, "Dune", details.Titre)
		assert.Equal(t, actor.ID, details.CreePar)
		assert.Equal(t, actor.ID, details.ModifiePar)
		assert.Equal(t, "tester", details.CreeParNom)
		assert.NotEmpty(t, details.DateCreation)
		assert.Equal(t, details.DateCreation, details.DateModification)
	})

	t.Run("title and author are mandatory", func(t *testing.T) {
		store, actor := newTestStore(t)

		_, res := store.Ouvrages.Add(actor, types.Ouvrage{Auteur: "Herbert"})
		assert.False(t, res.OK)
		assert.Equal(t, types.ErrMissingTitle.Error(), res.Message)

		_, res = store.Ouvrages.Add(actor, types.Ouvrage{Titre: "Dune"})
		assert.False(t, res.OK)
		assert.Equal(t, types.ErrMissingAuthor.Error(), res.Message)

		assert.Equal(t, 0, store.Ouvrages.Count())
	})

	t.Run("cover paths are stored relative and resolved back", func(t *testing.T) {
		store, actor := newTestStore(t)
		root := filepath.Dir(store.Path())
		abs := filepath.Join(root, "covers", "front.jpg")

		id, res := store.Ouvrages.Add(actor, types.Ouvrage{
			Titre: "Dune", Auteur: "Herbert", CouvPremiereChemin: abs,
		})
		require.True(t, res.OK)

		var stored string
		require.NoError(t, store.db.QueryRow(
			"SELECT couverture_premiere_chemin FROM ouvrages WHERE id = ?", id).Scan(&stored))
		assert.Equal(t, filepath.Join("covers", "front.jpg"), stored)

		details, ok := store.Ouvrages.Details(id)
		require.True(t, ok)
		assert.Equal(t, abs, details.CouvPremiereChemin)
	})
}

func TestOuvragesList(t *testing.T) {
	store, actor := newTestStore(t)
	catID, res := store.Classifications.Add(types.KindCategorie, "SF", 0, actor)
	require.True(t, res.OK)

	for _, in := range []types.Ouvrage{
		{Titre: "Fondation", Auteur: "Asimov", IDCategorie: catID},
		{Titre: "Dune", Auteur: "Herbert"},
		{Titre: "Les Robots", Auteur: "Asimov"},
	} {
		_, res := store.Ouvrages.Add(actor, in)
		require.True(t, res.OK)
	}

	list := store.Ouvrages.List()
	require.Len(t, list, 3)
	// Ordered by author then title.
	assert.Equal(t, "Fondation", list[0].Titre)
	assert.Equal(t, "Les Robots", list[1].Titre)
	assert.Equal(t, "Dune", list[2].Titre)
	assert.Equal(t, "SF", list[0].CategorieNom)
	assert.Empty(t, list[2].CategorieNom)
	assert.Equal(t, 3, store.Ouvrages.Count())
}

func TestOuvragesUpdate(t *testing.T) {
	t.Run("rewrites fields and stamps the modifier", func(t *testing.T) {
		store, actor := newTestStore(t)
		id, res := store.Ouvrages.Add(actor, types.Ouvrage{Titre: "Dune", Auteur: "Herbert"})
		require.True(t, res.OK)

		other, err := store.Users.Resolve("second")
		require.NoError(t, err)

		res = store.Ouvrages.Update(other, id, types.Ouvrage{
			Titre: "Dune", Auteur: "Herbert", Edition: "Pocket",
		})
		require.True(t, res.OK, res.Message)

		details, ok := store.Ouvrages.Details(id)
		require.True(t, ok)
		assert.Equal(t, "Pocket", details.Edition)
		assert.Equal(t, actor.ID, details.CreePar)
		assert.Equal(t, other.ID, details.ModifiePar)
		assert.Equal(t, "second", details.ModifieParNom)
	})

	t.Run("missing id fails without an error event", func(t *testing.T) {
		store, actor := newTestStore(t)
		res := store.Ouvrages.Update(actor, 999, types.Ouvrage{Titre: "X", Auteur: "Y"})
		assert.False(t, res.OK)
		assert.Equal(t, "no record found with this id", res.Message)
		assert.Empty(t, store.Audit.Events(types.AuditFilter{Level: types.LevelError}))
	})
}

func TestOuvragesDelete(t *testing.T) {
	store, actor := newTestStore(t)
	id, res := store.Ouvrages.Add(actor, types.Ouvrage{Titre: "Dune", Auteur: "Herbert"})
	require.True(t, res.OK)

	res = store.Ouvrages.Delete(id, actor)
	require.True(t, res.OK)
	assert.Equal(t, 0, store.Ouvrages.Count())

	_, ok := store.Ouvrages.Details(id)
	assert.False(t, ok)

	res = store.Ouvrages.Delete(id, actor)
	assert.False(t, res.OK)
}
