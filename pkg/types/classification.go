package types

// ClassificationKind identifies one level of the three-level
// classification tree. Each kind carries its own table name and parent
// column, so callers never dispatch on raw table-name strings.
type ClassificationKind int

const (
	KindCategorie ClassificationKind = iota
	KindGenre
	KindSousGenre
)

// Table returns the SQLite table backing the kind.
func (k ClassificationKind) Table() string {
	switch k {
	case KindCategorie:
		return "categories"
	case KindGenre:
		return "genres"
	default:
		return "sous_genres"
	}
}

// ParentColumn returns the foreign-key column pointing at the kind's
// parent level, or "" for the root kind.
func (k ClassificationKind) ParentColumn() string {
	switch k {
	case KindGenre:
		return "id_categorie"
	case KindSousGenre:
		return "id_genre"
	default:
		return ""
	}
}

// HasParent reports whether rows of this kind require a parent id.
func (k ClassificationKind) HasParent() bool {
	return k != KindCategorie
}

func (k ClassificationKind) String() string {
	switch k {
	case KindCategorie:
		return "categorie"
	case KindGenre:
		return "genre"
	default:
		return "sous-genre"
	}
}

// Item is a single (id, name) classification or lookup row.
type Item struct {
	ID  int64
	Nom string
}
