package types

// Location filter sentinels for the report queries. LocationAll spans
// every record; LocationNone restricts to records without a
// localisation. Any other value names a localisation row.
const (
	LocationAll  = "Toutes"
	LocationNone = "Non renseignée"
)

// CoverSide selects which cover column a report inspects.
type CoverSide int

const (
	CoverFront CoverSide = iota
	CoverBack
)

// Column returns the ouvrages column holding the side's stored path.
func (s CoverSide) Column() string {
	if s == CoverBack {
		return "couverture_quatrieme_chemin"
	}
	return "couverture_premiere_chemin"
}

// CategoryCount is one row of a top-N classification report.
type CategoryCount struct {
	Nom   string
	Total int
}

// CoverStats splits records into cover-present and cover-absent.
type CoverStats struct {
	With    int
	Without int
}

// RecentOuvrage is one row of the most-recently-created report.
type RecentOuvrage struct {
	Titre        string
	Auteur       string
	DateCreation string
}

// ImportReport carries the per-level counts of a classification import
// plus an optional partial-error summary.
type ImportReport struct {
	Categories int
	Genres     int
	SousGenres int
	ErrorNote  string
}
