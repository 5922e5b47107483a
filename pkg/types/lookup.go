package types

// LookupKind identifies one of the four independent flat vocabularies
// referenced by catalog records.
type LookupKind int

const (
	LookupIllustration LookupKind = iota
	LookupPeriode
	LookupReliure
	LookupLocalisation
)

// Table returns the SQLite table backing the vocabulary.
func (k LookupKind) Table() string {
	switch k {
	case LookupIllustration:
		return "illustrations"
	case LookupPeriode:
		return "periodes"
	case LookupReliure:
		return "reliures"
	default:
		return "localisations"
	}
}

func (k LookupKind) String() string {
	switch k {
	case LookupIllustration:
		return "illustration"
	case LookupPeriode:
		return "periode"
	case LookupReliure:
		return "reliure"
	default:
		return "localisation"
	}
}

// LookupKinds lists every vocabulary for enumeration.
var LookupKinds = []LookupKind{
	LookupIllustration,
	LookupPeriode,
	LookupReliure,
	LookupLocalisation,
}
