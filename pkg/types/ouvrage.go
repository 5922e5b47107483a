package types

// Ouvrage holds the writable fields of one catalog record. Foreign-key
// and numeric fields use 0 as "not set"; they are stored as NULL.
// Titre and Auteur are mandatory; everything else is optional.
type Ouvrage struct {
	Titre         string `json:"titre"`
	SousTitre     string `json:"sous_titre,omitempty"`
	Auteur        string `json:"auteur"`
	Auteur2       string `json:"auteur_2,omitempty"`
	TitreOriginal string `json:"titre_original,omitempty"`
	Cycle         string `json:"cycle,omitempty"`
	Tome          int64  `json:"tome,omitempty"`

	IDIllustration int64 `json:"id_illustration,omitempty"`
	IDCategorie    int64 `json:"id_categorie,omitempty"`
	IDGenre        int64 `json:"id_genre,omitempty"`
	IDSousGenre    int64 `json:"id_sous_genre,omitempty"`
	IDPeriode      int64 `json:"id_periode,omitempty"`

	Edition              string `json:"edition,omitempty"`
	Collection           string `json:"collection,omitempty"`
	EditionAnnee         string `json:"edition_annee,omitempty"`
	EditionNumero        string `json:"edition_numero,omitempty"`
	EditionPremiereAnnee string `json:"edition_premiere_annee,omitempty"`
	ISBN                 string `json:"isbn,omitempty"`

	IDReliure           int64  `json:"id_reliure,omitempty"`
	NombrePage          int64  `json:"nombre_page,omitempty"`
	Dimension           string `json:"dimension,omitempty"`
	IDLocalisation      int64  `json:"id_localisation,omitempty"`
	LocalisationDetails string `json:"localisation_details,omitempty"`

	Resume    string `json:"resume,omitempty"`
	Remarques string `json:"remarques,omitempty"`

	// Cover image references. Chemin is stored in sync-root-relative
	// form; Emplacement is a free-text physical-location annotation.
	CouvPremiereChemin       string `json:"couverture_premiere_chemin,omitempty"`
	CouvPremiereEmplacement  string `json:"couverture_premiere_emplacement,omitempty"`
	CouvQuatriemeChemin      string `json:"couverture_quatrieme_chemin,omitempty"`
	CouvQuatriemeEmplacement string `json:"couverture_quatrieme_emplacement,omitempty"`
}

// OuvrageSummary is the denormalized projection behind the main table
// view: one classification name joined in, nothing else resolved.
type OuvrageSummary struct {
	ID             int64
	Titre          string
	Auteur         string
	Edition        string
	IDLocalisation int64
	CategorieNom   string
}

// OuvrageDetails is the full projection used by the edit form, with
// actor display names denormalized in.
type OuvrageDetails struct {
	ID int64
	Ouvrage

	DateCreation     string
	DateModification string
	CreePar          int64
	ModifiePar       int64
	CreeParNom       string
	ModifieParNom    string
}
