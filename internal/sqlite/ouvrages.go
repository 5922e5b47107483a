// Catalog records: CRUD over the ouvrages table. Writes stamp
// timestamps and the acting identity; cover-image paths pass through
// the portable-path conversion on every write and read.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/librisdb/libris/pkg/types"
)

// Ouvrages manages the main catalog records.
type Ouvrages struct {
	s *Store
}

// ouvrageColumns lists the writable columns in insert order.
var ouvrageColumns = []string{
	"titre", "sous_titre", "auteur", "auteur_2",
	"titre_original", "cycle", "tome", "id_illustration",
	"id_categorie", "id_genre", "id_sous_genre", "id_periode",
	"edition", "collection", "edition_annee", "edition_numero",
	"edition_premiere_annee", "isbn", "id_reliure", "nombre_page",
	"dimension", "id_localisation", "localisation_details",
	"resume", "remarques",
	"couverture_premiere_chemin", "couverture_premiere_emplacement",
	"couverture_quatrieme_chemin", "couverture_quatrieme_emplacement",
}

// writeArgs renders an Ouvrage into the ouvrageColumns order, nulling
// unset optionals and converting cover paths to storable form.
func (o *Ouvrages) writeArgs(in types.Ouvrage) []any {
	return []any{
		in.Titre, nullStr(in.SousTitre), in.Auteur, nullStr(in.Auteur2),
		nullStr(in.TitreOriginal), nullStr(in.Cycle), nullID(in.Tome), nullID(in.IDIllustration),
		nullID(in.IDCategorie), nullID(in.IDGenre), nullID(in.IDSousGenre), nullID(in.IDPeriode),
		nullStr(in.Edition), nullStr(in.Collection), nullStr(in.EditionAnnee), nullStr(in.EditionNumero),
		nullStr(in.EditionPremiereAnnee), nullStr(in.ISBN), nullID(in.IDReliure), nullID(in.NombrePage),
		nullStr(in.Dimension), nullID(in.IDLocalisation), nullStr(in.LocalisationDetails),
		nullStr(in.Resume), nullStr(in.Remarques),
		nullStr(o.s.storablePath(in.CouvPremiereChemin)), nullStr(in.CouvPremiereEmplacement),
		nullStr(o.s.storablePath(in.CouvQuatriemeChemin)), nullStr(in.CouvQuatriemeEmplacement),
	}
}

// List returns the denormalized projection behind the main table view,
// ordered by author then title.
func (o *Ouvrages) List() []types.OuvrageSummary {
	source := "sqlite.Ouvrages.List"
	if !o.s.connected() {
		o.s.noConnection(source)
		return nil
	}

	rows, err := o.s.db.Query(`SELECT o.id, o.titre, o.auteur, o.edition, o.id_localisation, c.nom
	FROM ouvrages o
	LEFT JOIN categories c ON o.id_categorie = c.id
	ORDER BY o.auteur, o.titre`)
	if err != nil {
		o.s.Audit.Record(types.LevelError, source, "reading catalog records failed", err, types.Nobody)
		return nil
	}
	defer rows.Close()

	var list []types.OuvrageSummary
	for rows.Next() {
		var sum types.OuvrageSummary
		var edition, catNom sql.NullString
		var locID sql.NullInt64
		if err := rows.Scan(&sum.ID, &sum.Titre, &sum.Auteur, &edition, &locID, &catNom); err != nil {
			rows.Close()
			o.s.Audit.Record(types.LevelError, source, "scanning catalog record failed", err, types.Nobody)
			return nil
		}
		sum.Edition = edition.String
		sum.IDLocalisation = locID.Int64
		sum.CategorieNom = catNom.String
		list = append(list, sum)
	}
	if err := rows.Err(); err != nil {
		o.s.Audit.Record(types.LevelError, source, "reading catalog records failed", err, types.Nobody)
		return nil
	}
	return list
}

// Count returns the total number of catalog records.
func (o *Ouvrages) Count() int {
	source := "sqlite.Ouvrages.Count"
	if !o.s.connected() {
		o.s.noConnection(source)
		return 0
	}
	var n int
	if err := o.s.db.QueryRow("SELECT COUNT(id) FROM ouvrages").Scan(&n); err != nil {
		o.s.Audit.Record(types.LevelError, source, "counting catalog records failed", err, types.Nobody)
		return 0
	}
	return n
}

// Details returns the full projection of one record, cover paths
// resolved for this machine and actor display names joined in. The
// second return is false when no record matches.
func (o *Ouvrages) Details(id int64) (types.OuvrageDetails, bool) {
	source := "sqlite.Ouvrages.Details"
	if !o.s.connected() {
		o.s.noConnection(source)
		return types.OuvrageDetails{}, false
	}

	query := `SELECT o.id, o.titre, o.sous_titre, o.auteur, o.auteur_2,
	o.titre_original, o.cycle, o.tome, o.id_illustration,
	o.id_categorie, o.id_genre, o.id_sous_genre, o.id_periode,
	o.edition, o.collection, o.edition_annee, o.edition_numero,
	o.edition_premiere_annee, o.isbn, o.id_reliure, o.nombre_page,
	o.dimension, o.id_localisation, o.localisation_details,
	o.resume, o.remarques,
	o.couverture_premiere_chemin, o.couverture_premiere_emplacement,
	o.couverture_quatrieme_chemin, o.couverture_quatrieme_emplacement,
	o.date_creation, o.date_modification, o.cree_par, o.modifie_par,
	u.user_name, m.user_name
	FROM ouvrages o
	LEFT JOIN users u ON o.cree_par = u.id
	LEFT JOIN users m ON o.modifie_par = m.id
	WHERE o.id = ?`

	var d types.OuvrageDetails
	var (
		sousTitre, auteur2, titreOriginal, cycle            sql.NullString
		tome, idIllustration, idCategorie, idGenre          sql.NullInt64
		idSousGenre, idPeriode, idReliure, nombrePage       sql.NullInt64
		edition, collection, editionAnnee, editionNumero    sql.NullString
		editionPremiereAnnee, isbn, dimension, locDetails   sql.NullString
		idLocalisation                                      sql.NullInt64
		resume, remarques                                   sql.NullString
		couvPremChemin, couvPremEmpl                        sql.NullString
		couvQuatChemin, couvQuatEmpl                        sql.NullString
		creeParNom, modifieParNom                           sql.NullString
	)
	err := o.s.db.QueryRow(query, id).Scan(
		&d.ID, &d.Titre, &sousTitre, &d.Auteur, &auteur2,
		&titreOriginal, &cycle, &tome, &idIllustration,
		&idCategorie, &idGenre, &idSousGenre, &idPeriode,
		&edition, &collection, &editionAnnee, &editionNumero,
		&editionPremiereAnnee, &isbn, &idReliure, &nombrePage,
		&dimension, &idLocalisation, &locDetails,
		&resume, &remarques,
		&couvPremChemin, &couvPremEmpl,
		&couvQuatChemin, &couvQuatEmpl,
		&d.DateCreation, &d.DateModification, &d.CreePar, &d.ModifiePar,
		&creeParNom, &modifieParNom,
	)
	if err == sql.ErrNoRows {
		return types.OuvrageDetails{}, false
	}
	if err != nil {
		o.s.Audit.Record(types.LevelError, source,
			fmt.Sprintf("reading record %d failed", id), err, types.Nobody)
		return types.OuvrageDetails{}, false
	}

	d.SousTitre = sousTitre.String
	d.Auteur2 = auteur2.String
	d.TitreOriginal = titreOriginal.String
	d.Cycle = cycle.String
	d.Tome = tome.Int64
	d.IDIllustration = idIllustration.Int64
	d.IDCategorie = idCategorie.Int64
	d.IDGenre = idGenre.Int64
	d.IDSousGenre = idSousGenre.Int64
	d.IDPeriode = idPeriode.Int64
	d.Edition = edition.String
	d.Collection = collection.String
	d.EditionAnnee = editionAnnee.String
	d.EditionNumero = editionNumero.String
	d.EditionPremiereAnnee = editionPremiereAnnee.String
	d.ISBN = isbn.String
	d.IDReliure = idReliure.Int64
	d.NombrePage = nombrePage.Int64
	d.Dimension = dimension.String
	d.IDLocalisation = idLocalisation.Int64
	d.LocalisationDetails = locDetails.String
	d.Resume = resume.String
	d.Remarques = remarques.String
	d.CouvPremiereChemin = o.s.absolutePath(couvPremChemin.String)
	d.CouvPremiereEmplacement = couvPremEmpl.String
	d.CouvQuatriemeChemin = o.s.absolutePath(couvQuatChemin.String)
	d.CouvQuatriemeEmplacement = couvQuatEmpl.String
	d.CreeParNom = creeParNom.String
	d.ModifieParNom = modifieParNom.String
	return d, true
}

// Add inserts one record and returns its id, stamping both timestamps
// and the actor as creator and modifier. Title and author are validated
// before any store access.
func (o *Ouvrages) Add(actor types.Actor, in types.Ouvrage) (int64, types.Result) {
	source := "sqlite.Ouvrages.Add"
	if !o.s.connected() {
		o.s.noConnection(source)
		return 0, types.Fail(types.ErrNotConnected.Error())
	}
	if in.Titre == "" {
		return 0, types.Fail(types.ErrMissingTitle.Error())
	}
	if in.Auteur == "" {
		return 0, types.Fail(types.ErrMissingAuthor.Error())
	}

	cols := make([]string, len(ouvrageColumns), len(ouvrageColumns)+4)
	copy(cols, ouvrageColumns)
	cols = append(cols, "date_creation", "date_modification", "cree_par", "modifie_par")

	ts := now()
	args := append(o.writeArgs(in), ts, ts, actor.ID, actor.ID)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")

	query := fmt.Sprintf("INSERT INTO ouvrages (%s) VALUES (%s)", strings.Join(cols, ", "), placeholders)
	res, err := o.s.db.Exec(query, args...)
	if err != nil {
		o.s.Audit.Record(types.LevelError, source, "adding catalog record failed", err, actor)
		return 0, types.Fail("could not add the record; see the activity log")
	}
	id, _ := res.LastInsertId()
	return id, types.Ok(fmt.Sprintf("record %q added", in.Titre))
}

// Update rewrites one record, stamping the modification timestamp and
// actor. Zero matched rows is a non-exceptional failure.
func (o *Ouvrages) Update(actor types.Actor, id int64, in types.Ouvrage) types.Result {
	source := "sqlite.Ouvrages.Update"
	if !o.s.connected() {
		o.s.noConnection(source)
		return types.Fail(types.ErrNotConnected.Error())
	}
	if in.Titre == "" {
		return types.Fail(types.ErrMissingTitle.Error())
	}
	if in.Auteur == "" {
		return types.Fail(types.ErrMissingAuthor.Error())
	}

	setClauses := make([]string, 0, len(ouvrageColumns)+2)
	for _, col := range ouvrageColumns {
		setClauses = append(setClauses, col+" = ?")
	}
	setClauses = append(setClauses, "date_modification = ?", "modifie_par = ?")
	set := strings.Join(setClauses, ", ")

	args := append(o.writeArgs(in), now(), actor.ID, id)

	res, err := o.s.db.Exec("UPDATE ouvrages SET "+set+" WHERE id = ?", args...)
	if err != nil {
		o.s.Audit.Record(types.LevelError, source,
			fmt.Sprintf("updating record %d failed", id), err, actor)
		return types.Fail("could not update the record; see the activity log")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.Fail("no record found with this id")
	}
	return types.Ok(fmt.Sprintf("record %q updated", in.Titre))
}

// Delete removes one record.
func (o *Ouvrages) Delete(id int64, actor types.Actor) types.Result {
	source := "sqlite.Ouvrages.Delete"
	if !o.s.connected() {
		o.s.noConnection(source)
		return types.Fail(types.ErrNotConnected.Error())
	}

	res, err := o.s.db.Exec("DELETE FROM ouvrages WHERE id = ?", id)
	if err != nil {
		o.s.Audit.Record(types.LevelError, source,
			fmt.Sprintf("deleting record %d failed", id), err, actor)
		return types.Fail("could not delete the record; see the activity log")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.Fail("no record found with this id")
	}
	return types.Ok("record deleted")
}
