package wincpl

// ItemType is the Type attribute of an <ITEM> element
type ItemType string

const (
	TypeVehicle ItemType = "VEHICULE"
	TypeAbsence ItemType = "ABSENCE"
)

// Actions carried by the Action attribute
const (
	ActionCreate = "C"
	ActionModify = "M"
	ActionDelete = "S"
)

// Element and attribute names
const (
	ElemItem = "ITEM"

	AttrType   = "Type"
	AttrAction = "Action"
	AttrDate   = "Date"
	AttrHeure  = "Heure"

	FieldCode     = "CODE"
	FieldImmat    = "IMMAT"
	FieldMarque   = "MARQUE"
	FieldModele   = "MODELE"
	FieldGenre    = "GENRE"
	FieldCategory = "CATEGORIE"
	FieldEnergie  = "ENERGIE"
	FieldDateMEC  = "DATE_MEC"
	FieldKm       = "KM"
	FieldPTAC     = "PTAC"
	FieldCU       = "CU"
	FieldLongueur = "LONGUEUR"
	FieldVolume   = "VOLUME"
	FieldVIN      = "VIN"
	FieldSite     = "SITE"
	FieldActif    = "ACTIF"

	FieldNumero      = "NUMERO"
	FieldCodeLien    = "CODE_LIEN"
	FieldTypeLien    = "TYPE_LIEN"
	FieldMotif       = "MOTIF"
	FieldDateDebut   = "DATE_DEBUT"
	FieldDateFin     = "DATE_FIN"
	FieldCommentaire = "COMMENTAIRE"
)

// Date layouts accepted in element text, tried in order
var dateLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"20060102",
}

// Time layouts accepted in the Heure attribute
var timeLayouts = []string{"15:04:05", "15:04", "150405", "1504"}
