package vehicles

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/FleetSync_Go/internal/domain"
	"github.com/osse101/FleetSync_Go/internal/myrentcar"
	"github.com/osse101/FleetSync_Go/internal/utils"
	"github.com/osse101/FleetSync_Go/internal/wincpl"
)

// Energy codes
const (
	EnergyElectric    = "EL"
	EnergyHybrid      = "HY"
	EnergyHydrogen    = "H2"
	EnergyNaturalGas  = "GN"
	EnergyDiesel      = "GO"
	EnergyPetrol      = "ES"
	energyUnknownCode = ""
)

// energyRules are checked in order against the folded label. Hybrid comes
// first because hybrid labels usually mention the electric motor too.
var energyRules = []struct {
	code      string
	fragments []string
}{
	{EnergyHybrid, []string{"hybrid"}},
	{EnergyElectric, []string{"electri"}},
	{EnergyHydrogen, []string{"hydrog"}},
	{EnergyNaturalGas, []string{"gnv", "gaz naturel", "bio"}},
	{EnergyDiesel, []string{"gazole", "diesel"}},
	{EnergyPetrol, []string{"essence", "sp9"}},
}

var knownEnergyCodes = map[string]bool{
	EnergyElectric: true, EnergyHybrid: true, EnergyHydrogen: true,
	EnergyNaturalGas: true, EnergyDiesel: true, EnergyPetrol: true,
}

// EnergyCode derives the canonical energy code from a free-text label. A
// label that already is a code is returned as-is.
func EnergyCode(label string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(label))
	if knownEnergyCodes[trimmed] {
		return trimmed
	}
	folded := utils.FoldKey(label)
	if folded == "" {
		return energyUnknownCode
	}
	for _, rule := range energyRules {
		for _, frag := range rule.fragments {
			if strings.Contains(folded, frag) {
				return rule.code
			}
		}
	}
	return energyUnknownCode
}

var (
	thousand = decimal.NewFromInt(1000)
	hundred  = decimal.NewFromInt(100)
)

func divide(d *decimal.Decimal, by decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := d.Div(by)
	return &v
}

var rentalDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02", "02/01/2006"}

func parseRentalDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range rentalDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// MapRental maps a rental platform payload onto the canonical attributes
func MapRental(d myrentcar.VehicleDetail) domain.VehicleAttributes {
	return domain.VehicleAttributes{
		Plate:             strings.TrimSpace(d.Immatriculation),
		Brand:             d.Marque,
		Model:             d.Modele,
		Genre:             d.Genre,
		Category:          d.Categorie,
		EnergyCode:        EnergyCode(d.Energie),
		EnergyLabel:       d.Energie,
		FirstRegistration: parseRentalDate(d.DateMiseCirc),
		Mileage:           d.Kilometrage,
		GrossWeight:       d.PTAC,
		Payload:           d.ChargeUtile,
		Length:            d.Longueur,
		Volume:            d.Volume,
		VIN:               d.VIN,
		Site:              d.Agence,
		Active:            d.Actif,
	}
}

// MapWincpl maps a Wincpl vehicle onto the canonical attributes, converting
// kilograms to tonnes and centimetres to metres
func MapWincpl(v wincpl.Vehicle) domain.VehicleAttributes {
	return domain.VehicleAttributes{
		Plate:             strings.TrimSpace(v.Plate),
		Brand:             v.Brand,
		Model:             v.Model,
		Genre:             v.Genre,
		Category:          v.Category,
		EnergyCode:        EnergyCode(v.Energy),
		EnergyLabel:       v.Energy,
		FirstRegistration: v.FirstRegistration,
		Mileage:           v.Mileage,
		GrossWeight:       divide(v.GrossWeightKg, thousand),
		Payload:           divide(v.PayloadKg, thousand),
		Length:            divide(v.LengthCm, hundred),
		Volume:            v.VolumeM3,
		VIN:               v.VIN,
		Site:              v.Site,
		Active:            v.Active,
	}
}

// MapAbsence converts a Wincpl absence into the embedded cache entry
func MapAbsence(a wincpl.Absence, at time.Time) domain.VehicleAbsence {
	return domain.VehicleAbsence{
		Number:    a.Number,
		Reason:    a.Reason,
		StartsAt:  a.StartsAt,
		EndsAt:    a.EndsAt,
		Comment:   a.Comment,
		UpdatedAt: at,
	}
}

func newManual() domain.VehicleManual {
	return domain.VehicleManual{
		Status:       domain.VehicleStatusAvailable,
		TrailerTypes: []string{},
		Equipment:    []string{},
	}
}
