package wincpl

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vehicle is a parsed VEHICULE item, in the feed's own units
type Vehicle struct {
	Code              string
	Plate             string
	Brand             string
	Model             string
	Genre             string
	Category          string
	Energy            string
	FirstRegistration *time.Time
	Mileage           *int64
	GrossWeightKg     *decimal.Decimal
	PayloadKg         *decimal.Decimal
	LengthCm          *decimal.Decimal
	VolumeM3          *decimal.Decimal
	VIN               string
	Site              string
	Active            *bool
}

// Absence is a parsed ABSENCE item. VehicleCode links it to a Vehicle.Code.
type Absence struct {
	Number      string
	VehicleCode string
	LinkType    string
	Reason      string
	StartsAt    *time.Time
	EndsAt      *time.Time
	Comment     string
}

// Item is one parsed <ITEM>. Exactly one of Vehicle and Absence is set, per Type.
type Item struct {
	Source    string
	Type      ItemType
	Action    string
	Timestamp *time.Time
	Vehicle   *Vehicle
	Absence   *Absence
}

// IsDeletion reports whether the item asks for its target to be removed
func (i Item) IsDeletion() bool {
	return i.Action == ActionDelete
}

// Document is one raw XML file
type Document struct {
	Name string
	Data []byte
}

// FileError ties a parse failure to the file it came from
type FileError struct {
	File string `json:"file"`
	Err  error  `json:"-"`
}

func (e FileError) Error() string {
	return e.File + ": " + e.Err.Error()
}

func (e FileError) Unwrap() error {
	return e.Err
}
