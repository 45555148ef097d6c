package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DataSource identifies which upstream produced a vehicle record
type DataSource string

const (
	DataSourceMyRentCar DataSource = "myrentcar"
	DataSourceWincpl    DataSource = "wincpl"
)

// VehicleStatus is the operator-managed state of a vehicle
type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "disponible"
	VehicleStatusInUse       VehicleStatus = "en_service"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusOutOfOrder  VehicleStatus = "hors_service"
)

// Valid reports whether s is a known vehicle status
func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleStatusAvailable, VehicleStatusInUse, VehicleStatusMaintenance, VehicleStatusOutOfOrder:
		return true
	}
	return false
}

// VehicleAttributes is the canonical upstream-owned vehicle schema. Both the rental
// platform and the Wincpl feed map onto it. Measures are metric: tonnes, metres, cubic metres.
type VehicleAttributes struct {
	Plate             string           `json:"plate"`
	Brand             string           `json:"brand"`
	Model             string           `json:"model"`
	Genre             string           `json:"genre"`
	Category          string           `json:"category"`
	EnergyCode        string           `json:"energy_code"`
	EnergyLabel       string           `json:"energy_label"`
	FirstRegistration *time.Time       `json:"first_registration,omitempty"`
	Mileage           *int64           `json:"mileage,omitempty"`
	GrossWeight       *decimal.Decimal `json:"gross_weight_t,omitempty"`
	Payload           *decimal.Decimal `json:"payload_t,omitempty"`
	Length            *decimal.Decimal `json:"length_m,omitempty"`
	Volume            *decimal.Decimal `json:"volume_m3,omitempty"`
	VIN               string           `json:"vin"`
	Site              string           `json:"site"`
	Active            *bool            `json:"active,omitempty"`
}

// VehicleAbsence is one unavailability window attached to a vehicle by the Wincpl feed
type VehicleAbsence struct {
	Number    string     `json:"numero"`
	Reason    string     `json:"motif"`
	StartsAt  *time.Time `json:"date_debut,omitempty"`
	EndsAt    *time.Time `json:"date_fin,omitempty"`
	Comment   string     `json:"commentaire,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// VehicleManual holds operator-owned vehicle fields. No sync path writes them.
type VehicleManual struct {
	Status            VehicleStatus `json:"status"`
	TrailerTypes      []string      `json:"compatible_trailer_types"`
	Equipment         []string      `json:"equipment"`
	Location          string        `json:"location"`
	NextMaintenanceAt *time.Time    `json:"next_maintenance_at,omitempty"`
	NextInspectionAt  *time.Time    `json:"next_inspection_at,omitempty"`
	AssignedDriverID  *string       `json:"assigned_driver_id,omitempty"`
}

// VehicleCacheRecord is the canonical local record for one vehicle. Exactly one of
// ExternalID (rental platform) and Code (Wincpl) keys the record, per DataSource.
type VehicleCacheRecord struct {
	ID         string            `json:"id"`
	DataSource DataSource        `json:"data_source"`
	ExternalID *int64            `json:"external_id,omitempty"`
	Code       *string           `json:"code,omitempty"`
	Attributes VehicleAttributes `json:"attributes"`
	Absences   []VehicleAbsence  `json:"absences"`
	VehicleManual
	SyncedAt  time.Time `json:"synced_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpsertAbsence replaces the entry with the same number or appends a new one.
// It reports whether an existing entry was replaced.
func (v *VehicleCacheRecord) UpsertAbsence(a VehicleAbsence) bool {
	for i := range v.Absences {
		if v.Absences[i].Number == a.Number {
			v.Absences[i] = a
			return true
		}
	}
	v.Absences = append(v.Absences, a)
	return false
}

// RemoveAbsence drops the entry with the given number and reports whether one existed
func (v *VehicleCacheRecord) RemoveAbsence(number string) bool {
	for i := range v.Absences {
		if v.Absences[i].Number == number {
			v.Absences = append(v.Absences[:i], v.Absences[i+1:]...)
			return true
		}
	}
	return false
}

// VehicleFilter narrows vehicle cache listings
type VehicleFilter struct {
	DataSource DataSource
	Status     VehicleStatus
	Search     string
	Limit      int
	Offset     int
}

// VehicleManualPatch carries an operator edit. Nil fields are left unchanged.
type VehicleManualPatch struct {
	Status            *VehicleStatus `json:"status,omitempty" validate:"omitempty,vehicle_status"`
	TrailerTypes      []string       `json:"compatible_trailer_types,omitempty" validate:"omitempty,dive,max=50"`
	Equipment         []string       `json:"equipment,omitempty" validate:"omitempty,dive,max=100"`
	Location          *string        `json:"location,omitempty" validate:"omitempty,max=255"`
	NextMaintenanceAt *time.Time     `json:"next_maintenance_at,omitempty"`
	NextInspectionAt  *time.Time     `json:"next_inspection_at,omitempty"`
	AssignedDriverID  *string        `json:"assigned_driver_id,omitempty" validate:"omitempty,len=0|uuid"`
}
