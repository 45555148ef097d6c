package domain

import "time"

// DriverStatus is the operational availability of a driver.
type DriverStatus string

const (
	DriverStatusAvailable   DriverStatus = "disponible"
	DriverStatusUnavailable DriverStatus = "indisponible"
	// DriverStatusOccupied is set by operators when a driver is actively assigned.
	// Leave data never overrides it.
	DriverStatusOccupied DriverStatus = "occupe"
)

// Valid reports whether s is a known driver status
func (s DriverStatus) Valid() bool {
	switch s {
	case DriverStatusAvailable, DriverStatusUnavailable, DriverStatusOccupied:
		return true
	}
	return false
}

// DriverUpstream holds every field owned by the HR source. A sync overwrites all of them.
type DriverUpstream struct {
	ExternalID   int               `json:"external_id"`
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	FullName     string            `json:"full_name"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	AddressLine  string            `json:"address_line"`
	PostalCode   string            `json:"postal_code"`
	City         string            `json:"city"`
	Country      string            `json:"country"`
	TeamID       *int              `json:"team_id,omitempty"`
	TeamName     string            `json:"team_name"`
	CustomFields map[string]string `json:"custom_fields"`
}

// DriverManual holds operator-owned fields. A sync never writes them, except the
// availability pair when it is derived from leave data.
type DriverManual struct {
	Matricule          string       `json:"matricule"`
	Permits            []string     `json:"permits"`
	Certifications     []string     `json:"certifications"`
	Agency             string       `json:"agency"`
	Zone               string       `json:"zone"`
	Status             DriverStatus `json:"status"`
	UnavailabilityNote string       `json:"indisponibilite_raison"`
}

// DriverCacheRecord is the canonical local record for one driver
type DriverCacheRecord struct {
	ID string `json:"id"`
	DriverUpstream
	DriverManual
	SyncedAt  time.Time `json:"synced_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AvailabilityChange is the only manual-field write a driver sync may perform
type AvailabilityChange struct {
	Status DriverStatus
	Reason string
}

// DriverFilter narrows driver cache listings
type DriverFilter struct {
	Status DriverStatus
	TeamID *int
	Search string
	Limit  int
	Offset int
}

// DriverManualPatch carries an operator edit. Nil fields are left unchanged.
type DriverManualPatch struct {
	Matricule          *string       `json:"matricule,omitempty" validate:"omitempty,max=50"`
	Permits            []string      `json:"permits,omitempty" validate:"omitempty,dive,max=20"`
	Certifications     []string      `json:"certifications,omitempty" validate:"omitempty,dive,max=50"`
	Agency             *string       `json:"agency,omitempty" validate:"omitempty,max=100"`
	Zone               *string       `json:"zone,omitempty" validate:"omitempty,max=100"`
	Status             *DriverStatus `json:"status,omitempty" validate:"omitempty,driver_status"`
	UnavailabilityNote *string       `json:"indisponibilite_raison,omitempty" validate:"omitempty,max=255"`
}
