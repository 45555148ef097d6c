package domain

import "time"

// EntityType names the cache a sync run targets
type EntityType string

const (
	EntityDrivers  EntityType = "drivers"
	EntityVehicles EntityType = "vehicles"
	// EntityAll is accepted by queries as "both entity types"
	EntityAll EntityType = "all"
)

// Valid reports whether e is a known entity type
func (e EntityType) Valid() bool {
	switch e {
	case EntityDrivers, EntityVehicles, EntityAll:
		return true
	}
	return false
}

// SyncStatus is the lifecycle state of a sync run
type SyncStatus string

const (
	SyncStatusInProgress SyncStatus = "in_progress"
	SyncStatusCompleted  SyncStatus = "completed"
	SyncStatusFailed     SyncStatus = "failed"
)

// Terminal reports whether no further transition is allowed
func (s SyncStatus) Terminal() bool {
	return s == SyncStatusCompleted || s == SyncStatusFailed
}

// Trigger sources recorded on a run
const (
	TriggerManual    = "manual"
	TriggerScheduler = "scheduler"
	TriggerCLI       = "cli"
)

// SyncCounts are the per-run record counts
type SyncCounts struct {
	Synced  int `json:"synced"`
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// SyncRun is one entry of the run ledger. It is created in_progress and mutated
// exactly once into a terminal state.
type SyncRun struct {
	ID         string     `json:"id"`
	EntityType EntityType `json:"entity_type"`
	Status     SyncStatus `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	SyncCounts
	ErrorMessage string `json:"error_message,omitempty"`
	TriggeredBy  string `json:"triggered_by"`
}

// SyncStatusReport is the status query result
type SyncStatusReport struct {
	LastCompleted map[EntityType]*SyncRun `json:"last_completed"`
	InProgress    []SyncRun               `json:"in_progress"`
}

// SyncAllResult aggregates the two independent pipelines of a combined run
type SyncAllResult struct {
	Drivers       *SyncRun `json:"drivers,omitempty"`
	DriversError  string   `json:"drivers_error,omitempty"`
	Vehicles      *SyncRun `json:"vehicles,omitempty"`
	VehiclesError string   `json:"vehicles_error,omitempty"`
}
