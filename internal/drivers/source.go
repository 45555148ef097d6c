package drivers

import (
	"context"
	"time"

	"github.com/osse101/FleetSync_Go/internal/hr"
)

// Source is the HR data a driver sync reads. *hr.Client implements it.
type Source interface {
	Employees(ctx context.Context) ([]hr.Employee, error)
	Teams(ctx context.Context) ([]hr.Team, error)
	Memberships(ctx context.Context) ([]hr.Membership, error)
	Fields(ctx context.Context) ([]hr.Field, error)
	FieldValues(ctx context.Context) ([]hr.FieldValue, error)
	FieldOptions(ctx context.Context) ([]hr.FieldOption, error)
	ContractVersions(ctx context.Context) ([]hr.ContractVersion, error)
	CustomResourceValues(ctx context.Context) ([]hr.CustomResourceValue, error)
	LeavesOn(ctx context.Context, day time.Time) ([]hr.Leave, error)
	LeaveTypes(ctx context.Context) ([]hr.LeaveType, error)
}

var _ Source = (*hr.Client)(nil)
