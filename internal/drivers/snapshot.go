package drivers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/FleetSync_Go/internal/customfield"
	"github.com/osse101/FleetSync_Go/internal/hr"
	"github.com/osse101/FleetSync_Go/internal/utils"
)

// snapshot is every HR dataset one run needs, fetched together
type snapshot struct {
	employees   []hr.Employee
	teams       []hr.Team
	memberships []hr.Membership
	leaves      []hr.Leave
	leaveTypes  []hr.LeaveType
	fields      customfield.Input
}

// fetchSnapshot issues every reference request concurrently. The first
// failure cancels the others and is returned.
func fetchSnapshot(ctx context.Context, src Source, today time.Time) (*snapshot, error) {
	s := &snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	fetch := func(name string, fn func(context.Context) error) {
		g.Go(func() error {
			if err := fn(gctx); err != nil {
				return fmt.Errorf("fetch %s: %w", name, err)
			}
			return nil
		})
	}

	fetch("employees", func(ctx context.Context) (err error) { s.employees, err = src.Employees(ctx); return })
	fetch("teams", func(ctx context.Context) (err error) { s.teams, err = src.Teams(ctx); return })
	fetch("memberships", func(ctx context.Context) (err error) { s.memberships, err = src.Memberships(ctx); return })
	fetch("leaves", func(ctx context.Context) (err error) { s.leaves, err = src.LeavesOn(ctx, today); return })
	fetch("leave types", func(ctx context.Context) (err error) { s.leaveTypes, err = src.LeaveTypes(ctx); return })
	fetch("fields", func(ctx context.Context) (err error) { s.fields.Fields, err = src.Fields(ctx); return })
	fetch("field values", func(ctx context.Context) (err error) { s.fields.Values, err = src.FieldValues(ctx); return })
	fetch("field options", func(ctx context.Context) (err error) { s.fields.Options, err = src.FieldOptions(ctx); return })
	fetch("contract versions", func(ctx context.Context) (err error) {
		s.fields.ContractVersions, err = src.ContractVersions(ctx)
		return
	})
	fetch("custom resource values", func(ctx context.Context) (err error) {
		s.fields.CustomResourceValues, err = src.CustomResourceValues(ctx)
		return
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}

// teamAssignment is the team an in-scope employee is attached to
type teamAssignment struct {
	id   int
	name string
}

// scope decides which employees are drivers and which team each belongs to.
// Teams are matched by keyword; with no match every employee is in scope and
// fallback is true.
func (s *snapshot) scope(keyword string) (members map[int]*teamAssignment, fallback bool) {
	teams := append([]hr.Team(nil), s.teams...)
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })

	var driverTeams []hr.Team
	for _, t := range teams {
		if utils.ContainsFold(t.Name, keyword) {
			driverTeams = append(driverTeams, t)
		}
	}

	explicit := map[int][]int{}
	for _, m := range s.memberships {
		explicit[m.TeamID] = append(explicit[m.TeamID], m.EmployeeID)
	}
	membersOf := func(t hr.Team) []int {
		if ids, ok := explicit[t.ID]; ok {
			return ids
		}
		return t.EmployeeIDs
	}

	assign := func(teamList []hr.Team) map[int]*teamAssignment {
		out := map[int]*teamAssignment{}
		for _, t := range teamList {
			for _, emp := range membersOf(t) {
				if _, seen := out[emp]; !seen {
					out[emp] = &teamAssignment{id: t.ID, name: t.Name}
				}
			}
		}
		return out
	}

	if len(driverTeams) > 0 {
		return assign(driverTeams), false
	}

	// Every employee is a driver; keep whatever team they happen to be in.
	anyTeam := assign(teams)
	members = make(map[int]*teamAssignment, len(s.employees))
	for _, e := range s.employees {
		members[e.ID] = anyTeam[e.ID]
	}
	return members, true
}

// leaveReasons maps every employee on approved leave today to the reason
func (s *snapshot) leaveReasons(today time.Time) map[int]string {
	typeNames := make(map[int]string, len(s.leaveTypes))
	for _, lt := range s.leaveTypes {
		typeNames[lt.ID] = lt.Name
	}

	out := map[int]string{}
	for _, l := range s.leaves {
		if !l.IsApproved() || !l.Covers(today) {
			continue
		}
		if _, seen := out[l.EmployeeID]; seen {
			continue
		}
		reason := l.LeaveTypeName
		if reason == "" && l.LeaveTypeID != nil {
			reason = typeNames[*l.LeaveTypeID]
		}
		if reason == "" {
			reason = DefaultLeaveReason
		}
		out[l.EmployeeID] = reason
	}
	return out
}
