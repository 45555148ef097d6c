package customfield

import (
	"context"

	"github.com/osse101/FleetSync_Go/internal/hr"
	"github.com/osse101/FleetSync_Go/internal/logger"
)

// Input is the reference data one driver run fetched for resolution
type Input struct {
	Fields               []hr.Field
	Values               []hr.FieldValue
	Options              []hr.FieldOption
	ContractVersions     []hr.ContractVersion
	CustomResourceValues []hr.CustomResourceValue
}

// Resolver builds run-scoped resolution state from declarative tables
type Resolver struct {
	tables *Tables
}

// NewResolver creates a resolver over the given tables
func NewResolver(t *Tables) *Resolver {
	return &Resolver{tables: t}
}

// Tables returns the tables the resolver was built with
func (r *Resolver) Tables() *Tables {
	return r.tables
}

// Run is the resolution state of a single sync run. Nothing in it survives
// the run.
type Run struct {
	tables     *Tables
	resolution ResolutionMap
	options    OptionLabels
	values     ValueIndex
}

// Build resolves field definitions and indexes values for one run
func (r *Resolver) Build(ctx context.Context, in Input) *Run {
	run := &Run{
		tables:     r.tables,
		resolution: Resolve(in.Fields, r.tables),
		options:    BuildOptionLabels(in.Options),
		values:     BuildValueIndex(in.Values, BuildOwners(in.ContractVersions, in.CustomResourceValues)),
	}

	log := logger.FromContext(ctx)
	for _, slug := range r.tables.Slugs() {
		if res, ok := run.resolution.Lookup(slug); ok {
			log.Debug(LogMsgFieldResolved, "slug", slug, "field_id", res.Field.ID, "strategy", res.Strategy.String())
		}
	}
	if missing := run.resolution.Unresolved(); len(missing) > 0 {
		log.Warn(LogMsgUnresolved, "slugs", missing)
	}
	return run
}

// Unresolved lists slugs with no upstream field this run
func (run *Run) Unresolved() []string {
	return run.resolution.Unresolved()
}

// Value returns the extracted value of slug for an employee
func (run *Run) Value(employeeID int, slug string) string {
	res, ok := run.resolution.Lookup(slug)
	if !ok {
		return ""
	}
	v, ok := run.values.Latest(employeeID, res.Field.ID)
	if !ok {
		return ""
	}
	return Extract(res.Field, v, run.options)
}

// FieldsFor returns every declared column for an employee. Unresolved or
// missing values are present as empty strings.
func (run *Run) FieldsFor(employeeID int) map[string]string {
	out := make(map[string]string, len(run.tables.Fields))
	for _, f := range run.tables.Fields {
		out[f.Column] = run.Value(employeeID, f.Slug)
	}
	return out
}
