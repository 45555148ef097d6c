package customfield

import (
	"strings"

	"github.com/osse101/FleetSync_Go/internal/hr"
	"github.com/osse101/FleetSync_Go/internal/utils"
)

// Strategy identifies which rule matched a field to a slug. Lower values win.
type Strategy int

const (
	StrategySlug Strategy = iota + 1
	StrategyName
	StrategyLabel
	StrategyFallbackID
)

func (s Strategy) String() string {
	switch s {
	case StrategySlug:
		return "slug"
	case StrategyName:
		return "name"
	case StrategyLabel:
		return "label"
	case StrategyFallbackID:
		return "fallback_id"
	}
	return "unknown"
}

// Resolution is the field chosen for a slug and how it was found
type Resolution struct {
	Field    hr.Field
	Strategy Strategy
}

// ResolutionMap maps canonical slugs to upstream field definitions for one run
type ResolutionMap struct {
	bySlug     map[string]Resolution
	unresolved []string
}

// Lookup returns the resolution for slug
func (m ResolutionMap) Lookup(slug string) (Resolution, bool) {
	r, ok := m.bySlug[slug]
	return r, ok
}

// Unresolved lists declared slugs no strategy matched, in table order
func (m ResolutionMap) Unresolved() []string {
	return m.unresolved
}

// Len is the number of resolved slugs
func (m ResolutionMap) Len() int {
	return len(m.bySlug)
}

// candidates returns the slugs a strategy proposes for one field, most
// specific first
type candidates func(f hr.Field, t *Tables) []string

var chain = []struct {
	strategy Strategy
	propose  candidates
}{
	{StrategySlug, func(f hr.Field, _ *Tables) []string {
		return []string{strings.TrimSpace(f.Slug)}
	}},
	{StrategyName, func(f hr.Field, _ *Tables) []string {
		return []string{strings.TrimSpace(f.Name)}
	}},
	{StrategyLabel, func(f hr.Field, _ *Tables) []string {
		return []string{utils.Slugify(f.Label), utils.Slugify(utils.StripAccents(f.Label))}
	}},
	{StrategyFallbackID, func(f hr.Field, t *Tables) []string {
		return []string{t.FallbackIDs[f.ID]}
	}},
}

// Resolve runs the strategy chain over the field definitions. A strategy only
// fills slugs no earlier strategy claimed; within a strategy the first field
// in input order wins.
func Resolve(fields []hr.Field, t *Tables) ResolutionMap {
	m := ResolutionMap{bySlug: make(map[string]Resolution, len(t.Fields))}

	for _, step := range chain {
		for _, f := range fields {
			for _, slug := range step.propose(f, t) {
				if slug == "" || !t.knows(slug) {
					continue
				}
				if _, done := m.bySlug[slug]; done {
					continue
				}
				m.bySlug[slug] = Resolution{Field: f, Strategy: step.strategy}
				break
			}
		}
	}

	for _, slug := range t.Slugs() {
		if _, ok := m.bySlug[slug]; !ok {
			m.unresolved = append(m.unresolved, slug)
		}
	}
	return m
}
