package customfield

import (
	"strings"

	"github.com/osse101/FleetSync_Go/internal/hr"
	"github.com/osse101/FleetSync_Go/internal/utils"
)

// OptionLabels maps choice option ids to their display label
type OptionLabels map[int]string

// BuildOptionLabels indexes every option by id
func BuildOptionLabels(opts []hr.FieldOption) OptionLabels {
	m := make(OptionLabels, len(opts))
	for _, o := range opts {
		m[o.ID] = o.DisplayLabel()
	}
	return m
}

// ValueIndex holds, per employee and field, the value with the highest id
type ValueIndex map[int]map[int]hr.FieldValue

// BuildValueIndex attributes every value to its owning employee
func BuildValueIndex(values []hr.FieldValue, owners Owners) ValueIndex {
	idx := ValueIndex{}
	for _, v := range values {
		emp, ok := owners.EmployeeOf(v)
		if !ok {
			continue
		}
		byField := idx[emp]
		if byField == nil {
			byField = map[int]hr.FieldValue{}
			idx[emp] = byField
		}
		if cur, seen := byField[v.FieldID]; !seen || v.ID > cur.ID {
			byField[v.FieldID] = v
		}
	}
	return idx
}

// Latest returns the winning value for an employee and field
func (idx ValueIndex) Latest(employeeID, fieldID int) (hr.FieldValue, bool) {
	v, ok := idx[employeeID][fieldID]
	return v, ok
}

type fieldKind int

const (
	kindGeneric fieldKind = iota
	kindChoice
	kindDate
)

func classify(fieldType string) fieldKind {
	t := utils.FoldKey(fieldType)
	switch {
	case strings.Contains(t, typeChoice), strings.Contains(t, typeSelect):
		return kindChoice
	case strings.Contains(t, typeDate):
		return kindDate
	}
	return kindGeneric
}

// Extract returns the effective scalar of a value according to the field type
func Extract(f hr.Field, v hr.FieldValue, options OptionLabels) string {
	switch classify(f.FieldType) {
	case kindChoice:
		if s := choiceLabel(v.SingleChoiceValue, options); s != "" {
			return s
		}
		return choiceLabel(v.Value, options)
	case kindDate:
		if s := strings.TrimSpace(v.DateValue.String()); s != "" {
			return s
		}
		return strings.TrimSpace(v.Value.String())
	default:
		if s := strings.TrimSpace(v.LongTextValue.String()); s != "" {
			return s
		}
		return strings.TrimSpace(v.Value.String())
	}
}

// choiceLabel maps an option id to its label; anything else is already a label
func choiceLabel(s hr.Scalar, options OptionLabels) string {
	if id, ok := s.Int(); ok {
		if label, found := options[id]; found {
			return label
		}
	}
	return strings.TrimSpace(s.String())
}
