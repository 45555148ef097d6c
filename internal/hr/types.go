package hr

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Scalar is a JSON value of unknown scalar type, kept as text
type Scalar struct {
	Text  string
	Valid bool
}

// UnmarshalJSON accepts strings, numbers, booleans and null
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = Scalar{}
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar{Text: str, Valid: true}
		return nil
	}
	*s = Scalar{Text: string(data), Valid: true}
	return nil
}

// MarshalJSON writes the text form, or null
func (s Scalar) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Text)
}

// String returns the text, or "" when null
func (s Scalar) String() string {
	if !s.Valid {
		return ""
	}
	return s.Text
}

// Int parses the scalar as an integer id
func (s Scalar) Int() (int, bool) {
	if !s.Valid {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(s.Text))
	return n, err == nil
}

// Envelope is the paginated response wrapper
type Envelope[T any] struct {
	Data []T `json:"data"`
	Meta struct {
		HasNextPage bool `json:"has_next_page"`
		Total       int  `json:"total,omitempty"`
	} `json:"meta"`
}

type Employee struct {
	ID           int    `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2"`
	PostalCode   string `json:"postal_code"`
	City         string `json:"city"`
	Country      string `json:"country"`
	TerminatedOn string `json:"terminated_on,omitempty"`
}

// DisplayName returns the full name, building it from parts when absent
func (e Employee) DisplayName() string {
	if e.FullName != "" {
		return e.FullName
	}
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Address joins both address lines
func (e Employee) Address() string {
	if e.AddressLine2 == "" {
		return e.AddressLine1
	}
	return strings.TrimSpace(e.AddressLine1 + ", " + e.AddressLine2)
}

type Team struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	EmployeeIDs []int  `json:"employee_ids"`
}

type Membership struct {
	ID         int  `json:"id"`
	TeamID     int  `json:"team_id"`
	EmployeeID int  `json:"employee_id"`
	Lead       bool `json:"lead"`
}

// Field is a custom-field definition
type Field struct {
	ID        int    `json:"id"`
	Label     string `json:"label"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	FieldType string `json:"field_type"`
}

// FieldValue is one stored custom-field value. Its owner is polymorphic:
// ValuableType says what ValuableID points at.
type FieldValue struct {
	ID                int    `json:"id"`
	FieldID           int    `json:"field_id"`
	ValuableType      string `json:"valuable_type"`
	ValuableID        int    `json:"valuable_id"`
	Value             Scalar `json:"value"`
	LongTextValue     Scalar `json:"long_text_value"`
	DateValue         Scalar `json:"date_value"`
	SingleChoiceValue Scalar `json:"single_choice_value"`
}

type FieldOption struct {
	ID      int    `json:"id"`
	FieldID int    `json:"field_id"`
	Label   string `json:"label"`
	Value   string `json:"value"`
}

// DisplayLabel prefers the label, falling back to the raw value
func (o FieldOption) DisplayLabel() string {
	if o.Label != "" {
		return o.Label
	}
	return o.Value
}

type ContractVersion struct {
	ID         int `json:"id"`
	EmployeeID int `json:"employee_id"`
}

type CustomResourceValue struct {
	ID         int  `json:"id"`
	EmployeeID *int `json:"employee_id"`
}

type Leave struct {
	ID            int    `json:"id"`
	EmployeeID    int    `json:"employee_id"`
	StartOn       string `json:"start_on"`
	FinishOn      string `json:"finish_on"`
	LeaveTypeID   *int   `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name"`
	Approved      *bool  `json:"approved"`
}

// IsApproved treats a missing approval flag as approved; only an explicit false rejects.
func (l Leave) IsApproved() bool {
	return l.Approved == nil || *l.Approved
}

// Covers reports whether the leave spans the given calendar day. A missing
// finish date means the leave is still open.
func (l Leave) Covers(day time.Time) bool {
	start, ok := ParseDay(l.StartOn)
	if !ok {
		return false
	}
	d := truncateDay(day)
	if d.Before(start) {
		return false
	}
	finish, ok := ParseDay(l.FinishOn)
	if !ok {
		return true
	}
	return !d.After(finish)
}

type LeaveType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ParseDay reads a YYYY-MM-DD or RFC3339 value as a UTC calendar day
func ParseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DayLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return truncateDay(t), true
	}
	if len(s) >= len(DayLayout) {
		if t, err := time.Parse(DayLayout, s[:len(DayLayout)]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
