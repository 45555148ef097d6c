package wincpl

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var (
	ErrEmptyDocument   = errors.New("empty document")
	ErrNoItem          = errors.New("no ITEM element")
	ErrUnknownType     = errors.New("unknown item type")
	ErrMissingKeyField = errors.New("missing key field")
)

// Parse reads one <ITEM> document. Input that is not valid UTF-8 is decoded
// as ISO-8859-1.
func Parse(name string, data []byte) (Item, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Item{}, ErrEmptyDocument
	}
	if !utf8.Valid(data) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return Item{}, fmt.Errorf("decode latin-1: %w", err)
		}
		data = decoded
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	// The payload is UTF-8 by now whatever the prolog declares.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	dec.Strict = false

	attrs, fields, err := readItem(dec)
	if err != nil {
		return Item{}, err
	}

	item := Item{
		Source:    name,
		Type:      ItemType(strings.ToUpper(strings.TrimSpace(attrs[AttrType]))),
		Action:    strings.ToUpper(strings.TrimSpace(attrs[AttrAction])),
		Timestamp: parseStamp(attrs[AttrDate], attrs[AttrHeure]),
	}

	switch item.Type {
	case TypeVehicle:
		v := buildVehicle(fields)
		if v.Code == "" {
			return Item{}, fmt.Errorf("%w: %s", ErrMissingKeyField, FieldCode)
		}
		item.Vehicle = &v
	case TypeAbsence:
		a := buildAbsence(fields)
		if a.Number == "" {
			return Item{}, fmt.Errorf("%w: %s", ErrMissingKeyField, FieldNumero)
		}
		if a.VehicleCode == "" {
			return Item{}, fmt.Errorf("%w: %s", ErrMissingKeyField, FieldCodeLien)
		}
		item.Absence = &a
	default:
		return Item{}, fmt.Errorf("%w: %q", ErrUnknownType, attrs[AttrType])
	}
	return item, nil
}

// readItem pulls tokens until the first ITEM element closes. It returns the
// ITEM attributes and the text of each direct child, keyed by upper-cased
// element name.
func readItem(dec *xml.Decoder) (map[string]string, map[string]string, error) {
	attrs := map[string]string{}
	fields := map[string]string{}

	inItem := false
	depth := 0
	var current string
	var text strings.Builder

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			if inItem {
				return nil, nil, fmt.Errorf("unterminated %s element", ElemItem)
			}
			return nil, nil, ErrNoItem
		}
		if err != nil {
			return nil, nil, fmt.Errorf("xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !inItem {
				if !strings.EqualFold(t.Name.Local, ElemItem) {
					continue
				}
				inItem = true
				for _, a := range t.Attr {
					attrs[canonicalAttr(a.Name.Local)] = a.Value
				}
				continue
			}
			depth++
			if depth == 1 {
				current = strings.ToUpper(t.Name.Local)
				text.Reset()
			}
		case xml.CharData:
			if inItem && depth == 1 {
				text.Write(t)
			}
		case xml.EndElement:
			if !inItem {
				continue
			}
			if depth == 0 {
				return attrs, fields, nil
			}
			if depth == 1 && current != "" {
				fields[current] = strings.TrimSpace(text.String())
				current = ""
			}
			depth--
		}
	}
}

// canonicalAttr maps attribute names case-insensitively onto the known set
func canonicalAttr(name string) string {
	for _, known := range []string{AttrType, AttrAction, AttrDate, AttrHeure} {
		if strings.EqualFold(name, known) {
			return known
		}
	}
	return name
}

func buildVehicle(f map[string]string) Vehicle {
	return Vehicle{
		Code:              f[FieldCode],
		Plate:             f[FieldImmat],
		Brand:             f[FieldMarque],
		Model:             f[FieldModele],
		Genre:             f[FieldGenre],
		Category:          f[FieldCategory],
		Energy:            f[FieldEnergie],
		FirstRegistration: parseDate(f[FieldDateMEC]),
		Mileage:           parseInt(f[FieldKm]),
		GrossWeightKg:     parseDecimal(f[FieldPTAC]),
		PayloadKg:         parseDecimal(f[FieldCU]),
		LengthCm:          parseDecimal(f[FieldLongueur]),
		VolumeM3:          parseDecimal(f[FieldVolume]),
		VIN:               f[FieldVIN],
		Site:              f[FieldSite],
		Active:            parseBool(f[FieldActif]),
	}
}

func buildAbsence(f map[string]string) Absence {
	return Absence{
		Number:      f[FieldNumero],
		VehicleCode: f[FieldCodeLien],
		LinkType:    f[FieldTypeLien],
		Reason:      f[FieldMotif],
		StartsAt:    parseDate(f[FieldDateDebut]),
		EndsAt:      parseDate(f[FieldDateFin]),
		Comment:     f[FieldCommentaire],
	}
}

// ParseAll parses every document. A failing document is reported and the
// rest of the batch continues.
func ParseAll(docs []Document) ([]Item, []FileError) {
	items := make([]Item, 0, len(docs))
	var errs []FileError
	for i, doc := range docs {
		name := doc.Name
		if name == "" {
			name = fmt.Sprintf("file[%d]", i)
		}
		item, err := Parse(name, doc.Data)
		if err != nil {
			errs = append(errs, FileError{File: name, Err: err})
			continue
		}
		items = append(items, item)
	}
	return items, errs
}
