package myrentcar

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// VehicleDetail is the rental platform's vehicle payload. Measures are
// already metric (tonnes, metres, cubic metres).
type VehicleDetail struct {
	ID              int64            `json:"id"`
	Immatriculation string           `json:"immatriculation"`
	Marque          string           `json:"marque"`
	Modele          string           `json:"modele"`
	Genre           string           `json:"genre"`
	Categorie       string           `json:"categorie"`
	Energie         string           `json:"energie"`
	DateMiseCirc    string           `json:"date_mise_en_circulation"`
	Kilometrage     *int64           `json:"kilometrage"`
	PTAC            *decimal.Decimal `json:"ptac"`
	ChargeUtile     *decimal.Decimal `json:"charge_utile"`
	Longueur        *decimal.Decimal `json:"longueur"`
	Volume          *decimal.Decimal `json:"volume"`
	VIN             string           `json:"vin"`
	Agence          string           `json:"agence"`
	Actif           *bool            `json:"actif"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// idList accepts either a bare id array or an array of {"id": n} objects,
// optionally wrapped in a {"data": [...]} envelope.
type idList []int64

func (l *idList) UnmarshalJSON(data []byte) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if len(data) > 0 && data[0] == '{' {
		if err := json.Unmarshal(data, &env); err != nil {
			return err
		}
		data = env.Data
	}

	var bare []int64
	if err := json.Unmarshal(data, &bare); err == nil {
		*l = bare
		return nil
	}

	var objs []struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(data, &objs); err != nil {
		return fmt.Errorf("unrecognised id list: %w", err)
	}
	out := make([]int64, 0, len(objs))
	for _, o := range objs {
		out = append(out, o.ID)
	}
	*l = out
	return nil
}

// detailList accepts a bare array or a {"data": [...]} envelope
type detailList []VehicleDetail

func (l *detailList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		var env struct {
			Data []VehicleDetail `json:"data"`
		}
		if err := json.Unmarshal(data, &env); err != nil {
			return err
		}
		*l = env.Data
		return nil
	}
	var bare []VehicleDetail
	if err := json.Unmarshal(data, &bare); err != nil {
		return err
	}
	*l = bare
	return nil
}
