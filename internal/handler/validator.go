package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/FleetSync_Go/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	validate     *Validator
	validateOnce sync.Once
)

// InitValidator builds the shared validator with the domain tags registered
func InitValidator() {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(jsonFieldName)

		_ = v.RegisterValidation("driver_status", validateDriverStatus)
		_ = v.RegisterValidation("vehicle_status", validateVehicleStatus)
		_ = v.RegisterValidation("entity_type", validateEntityType)

		validate = &Validator{validate: v}
	})
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	InitValidator()
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// ValidateVar validates a single value against a tag expression
func (v *Validator) ValidateVar(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

// jsonFieldName reports fields under their JSON name
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// FormatValidationError formats validation errors into a map keyed by JSON field name
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "driver_status":
			errs[field] = "Must be one of: disponible, indisponible, occupe"
		case "vehicle_status":
			errs[field] = "Must be one of: disponible, en_service, maintenance, hors_service"
		case "entity_type":
			errs[field] = "Must be one of: drivers, vehicles, all"
		case "uuid", "len=0|uuid":
			errs[field] = "Must be a UUID"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func validateDriverStatus(fl validator.FieldLevel) bool {
	return domain.DriverStatus(fl.Field().String()).Valid()
}

func validateVehicleStatus(fl validator.FieldLevel) bool {
	return domain.VehicleStatus(fl.Field().String()).Valid()
}

func validateEntityType(fl validator.FieldLevel) bool {
	return domain.EntityType(fl.Field().String()).Valid()
}
