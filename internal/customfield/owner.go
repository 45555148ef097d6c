package customfield

import (
	"strings"

	"github.com/osse101/FleetSync_Go/internal/hr"
	"github.com/osse101/FleetSync_Go/internal/utils"
)

// OwnerKind is the closed set of things a custom-field value can belong to
type OwnerKind int

const (
	OwnerUnknown OwnerKind = iota
	OwnerEmployee
	OwnerContractVersion
	OwnerCustomResourceValue
	OwnerDocument
)

func (k OwnerKind) String() string {
	switch k {
	case OwnerEmployee:
		return "employee"
	case OwnerContractVersion:
		return "contract_version"
	case OwnerCustomResourceValue:
		return "custom_resource_value"
	case OwnerDocument:
		return "document"
	}
	return "unknown"
}

// ParseOwnerKind classifies an upstream valuable_type tag such as
// "Employees::Employee" or "Contracts::ContractVersion".
func ParseOwnerKind(tag string) OwnerKind {
	folded := strings.NewReplacer("_", "", "::", "", " ", "").Replace(utils.FoldKey(tag))
	switch {
	case folded == "":
		return OwnerUnknown
	case strings.Contains(folded, tagDocument):
		return OwnerDocument
	case strings.Contains(folded, tagContract):
		return OwnerContractVersion
	case strings.Contains(folded, tagCustomResource):
		return OwnerCustomResourceValue
	case strings.Contains(folded, tagEmployee):
		return OwnerEmployee
	}
	return OwnerUnknown
}

// Owners maps secondary entities back to the employee they belong to
type Owners struct {
	contractVersions     map[int]int
	customResourceValues map[int]int
}

// BuildOwners indexes contract versions and custom-resource values by id
func BuildOwners(cvs []hr.ContractVersion, crvs []hr.CustomResourceValue) Owners {
	o := Owners{
		contractVersions:     make(map[int]int, len(cvs)),
		customResourceValues: make(map[int]int, len(crvs)),
	}
	for _, cv := range cvs {
		o.contractVersions[cv.ID] = cv.EmployeeID
	}
	for _, crv := range crvs {
		if crv.EmployeeID != nil {
			o.customResourceValues[crv.ID] = *crv.EmployeeID
		}
	}
	return o
}

// EmployeeOf resolves the employee owning a value. Document values are never
// attributed; unknown tags treat the raw id as an employee id.
func (o Owners) EmployeeOf(v hr.FieldValue) (int, bool) {
	switch ParseOwnerKind(v.ValuableType) {
	case OwnerEmployee:
		return v.ValuableID, true
	case OwnerContractVersion:
		id, ok := o.contractVersions[v.ValuableID]
		return id, ok
	case OwnerCustomResourceValue:
		id, ok := o.customResourceValues[v.ValuableID]
		return id, ok
	case OwnerDocument:
		return 0, false
	default:
		return v.ValuableID, true
	}
}
