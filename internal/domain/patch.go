package domain

// Apply copies the set fields of p onto m
func (m *DriverManual) Apply(p DriverManualPatch) {
	if p.Matricule != nil {
		m.Matricule = *p.Matricule
	}
	if p.Permits != nil {
		m.Permits = p.Permits
	}
	if p.Certifications != nil {
		m.Certifications = p.Certifications
	}
	if p.Agency != nil {
		m.Agency = *p.Agency
	}
	if p.Zone != nil {
		m.Zone = *p.Zone
	}
	if p.Status != nil {
		m.Status = *p.Status
		// clearing an unavailability by hand also clears its reason
		if *p.Status != DriverStatusUnavailable && p.UnavailabilityNote == nil {
			m.UnavailabilityNote = ""
		}
	}
	if p.UnavailabilityNote != nil {
		m.UnavailabilityNote = *p.UnavailabilityNote
	}
}

// Empty reports whether the patch sets nothing
func (p DriverManualPatch) Empty() bool {
	return p.Matricule == nil && p.Permits == nil && p.Certifications == nil &&
		p.Agency == nil && p.Zone == nil && p.Status == nil && p.UnavailabilityNote == nil
}

// Apply copies the set fields of p onto m
func (m *VehicleManual) Apply(p VehicleManualPatch) {
	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.TrailerTypes != nil {
		m.TrailerTypes = p.TrailerTypes
	}
	if p.Equipment != nil {
		m.Equipment = p.Equipment
	}
	if p.Location != nil {
		m.Location = *p.Location
	}
	if p.NextMaintenanceAt != nil {
		m.NextMaintenanceAt = p.NextMaintenanceAt
	}
	if p.NextInspectionAt != nil {
		m.NextInspectionAt = p.NextInspectionAt
	}
	if p.AssignedDriverID != nil {
		if *p.AssignedDriverID == "" {
			m.AssignedDriverID = nil
		} else {
			m.AssignedDriverID = p.AssignedDriverID
		}
	}
}

// Empty reports whether the patch sets nothing
func (p VehicleManualPatch) Empty() bool {
	return p.Status == nil && p.TrailerTypes == nil && p.Equipment == nil && p.Location == nil &&
		p.NextMaintenanceAt == nil && p.NextInspectionAt == nil && p.AssignedDriverID == nil
}
