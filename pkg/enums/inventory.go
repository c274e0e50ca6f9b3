package enums

import "fmt"

// GlobalOwner marks house-owned inventory. Any other owner is a third party.
const GlobalOwner = "Global"

// InventoryStatus is the availability state of an advertising support.
type InventoryStatus string

const (
	InventoryStatusAvailable         InventoryStatus = "available"
	InventoryStatusReserved          InventoryStatus = "reserved"
	InventoryStatusMaintenance       InventoryStatus = "maintenance"
	InventoryStatusPendingThirdParty InventoryStatus = "pending_third_party"
)

var validInventoryStatuses = []InventoryStatus{
	InventoryStatusAvailable,
	InventoryStatusReserved,
	InventoryStatusMaintenance,
	InventoryStatusPendingThirdParty,
}

// String implements fmt.Stringer.
func (s InventoryStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known InventoryStatus.
func (s InventoryStatus) IsValid() bool {
	for _, candidate := range validInventoryStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Display returns the label shown on product sheets.
func (s InventoryStatus) Display() string {
	switch s {
	case InventoryStatusAvailable:
		return "Disponible"
	case InventoryStatusReserved:
		return "Reservado"
	case InventoryStatusMaintenance:
		return "En mantenimiento"
	default:
		return "Pendiente confirmación"
	}
}

// ShortDisplay is the compact label used in proposal summaries.
func (s InventoryStatus) ShortDisplay() string {
	switch s {
	case InventoryStatusAvailable:
		return "Disponible"
	case InventoryStatusReserved:
		return "Reservado"
	default:
		return "Pendiente"
	}
}

// ParseInventoryStatus converts raw input into an InventoryStatus.
func ParseInventoryStatus(value string) (InventoryStatus, error) {
	for _, candidate := range validInventoryStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inventory status %q", value)
}

// SupportType is the physical format of an advertising support.
type SupportType string

const (
	SupportTypeMedianera    SupportType = "Medianera"
	SupportTypeColumna      SupportType = "Columna"
	SupportTypeEspectacular SupportType = "Espectacular"
)

var validSupportTypes = []SupportType{
	SupportTypeMedianera,
	SupportTypeColumna,
	SupportTypeEspectacular,
}

// String implements fmt.Stringer.
func (t SupportType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known SupportType.
func (t SupportType) IsValid() bool {
	for _, candidate := range validSupportTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseSupportType converts raw input into a SupportType.
func ParseSupportType(value string) (SupportType, error) {
	for _, candidate := range validSupportTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid support type %q", value)
}

// Zone groups supports geographically.
type Zone string

const (
	ZoneGBANorte Zone = "GBA Norte"
	ZoneGBASur   Zone = "GBA Sur"
	ZoneGBAOeste Zone = "GBA Oeste"
	ZoneCABA     Zone = "CABA"
)

var validZones = []Zone{
	ZoneGBANorte,
	ZoneGBASur,
	ZoneGBAOeste,
	ZoneCABA,
}

// String implements fmt.Stringer.
func (z Zone) String() string {
	return string(z)
}

// IsValid reports whether the value is a known Zone.
func (z Zone) IsValid() bool {
	for _, candidate := range validZones {
		if candidate == z {
			return true
		}
	}
	return false
}

// ParseZone converts raw input into a Zone.
func ParseZone(value string) (Zone, error) {
	for _, candidate := range validZones {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid zone %q", value)
}
