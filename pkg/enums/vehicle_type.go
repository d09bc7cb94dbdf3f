package enums

import (
	"fmt"
	"strings"
)

// VehicleType identifies which catalog segment a vehicle belongs to.
type VehicleType string

const (
	VehicleTypeCar    VehicleType = "CAR"
	VehicleTypeBike   VehicleType = "BIKE"
	VehicleTypeScooty VehicleType = "SCOOTY"
)

var validVehicleTypes = []VehicleType{
	VehicleTypeCar,
	VehicleTypeBike,
	VehicleTypeScooty,
}

// String implements fmt.Stringer.
func (v VehicleType) String() string {
	return string(v)
}

// IsValid reports whether the value is a known VehicleType.
func (v VehicleType) IsValid() bool {
	for _, candidate := range validVehicleTypes {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVehicleType converts raw input into a VehicleType.
func ParseVehicleType(value string) (VehicleType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validVehicleTypes {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid vehicle type %q", value)
}
