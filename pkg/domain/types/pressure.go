package types

import "fmt"

// PressureLevel represents how much regulatory pressure a single regulation
// exerts on the organization.
type PressureLevel string

const (
	PressureCritical PressureLevel = "critical"
	PressureHigh     PressureLevel = "high"
	PressureMedium   PressureLevel = "medium"
	PressureLow      PressureLevel = "low"
)

// IsValid checks if the pressure level is valid
func (p PressureLevel) IsValid() bool {
	switch p {
	case PressureCritical, PressureHigh, PressureMedium, PressureLow:
		return true
	default:
		return false
	}
}

// String returns the string representation of the pressure level
func (p PressureLevel) String() string {
	return string(p)
}

// Severity maps the pressure level onto the signal severity scale.
// This is the only path that can produce a critical signal.
func (p PressureLevel) Severity() SignalSeverity {
	switch p {
	case PressureCritical:
		return SignalSeverityCritical
	case PressureHigh:
		return SignalSeverityHigh
	case PressureMedium:
		return SignalSeverityMedium
	default:
		return SignalSeverityLow
	}
}

// ParsePressureLevel parses a string into a PressureLevel
func ParsePressureLevel(s string) (PressureLevel, error) {
	level := PressureLevel(s)
	if !level.IsValid() {
		return "", fmt.Errorf("invalid pressure level: %s", s)
	}
	return level, nil
}
