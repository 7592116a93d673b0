package types

import "fmt"

// FactorSeverity is the three-level scale used by authored risk factors.
// It deliberately has no "critical" value: only the regulatory pressure path
// can escalate a derived signal to critical.
type FactorSeverity string

const (
	FactorSeverityLow    FactorSeverity = "low"
	FactorSeverityMedium FactorSeverity = "medium"
	FactorSeverityHigh   FactorSeverity = "high"
)

// IsValid checks if the factor severity is valid
func (s FactorSeverity) IsValid() bool {
	switch s {
	case FactorSeverityLow, FactorSeverityMedium, FactorSeverityHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation of the factor severity
func (s FactorSeverity) String() string {
	return string(s)
}

// Signal widens the factor severity onto the four-level signal scale.
// The mapping is identity on the shared values; "critical" is unreachable
// from this path.
func (s FactorSeverity) Signal() SignalSeverity {
	switch s {
	case FactorSeverityHigh:
		return SignalSeverityHigh
	case FactorSeverityMedium:
		return SignalSeverityMedium
	default:
		return SignalSeverityLow
	}
}

// ParseFactorSeverity parses a string into a FactorSeverity
func ParseFactorSeverity(s string) (FactorSeverity, error) {
	sev := FactorSeverity(s)
	if !sev.IsValid() {
		return "", fmt.Errorf("invalid factor severity: %s", s)
	}
	return sev, nil
}

// SignalSeverity is the four-level scale carried by derived findings
// (exposure signals and evidence gaps).
type SignalSeverity string

const (
	SignalSeverityCritical SignalSeverity = "critical"
	SignalSeverityHigh     SignalSeverity = "high"
	SignalSeverityMedium   SignalSeverity = "medium"
	SignalSeverityLow      SignalSeverity = "low"
)

// IsValid checks if the signal severity is valid
func (s SignalSeverity) IsValid() bool {
	switch s {
	case SignalSeverityCritical, SignalSeverityHigh, SignalSeverityMedium, SignalSeverityLow:
		return true
	default:
		return false
	}
}

// String returns the string representation of the signal severity
func (s SignalSeverity) String() string {
	return string(s)
}

// Rank returns the sort rank of the severity. Lower rank means more urgent:
// critical=0, high=1, medium=2, low=3. Unknown values rank last.
// Every ordered listing in this codebase sorts ascending by this rank, so
// "most urgent first" is one convention shared by both engines.
func (s SignalSeverity) Rank() int {
	switch s {
	case SignalSeverityCritical:
		return 0
	case SignalSeverityHigh:
		return 1
	case SignalSeverityMedium:
		return 2
	case SignalSeverityLow:
		return 3
	default:
		return 4
	}
}

// ParseSignalSeverity parses a string into a SignalSeverity
func ParseSignalSeverity(s string) (SignalSeverity, error) {
	sev := SignalSeverity(s)
	if !sev.IsValid() {
		return "", fmt.Errorf("invalid signal severity: %s", s)
	}
	return sev, nil
}
