package types

import "fmt"

// Applicability describes how a regulation applies to the organization
// relative to its supply chain position.
type Applicability string

const (
	ApplicabilityDirect     Applicability = "direct"
	ApplicabilityIndirect   Applicability = "indirect"
	ApplicabilityUpstream   Applicability = "upstream"
	ApplicabilityDownstream Applicability = "downstream"
)

// IsValid checks if the applicability is valid
func (a Applicability) IsValid() bool {
	switch a {
	case ApplicabilityDirect, ApplicabilityIndirect, ApplicabilityUpstream, ApplicabilityDownstream:
		return true
	default:
		return false
	}
}

// String returns the string representation of the applicability
func (a Applicability) String() string {
	return string(a)
}

// ParseApplicability parses a string into an Applicability
func ParseApplicability(s string) (Applicability, error) {
	a := Applicability(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid applicability: %s", s)
	}
	return a, nil
}
