package types

import "fmt"

// Pillar represents one assessment dimension: the three ESG pillars plus the
// regulatory axis derived from applicable regulations.
type Pillar string

const (
	PillarEnvironmental Pillar = "environmental"
	PillarSocial        Pillar = "social"
	PillarGovernance    Pillar = "governance"
	PillarRegulatory    Pillar = "regulatory"
)

// ESGPillars returns the three pillars that carry sector risk factors.
// The regulatory pillar is derived, not authored.
func ESGPillars() []Pillar {
	return []Pillar{
		PillarEnvironmental,
		PillarSocial,
		PillarGovernance,
	}
}

// AllPillars returns every pillar including the derived regulatory axis
func AllPillars() []Pillar {
	return append(ESGPillars(), PillarRegulatory)
}

// IsValid checks if the pillar is valid
func (p Pillar) IsValid() bool {
	switch p {
	case PillarEnvironmental,
		PillarSocial,
		PillarGovernance,
		PillarRegulatory:
		return true
	default:
		return false
	}
}

// String returns the string representation of the pillar
func (p Pillar) String() string {
	return string(p)
}

// ParsePillar parses a string into a Pillar
func ParsePillar(s string) (Pillar, error) {
	pillar := Pillar(s)
	if !pillar.IsValid() {
		return "", fmt.Errorf("invalid pillar: %s", s)
	}
	return pillar, nil
}
