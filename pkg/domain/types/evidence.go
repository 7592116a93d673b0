package types

import "fmt"

// EvidenceStatus represents the lifecycle status of an evidence item.
// Transitions are driven by the host application; the engines only read it.
type EvidenceStatus string

const (
	EvidenceStatusComplete EvidenceStatus = "complete"
	EvidenceStatusPartial  EvidenceStatus = "partial"
	EvidenceStatusMissing  EvidenceStatus = "missing"
	EvidenceStatusExpired  EvidenceStatus = "expired"
)

// IsValid checks if the evidence status is valid
func (s EvidenceStatus) IsValid() bool {
	switch s {
	case EvidenceStatusComplete, EvidenceStatusPartial, EvidenceStatusMissing, EvidenceStatusExpired:
		return true
	default:
		return false
	}
}

// String returns the string representation of the evidence status
func (s EvidenceStatus) String() string {
	return string(s)
}

// ParseEvidenceStatus parses a string into an EvidenceStatus
func ParseEvidenceStatus(s string) (EvidenceStatus, error) {
	status := EvidenceStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid evidence status: %s", s)
	}
	return status, nil
}

// EvidenceType represents the kind of artifact an evidence item holds
type EvidenceType string

const (
	EvidenceTypeDocument    EvidenceType = "document"
	EvidenceTypeCertificate EvidenceType = "certificate"
	EvidenceTypeAudit       EvidenceType = "audit"
	EvidenceTypePolicy      EvidenceType = "policy"
	EvidenceTypeReport      EvidenceType = "report"
	EvidenceTypeData        EvidenceType = "data"
	EvidenceTypeOther       EvidenceType = "other"
)

// IsValid checks if the evidence type is valid
func (t EvidenceType) IsValid() bool {
	switch t {
	case EvidenceTypeDocument,
		EvidenceTypeCertificate,
		EvidenceTypeAudit,
		EvidenceTypePolicy,
		EvidenceTypeReport,
		EvidenceTypeData,
		EvidenceTypeOther:
		return true
	default:
		return false
	}
}

// String returns the string representation of the evidence type
func (t EvidenceType) String() string {
	return string(t)
}

// Normalize returns the type, treating empty as EvidenceTypeOther
func (t EvidenceType) Normalize() EvidenceType {
	if t == "" {
		return EvidenceTypeOther
	}
	return t
}

// Frequency represents how often an evidence requirement recurs
type Frequency string

const (
	FrequencyOneTime   Frequency = "one-time"
	FrequencyAnnual    Frequency = "annual"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyOngoing   Frequency = "ongoing"
)

// IsValid checks if the frequency is valid
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyOneTime, FrequencyAnnual, FrequencyQuarterly, FrequencyOngoing:
		return true
	default:
		return false
	}
}

// String returns the string representation of the frequency
func (f Frequency) String() string {
	return string(f)
}

// ParseFrequency parses a string into a Frequency
func ParseFrequency(s string) (Frequency, error) {
	freq := Frequency(s)
	if !freq.IsValid() {
		return "", fmt.Errorf("invalid frequency: %s", s)
	}
	return freq, nil
}
