package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer
var (
	ErrInvalidConfig   = goerr.New("invalid radar configuration")
	ErrInvalidEvidence = goerr.New("invalid evidence item")
)

// Context keys for error values
const (
	OrgIDKey      = "organization_id"
	EvidenceIDKey = "evidence_id"
)
