package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound     = goerr.New("configuration file not found")
	ErrInvalidConfig      = goerr.New("invalid configuration")
	ErrDuplicateSector    = goerr.New("duplicate sector code")
	ErrDuplicateGeography = goerr.New("duplicate geography code")
	ErrDuplicateReqID     = goerr.New("duplicate requirement ID")
	ErrMissingCode        = goerr.New("code is required")
)

// Context keys for error values
const (
	ConfigPathKey     = "config_path"
	SectorCodeKey     = "sector_code"
	GeographyCodeKey  = "geography_code"
	RequirementIDKey  = "requirement_id"
	RegulationNameKey = "regulation_name"
)
