package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sustain-lab/esgradar/pkg/domain/interfaces"
	"github.com/sustain-lab/esgradar/pkg/domain/model"
	"github.com/sustain-lab/esgradar/pkg/engine/exposure"
)

// AssessmentUseCase manages radar configurations and runs exposure
// assessments against the loaded reference data.
type AssessmentUseCase struct {
	repo    interfaces.Repository
	refData *model.ReferenceData
	engine  *exposure.Engine
}

func NewAssessmentUseCase(repo interfaces.Repository, refData *model.ReferenceData) *AssessmentUseCase {
	return &AssessmentUseCase{
		repo:    repo,
		refData: refData,
		engine:  exposure.New(),
	}
}

// SaveConfig sanitizes, validates, and persists an organization's radar
// configuration. All validation problems are reported in one error.
func (uc *AssessmentUseCase) SaveConfig(ctx context.Context, orgID string, cfg *model.RiskRadarConfig) (*model.RiskRadarConfig, error) {
	if orgID == "" {
		return nil, goerr.New("organization ID is required")
	}
	if cfg == nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "config is required", goerr.V(OrgIDKey, orgID))
	}

	sanitized := cfg.Sanitize()
	if problems := sanitized.Validate(); len(problems) > 0 {
		return nil, goerr.Wrap(ErrInvalidConfig, strings.Join(problems, "; "),
			goerr.V(OrgIDKey, orgID))
	}

	saved, err := uc.repo.RadarConfig().Save(ctx, orgID, &sanitized)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save radar config", goerr.V(OrgIDKey, orgID))
	}

	return saved, nil
}

// GetConfig retrieves the organization's radar configuration
func (uc *AssessmentUseCase) GetConfig(ctx context.Context, orgID string) (*model.RiskRadarConfig, error) {
	cfg, err := uc.repo.RadarConfig().Get(ctx, orgID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get radar config", goerr.V(OrgIDKey, orgID))
	}

	return cfg, nil
}

// Run executes a full exposure assessment for the organization. The
// footprint is optional caller-supplied supply chain data.
func (uc *AssessmentUseCase) Run(ctx context.Context, orgID string, footprint *model.SupplyChainFootprint) (*model.RiskRadarOutput, error) {
	cfg, err := uc.repo.RadarConfig().Get(ctx, orgID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load radar config", goerr.V(OrgIDKey, orgID))
	}

	sector := uc.refData.Sector(cfg.SectorCode)
	geographies := uc.refData.GeographyList(cfg.Geographies)

	return uc.engine.Calculate(cfg, sector, geographies, footprint), nil
}

// Regulations lists the regulatory exposures applicable to the
// organization's configured sector and geographies.
func (uc *AssessmentUseCase) Regulations(ctx context.Context, orgID string) ([]model.RegulatoryExposure, error) {
	cfg, err := uc.repo.RadarConfig().Get(ctx, orgID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load radar config", goerr.V(OrgIDKey, orgID))
	}

	return uc.engine.MapRegulatoryExposure(cfg.SectorCode, cfg.Geographies, cfg.SupplyChainTiers), nil
}
