package usecase

import (
	"github.com/sustain-lab/esgradar/pkg/domain/interfaces"
	"github.com/sustain-lab/esgradar/pkg/domain/model"
	"github.com/sustain-lab/esgradar/pkg/service/notify"
)

type UseCases struct {
	repo     interfaces.Repository
	refData  *model.ReferenceData
	notifier notify.Service

	Assessment *AssessmentUseCase
	Evidence   *EvidenceUseCase
}

type Option func(*UseCases)

// WithReferenceData supplies the authored sector/geography/requirement
// tables. Without it every assessment degrades to zero scores.
func WithReferenceData(data *model.ReferenceData) Option {
	return func(uc *UseCases) {
		uc.refData = data
	}
}

// WithNotifier enables gap alerts. Without it reviews are silent.
func WithNotifier(svc notify.Service) Option {
	return func(uc *UseCases) {
		uc.notifier = svc
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Assessment = NewAssessmentUseCase(repo, uc.refData)
	uc.Evidence = NewEvidenceUseCase(repo, uc.refData, uc.notifier)

	return uc
}
