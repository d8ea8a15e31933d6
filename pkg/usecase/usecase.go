package usecase

import (
	"github.com/psq-lab/psiquo/pkg/domain/interfaces"
	"github.com/psq-lab/psiquo/pkg/domain/model/config"
	"github.com/psq-lab/psiquo/pkg/service/scoring"
)

// UseCases bundles the application operations over the injected
// collaborators
type UseCases struct {
	repo     interfaces.Repository
	blob     interfaces.BlobStorage
	renderer interfaces.Renderer
	cfg      *config.AssessmentConfig
	scoring  *scoring.Engine

	companyLocks *keyedLocker
}

type Option func(*UseCases)

// WithBlobStorage sets the artifact store for evidence payloads and
// rendered reports
func WithBlobStorage(blob interfaces.BlobStorage) Option {
	return func(uc *UseCases) {
		uc.blob = blob
	}
}

// WithRenderer sets the report document renderer
func WithRenderer(renderer interfaces.Renderer) Option {
	return func(uc *UseCases) {
		uc.renderer = renderer
	}
}

// WithAssessmentConfig overrides the default scoring configuration
func WithAssessmentConfig(cfg *config.AssessmentConfig) Option {
	return func(uc *UseCases) {
		uc.cfg = cfg
		uc.scoring = scoring.New(cfg)
	}
}

// New creates a new UseCases instance
func New(repo interfaces.Repository, opts ...Option) *UseCases {
	cfg := config.DefaultAssessment()
	uc := &UseCases{
		repo:         repo,
		cfg:          cfg,
		scoring:      scoring.New(cfg),
		companyLocks: newKeyedLocker(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Repository exposes the underlying repository, used by the controller
// for token resolution
func (uc *UseCases) Repository() interfaces.Repository {
	return uc.repo
}

// AssessmentConfig returns the active scoring configuration
func (uc *UseCases) AssessmentConfig() *config.AssessmentConfig {
	return uc.cfg
}
