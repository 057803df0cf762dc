package onboard

import (
	"context"

	"github.com/glorpus-work/kiara-onboarding/internal/logger"
	"github.com/glorpus-work/kiara-onboarding/pkg/model"
)

// Onboarder is the high-level entry point: it resolves a request to a
// strategy through the registry and runs the retrieval.
type Onboarder struct {
	registry *Registry
}

// New creates an Onboarder over the given registry.
func New(registry *Registry) *Onboarder {
	return &Onboarder{registry: registry}
}

// Request describes one onboarding operation. OnboardType optionally pins a
// strategy by identifier (full or suffix form); when empty the registry
// auto-detects from the source URI.
type Request struct {
	Source         string
	FileName       string
	OnboardType    string
	AttachMetadata bool
	ImportConfig   model.ImportConfig
}

// OnboardFile retrieves a single file artifact from the request source.
func (o *Onboarder) OnboardFile(ctx context.Context, req Request) (*model.FileArtifact, error) {
	strategy, err := o.registry.Select(req.Source, req.OnboardType, false)
	if err != nil {
		return nil, err
	}
	logger.Debug("onboarding file", logger.Fields{"source": req.Source, "strategy": strategy.ID()})
	return strategy.Retrieve(ctx, RetrieveRequest{
		URI:            req.Source,
		FileName:       req.FileName,
		AttachMetadata: req.AttachMetadata,
	})
}

// OnboardBundle retrieves a bundle artifact from the request source.
func (o *Onboarder) OnboardBundle(ctx context.Context, req Request) (*model.BundleArtifact, error) {
	strategy, err := o.registry.Select(req.Source, req.OnboardType, true)
	if err != nil {
		return nil, err
	}
	logger.Debug("onboarding bundle", logger.Fields{"source": req.Source, "strategy": strategy.ID()})
	return strategy.RetrieveBundle(ctx, RetrieveBundleRequest{
		URI:            req.Source,
		ImportConfig:   req.ImportConfig,
		AttachMetadata: req.AttachMetadata,
	})
}

// Strategies returns the sorted identifiers of all available strategies.
func (o *Onboarder) Strategies() []string {
	return o.registry.IDs()
}
