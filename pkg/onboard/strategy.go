// Package onboard implements the source-resolution and retrieval core: a
// registry of named retrieval strategies, the dispatch rules that match an
// opaque source URI to exactly one of them, and the strategy implementations
// for local files, URLs and Zenodo records.
package onboard

import (
	"context"

	"github.com/glorpus-work/kiara-onboarding/pkg/errors"
	"github.com/glorpus-work/kiara-onboarding/pkg/model"
)

// IDPrefix is the namespace of strategy identifiers.
const IDPrefix = "onboarding.file.from."

// Strategy is a stateless, named retrieval capability bound to one class of
// source URI. The accept predicates are pure and must never fail: they are
// probed with arbitrary strings during auto-detection. All I/O happens inside
// Retrieve and RetrieveBundle.
type Strategy interface {
	// ID returns the unique identifier, e.g. "onboarding.file.from.url".
	ID() string

	// AcceptsURI reports whether this strategy can retrieve the URI as a
	// single file, with a human-readable reason either way.
	AcceptsURI(uri string) (bool, string)

	// AcceptsBundleURI reports whether this strategy can retrieve the URI as
	// a bundle. Most strategies accept the same URIs for both modes.
	AcceptsBundleURI(uri string) (bool, string)

	// Retrieve materializes the URI as a single local file artifact.
	Retrieve(ctx context.Context, req RetrieveRequest) (*model.FileArtifact, error)

	// RetrieveBundle materializes the URI as a bundle artifact.
	RetrieveBundle(ctx context.Context, req RetrieveBundleRequest) (*model.BundleArtifact, error)
}

// NoBundleSupport provides the default RetrieveBundle for strategies that
// only handle single files.
type NoBundleSupport struct{}

// RetrieveBundle always fails with ErrBundleNotSupported.
func (NoBundleSupport) RetrieveBundle(_ context.Context, req RetrieveBundleRequest) (*model.BundleArtifact, error) {
	return nil, errors.Wrapf(errors.ErrBundleNotSupported, "source %q", req.URI)
}
