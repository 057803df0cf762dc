//go:generate mockgen -destination=mocks/onboard.go . Downloader,ArchiveExtractor,RecordResolver

package onboard

import (
	"context"

	"github.com/glorpus-work/kiara-onboarding/pkg/download"
	"github.com/glorpus-work/kiara-onboarding/pkg/model"
	"github.com/glorpus-work/kiara-onboarding/pkg/zenodo"
)

// Downloader is the subset of the download manager used by strategies.
type Downloader interface {
	Fetch(ctx context.Context, item download.Item, opts download.Options) (*download.Result, error)
}

// ArchiveExtractor is the subset of the archive manager used by strategies.
type ArchiveExtractor interface {
	ExtractAll(ctx context.Context, archivePath, destDir string) error
}

// RecordResolver resolves a DOI to its Zenodo record payload.
type RecordResolver interface {
	FindRecordByDOI(ctx context.Context, doi zenodo.DOI) (*zenodo.Record, error)
}

// RetrieveRequest carries the inputs of a single-file retrieval.
type RetrieveRequest struct {
	URI            string
	FileName       string // optional display-name override
	AttachMetadata bool
}

// RetrieveBundleRequest carries the inputs of a bundle retrieval.
type RetrieveBundleRequest struct {
	URI            string
	ImportConfig   model.ImportConfig
	AttachMetadata bool
}

// Dependencies carries the shared collaborators the default strategies are
// built from. Strategies hold no per-call state, so one set of collaborators
// serves unlimited concurrent retrievals.
type Dependencies struct {
	Downloader  Downloader
	Archive     ArchiveExtractor
	Records     RecordResolver
	ScratchRoot string // base directory for per-call scratch dirs; empty means the OS temp dir
}
