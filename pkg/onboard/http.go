package onboard

import (
	"context"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/glorpus-work/kiara-onboarding/pkg/download"
	"github.com/glorpus-work/kiara-onboarding/pkg/errors"
	"github.com/glorpus-work/kiara-onboarding/pkg/fsutil"
	"github.com/glorpus-work/kiara-onboarding/pkg/model"
)

// HTTPStrategy streams http(s) URLs to local scratch storage. Bundle
// retrieval additionally unpacks the payload as an archive.
type HTTPStrategy struct {
	dl          Downloader
	archive     ArchiveExtractor
	scratchRoot string
}

// NewHTTPStrategy creates the URL strategy.
func NewHTTPStrategy(dl Downloader, archive ArchiveExtractor, scratchRoot string) *HTTPStrategy {
	return &HTTPStrategy{dl: dl, archive: archive, scratchRoot: scratchRoot}
}

// ID implements Strategy.
func (s *HTTPStrategy) ID() string {
	return IDPrefix + "url"
}

// AcceptsURI reports true iff the URI uses the http or https scheme.
func (s *HTTPStrategy) AcceptsURI(uri string) (bool, string) {
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return true, "url is valid (starts with http or https)"
	}
	return false, "url is not valid (does not start with http or https)"
}

// AcceptsBundleURI accepts the same URIs as single-file retrieval.
func (s *HTTPStrategy) AcceptsBundleURI(uri string) (bool, string) {
	return s.AcceptsURI(uri)
}

// Retrieve streams the URL to a scratch file. The display name defaults to
// the final path segment of the URL.
func (s *HTTPStrategy) Retrieve(ctx context.Context, req RetrieveRequest) (*model.FileArtifact, error) {
	sourceURL, err := url.Parse(req.URI)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDownloadFailed, "invalid URL %q", req.URI)
	}

	dir, err := fsutil.NewScratchDir(s.scratchRoot)
	if err != nil {
		return nil, errors.Wrap(err, "could not create scratch dir")
	}

	res, err := s.dl.Fetch(ctx, download.Item{URL: sourceURL, Filename: req.FileName}, download.Options{Dir: dir})
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}

	artifact, err := model.LoadFile(res.Path, req.FileName)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}

	if req.AttachMetadata {
		attachFileMetadata(artifact, req.URI, res)
	}
	return artifact, nil
}

// RetrieveBundle streams the URL, unpacks it with extraction fallback into a
// fresh scratch directory and imports that directory as a bundle.
func (s *HTTPStrategy) RetrieveBundle(ctx context.Context, req RetrieveBundleRequest) (*model.BundleArtifact, error) {
	sourceURL, err := url.Parse(req.URI)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDownloadFailed, "invalid URL %q", req.URI)
	}

	dlDir, err := fsutil.NewScratchDir(s.scratchRoot)
	if err != nil {
		return nil, errors.Wrap(err, "could not create scratch dir")
	}
	// The downloaded archive is only an intermediate; the bundle owns outDir.
	defer func() { _ = os.RemoveAll(dlDir) }()

	res, err := s.dl.Fetch(ctx, download.Item{URL: sourceURL}, download.Options{Dir: dlDir})
	if err != nil {
		return nil, err
	}

	outDir, err := fsutil.NewScratchDir(s.scratchRoot)
	if err != nil {
		return nil, errors.Wrap(err, "could not create scratch dir")
	}

	if err := s.archive.ExtractAll(ctx, res.Path, outDir); err != nil {
		_ = os.RemoveAll(outDir)
		return nil, err
	}

	bundle, err := model.ImportFolder(outDir, req.ImportConfig)
	if err != nil {
		_ = os.RemoveAll(outDir)
		return nil, err
	}

	if req.AttachMetadata {
		attachBundleMetadata(bundle, req.URI, res, req.ImportConfig)
	}
	return bundle, nil
}

// attachFileMetadata wraps the captured redirect-chain headers and request
// timestamp into a provenance record on the artifact.
func attachFileMetadata(artifact *model.FileArtifact, sourceURL string, res *download.Result) {
	meta := model.DownloadMetadata{
		URL:             sourceURL,
		ResponseHeaders: res.Headers,
		RequestTime:     res.RequestTime.UTC().Format(time.RFC3339),
	}
	artifact.Metadata = meta.AsMap()
	artifact.MetadataSchema = model.DownloadMetadataSchema
}

func attachBundleMetadata(bundle *model.BundleArtifact, sourceURL string, res *download.Result, cfg model.ImportConfig) {
	meta := model.DownloadBundleMetadata{
		DownloadMetadata: model.DownloadMetadata{
			URL:             sourceURL,
			ResponseHeaders: res.Headers,
			RequestTime:     res.RequestTime.UTC().Format(time.RFC3339),
		},
		ImportConfig: cfg,
	}
	bundle.Metadata = meta.AsMap()
	bundle.MetadataSchema = model.DownloadBundleMetadataSchema
}
