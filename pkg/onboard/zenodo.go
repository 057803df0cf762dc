package onboard

import (
	"context"
	"os"
	"path"
	"strings"

	"github.com/glorpus-work/kiara-onboarding/pkg/download"
	"github.com/glorpus-work/kiara-onboarding/pkg/errors"
	"github.com/glorpus-work/kiara-onboarding/pkg/fsutil"
	"github.com/glorpus-work/kiara-onboarding/pkg/model"
	"github.com/glorpus-work/kiara-onboarding/pkg/zenodo"
)

// ZenodoStrategy onboards files from Zenodo records addressed by DOI.
// Every download is verified against the md5 checksum published in the
// record before an artifact is built from it.
type ZenodoStrategy struct {
	records     RecordResolver
	dl          Downloader
	archive     ArchiveExtractor
	scratchRoot string
}

// NewZenodoStrategy creates the Zenodo strategy.
func NewZenodoStrategy(records RecordResolver, dl Downloader, archive ArchiveExtractor, scratchRoot string) *ZenodoStrategy {
	return &ZenodoStrategy{records: records, dl: dl, archive: archive, scratchRoot: scratchRoot}
}

// ID implements Strategy.
func (s *ZenodoStrategy) ID() string {
	return IDPrefix + "zenodo"
}

// AcceptsURI reports true iff the URI parses as a Zenodo DOI reference.
func (s *ZenodoStrategy) AcceptsURI(uri string) (bool, string) {
	if zenodo.IsZenodoURI(uri) {
		return true, "source is a Zenodo DOI"
	}
	return false, "source is not a Zenodo DOI"
}

// AcceptsBundleURI accepts the same URIs as single-file retrieval; a DOI
// without a file path selects the whole record as the bundle.
func (s *ZenodoStrategy) AcceptsBundleURI(uri string) (bool, string) {
	return s.AcceptsURI(uri)
}

// Retrieve downloads a single named file from a Zenodo record. The DOI must
// carry a file path; use bundle retrieval for whole records.
func (s *ZenodoStrategy) Retrieve(ctx context.Context, req RetrieveRequest) (*model.FileArtifact, error) {
	doi, err := zenodo.ParseSourceURI(req.URI)
	if err != nil {
		return nil, err
	}
	if doi.FilePath == "" {
		return nil, errors.Wrapf(errors.ErrDOIParse, "DOI %q does not reference a single file; append /<file-path> or onboard the record as a bundle", doi.String())
	}

	record, file, err := s.resolveFile(ctx, doi)
	if err != nil {
		return nil, err
	}

	dir, err := fsutil.NewScratchDir(s.scratchRoot)
	if err != nil {
		return nil, errors.Wrap(err, "could not create scratch dir")
	}

	filename := req.FileName
	if filename == "" {
		filename = path.Base(doi.FilePath)
	}

	res, err := s.fetchRecordFile(ctx, file, filename, dir)
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
		artifact.Metadata[model.ZenodoRecordMetadataKey] = record.Raw
	}
	return artifact, nil
}

// RetrieveBundle onboards a Zenodo record as a bundle. Without a file path
// in the DOI every file of the record is downloaded; with one, the single
// file is downloaded and unpacked as an archive.
func (s *ZenodoStrategy) RetrieveBundle(ctx context.Context, req RetrieveBundleRequest) (*model.BundleArtifact, error) {
	doi, err := zenodo.ParseSourceURI(req.URI)
	if err != nil {
		return nil, err
	}

	if doi.FilePath == "" {
		return s.retrieveRecordBundle(ctx, doi, req)
	}
	return s.retrieveArchiveBundle(ctx, doi, req)
}

// retrieveRecordBundle downloads every file of the record into one scratch
// directory. A failure on any file discards the partially assembled
// directory so no incomplete bundle escapes.
func (s *ZenodoStrategy) retrieveRecordBundle(ctx context.Context, doi zenodo.DOI, req RetrieveBundleRequest) (*model.BundleArtifact, error) {
	record, err := s.records.FindRecordByDOI(ctx, doi)
	if err != nil {
		return nil, err
	}

	dir, err := fsutil.NewScratchDir(s.scratchRoot)
	if err != nil {
		return nil, errors.Wrap(err, "could not create scratch dir")
	}

	for i := range record.Files {
		file := &record.Files[i]
		if _, err := s.fetchRecordFile(ctx, file, file.Key, dir); err != nil {
			_ = os.RemoveAll(dir)
			return nil, err
		}
	}

	bundle, err := model.ImportFolder(dir, req.ImportConfig)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}

	if req.AttachMetadata {
		bundle.Metadata = map[string]interface{}{model.ZenodoRecordMetadataKey: record.Raw}
		bundle.MetadataSchema = model.DownloadBundleMetadataSchema
	}
	return bundle, nil
}

// retrieveArchiveBundle downloads the single file named by the DOI, verifies
// it and unpacks it into a fresh scratch directory for import.
func (s *ZenodoStrategy) retrieveArchiveBundle(ctx context.Context, doi zenodo.DOI, req RetrieveBundleRequest) (*model.BundleArtifact, error) {
	record, file, err := s.resolveFile(ctx, doi)
	if err != nil {
		return nil, err
	}

	dlDir, err := fsutil.NewScratchDir(s.scratchRoot)
	if err != nil {
		return nil, errors.Wrap(err, "could not create scratch dir")
	}
	defer func() { _ = os.RemoveAll(dlDir) }()

	res, err := s.fetchRecordFile(ctx, file, path.Base(doi.FilePath), dlDir)
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
		bundle.Metadata = map[string]interface{}{model.ZenodoRecordMetadataKey: record.Raw}
		bundle.MetadataSchema = model.DownloadBundleMetadataSchema
	}
	return bundle, nil
}

func (s *ZenodoStrategy) resolveFile(ctx context.Context, doi zenodo.DOI) (*zenodo.Record, *zenodo.File, error) {
	record, err := s.records.FindRecordByDOI(ctx, doi)
	if err != nil {
		return nil, nil, err
	}
	file, available := record.FindFile(doi.FilePath)
	if file == nil {
		return nil, nil, errors.Wrapf(errors.ErrFileNotInRecord,
			"file %q not found in record %s (available: %s)",
			doi.FilePath, doi.RecordID, strings.Join(available, ", "))
	}
	return record, file, nil
}

// fetchRecordFile downloads one record file with its published md5 checksum
// as the integrity gate.
func (s *ZenodoStrategy) fetchRecordFile(ctx context.Context, file *zenodo.File, filename, dir string) (*download.Result, error) {
	downloadURL, err := file.DownloadURL()
	if err != nil {
		return nil, err
	}
	return s.dl.Fetch(ctx, download.Item{
		URL:      downloadURL,
		Filename: filename,
		Checksum: file.MD5(),
	}, download.Options{Dir: dir})
}
