package onboard

import (
	"context"
	"os"
	"path/filepath"

	"github.com/glorpus-work/kiara-onboarding/pkg/errors"
	"github.com/glorpus-work/kiara-onboarding/pkg/model"
)

// LocalFileStrategy resolves filesystem paths. Single-file retrieval requires
// a regular file; bundle retrieval requires a directory.
type LocalFileStrategy struct{}

// NewLocalFileStrategy creates the local-file strategy.
func NewLocalFileStrategy() *LocalFileStrategy {
	return &LocalFileStrategy{}
}

// ID implements Strategy.
func (s *LocalFileStrategy) ID() string {
	return IDPrefix + "local_file"
}

// AcceptsURI reports true iff the path exists and is a regular file.
func (s *LocalFileStrategy) AcceptsURI(uri string) (bool, string) {
	abs, err := filepath.Abs(uri)
	if err != nil {
		return false, "local path cannot be resolved"
	}
	if info, err := os.Stat(abs); err == nil && info.Mode().IsRegular() {
		return true, "local file exists and is a file"
	}
	return false, "local file does not exist or is not a file"
}

// AcceptsBundleURI reports true iff the path exists and is a directory.
func (s *LocalFileStrategy) AcceptsBundleURI(uri string) (bool, string) {
	abs, err := filepath.Abs(uri)
	if err != nil {
		return false, "local path cannot be resolved"
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return true, "local folder exists and is a folder"
	}
	return false, "local folder does not exist or is not a folder"
}

// Retrieve loads the file at the given path, with no network dependency.
func (s *LocalFileStrategy) Retrieve(_ context.Context, req RetrieveRequest) (*model.FileArtifact, error) {
	abs, err := filepath.Abs(req.URI)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidPath, "can't create file from path %q", req.URI)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrPathNotFound, "can't create file from path %q", req.URI)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.Wrapf(errors.ErrNotAFile, "can't create file from path %q", req.URI)
	}

	return model.LoadFile(abs, req.FileName)
}

// RetrieveBundle imports every file under the directory subject to the import
// configuration.
func (s *LocalFileStrategy) RetrieveBundle(_ context.Context, req RetrieveBundleRequest) (*model.BundleArtifact, error) {
	abs, err := filepath.Abs(req.URI)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidPath, "can't import folder %q", req.URI)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrPathNotFound, "can't import folder %q", req.URI)
	}
	if !info.IsDir() {
		return nil, errors.Wrapf(errors.ErrNotADirectory, "can't import folder %q", req.URI)
	}

	return model.ImportFolder(abs, req.ImportConfig)
}
