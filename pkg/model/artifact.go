// Package model provides the artifact and provenance types produced by the
// onboarding strategies.
package model

import (
	"os"
	"path/filepath"
	"time"

	"github.com/glorpus-work/kiara-onboarding/pkg/errors"
)

// FileArtifact represents one onboarded file. It owns a path to materialized
// local content plus an optional metadata mapping. Ownership (including cleanup
// of any backing temporary storage) passes to the caller once returned.
type FileArtifact struct {
	Path           string                 `json:"path"`
	FileName       string                 `json:"file_name"`
	Size           int64                  `json:"size"`
	ModTime        time.Time              `json:"mod_time"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	MetadataSchema string                 `json:"metadata_schema,omitempty"`
}

// BundleArtifact represents a directory of onboarded files, filtered and
// optionally flattened according to an import configuration.
type BundleArtifact struct {
	Path           string                 `json:"path"`
	ImportConfig   ImportConfig           `json:"import_config"`
	Files          []string               `json:"files"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	MetadataSchema string                 `json:"metadata_schema,omitempty"`
}

// LoadFile builds a FileArtifact from an existing local file. The display name
// defaults to the path's base name when fileName is empty.
func LoadFile(path, fileName string) (*FileArtifact, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidPath, "cannot resolve %q", path)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrPathNotFound, "can't create file from path %q", path)
		}
		return nil, errors.Wrapf(err, "failed to stat %q", path)
	}
	if info.IsDir() {
		return nil, errors.Wrapf(errors.ErrNotAFile, "can't create file from path %q", path)
	}

	if fileName == "" {
		fileName = filepath.Base(absPath)
	}

	return &FileArtifact{
		Path:     absPath,
		FileName: fileName,
		Size:     info.Size(),
		ModTime:  info.ModTime(),
	}, nil
}
