package model

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/glorpus-work/kiara-onboarding/pkg/errors"
	"github.com/glorpus-work/kiara-onboarding/pkg/fsutil"
)

// ImportConfig describes how files under a source directory are filtered and
// flattened when imported as a bundle. Patterns are matched against a file's
// base name, either as a glob pattern or as a plain suffix (e.g. ".csv").
type ImportConfig struct {
	IncludeFiles []string `json:"include_files,omitempty" yaml:"include_files,omitempty"`
	ExcludeFiles []string `json:"exclude_files,omitempty" yaml:"exclude_files,omitempty"`
	ExcludeDirs  []string `json:"exclude_dirs,omitempty" yaml:"exclude_dirs,omitempty"`
	Flatten      bool     `json:"flatten,omitempty" yaml:"flatten,omitempty"`
}

// IncludesFile reports whether a file (identified by its slash-separated
// relative path) passes the include/exclude rules. Excludes win over includes;
// an empty include list admits everything.
func (c ImportConfig) IncludesFile(relPath string) bool {
	base := path.Base(relPath)
	for _, pattern := range c.ExcludeFiles {
		if matchPattern(pattern, base) {
			return false
		}
	}
	if len(c.IncludeFiles) == 0 {
		return true
	}
	for _, pattern := range c.IncludeFiles {
		if matchPattern(pattern, base) {
			return true
		}
	}
	return false
}

// ExcludesDir reports whether a directory name is excluded from traversal.
func (c ImportConfig) ExcludesDir(name string) bool {
	for _, pattern := range c.ExcludeDirs {
		if matchPattern(pattern, name) {
			return true
		}
	}
	return false
}

func matchPattern(pattern, name string) bool {
	if ok, err := path.Match(pattern, name); err == nil && ok {
		return true
	}
	return strings.HasSuffix(name, pattern)
}

// ImportFolder imports every file under source subject to the import
// configuration and returns the resulting bundle. Without flattening the
// bundle references the source directory in place; with flattening the matched
// files are copied into a fresh temporary directory whose cleanup is the
// caller's responsibility (name collisions resolve last-writer-wins).
func ImportFolder(source string, cfg ImportConfig) (*BundleArtifact, error) {
	absSource, err := filepath.Abs(source)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidPath, "cannot resolve %q", source)
	}

	info, err := os.Stat(absSource)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrPathNotFound, "can't import folder %q", source)
		}
		return nil, errors.Wrapf(err, "failed to stat %q", source)
	}
	if !info.IsDir() {
		return nil, errors.Wrapf(errors.ErrNotADirectory, "can't import folder %q", source)
	}

	matched, err := collectFiles(absSource, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan folder")
	}

	if !cfg.Flatten {
		return &BundleArtifact{
			Path:         absSource,
			ImportConfig: cfg,
			Files:        matched,
		}, nil
	}

	flatDir, err := os.MkdirTemp("", "kiara-onboard-bundle-")
	if err != nil {
		return nil, errors.Wrap(err, "could not create bundle directory")
	}

	names := make(map[string]struct{}, len(matched))
	for _, rel := range matched {
		base := path.Base(rel)
		if err := fsutil.Copy(filepath.Join(absSource, filepath.FromSlash(rel)), filepath.Join(flatDir, base)); err != nil {
			_ = os.RemoveAll(flatDir)
			return nil, errors.Wrapf(err, "failed to flatten %q", rel)
		}
		names[base] = struct{}{}
	}

	flattened := make([]string, 0, len(names))
	for name := range names {
		flattened = append(flattened, name)
	}
	sort.Strings(flattened)

	return &BundleArtifact{
		Path:         flatDir,
		ImportConfig: cfg,
		Files:        flattened,
	}, nil
}

// collectFiles walks the source directory and returns the sorted,
// slash-separated relative paths of every file passing the filter rules.
func collectFiles(absSource string, cfg ImportConfig) ([]string, error) {
	var matched []string
	err := filepath.WalkDir(absSource, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != absSource && cfg.ExcludesDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(absSource, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if cfg.IncludesFile(rel) {
			matched = append(matched, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(matched)
	return matched, nil
}
