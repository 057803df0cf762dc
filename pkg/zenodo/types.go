// Package zenodo provides a minimal client for the Zenodo records API and the
// DOI parsing used to address records and files within them.
package zenodo

import (
	"net/url"
	"strings"

	"github.com/glorpus-work/kiara-onboarding/pkg/errors"
)

// Record is the subset of a Zenodo record payload the onboarding code reads.
// Raw preserves the full payload for metadata attachment.
type Record struct {
	DOI   string `json:"doi"`
	Files []File `json:"files"`

	Raw map[string]interface{} `json:"-"`
}

// File is one file descriptor within a record.
type File struct {
	Key      string    `json:"key"`
	Checksum string    `json:"checksum"`
	Size     int64     `json:"size"`
	Links    FileLinks `json:"links"`
}

// FileLinks holds the download links of a file descriptor.
type FileLinks struct {
	Self string `json:"self"`
}

// MD5 returns the hex digest portion of the declared checksum, stripping the
// "md5:" prefix Zenodo publishes.
func (f File) MD5() string {
	return strings.TrimPrefix(f.Checksum, "md5:")
}

// DownloadURL parses the self link of the file descriptor.
func (f File) DownloadURL() (*url.URL, error) {
	u, err := url.Parse(f.Links.Self)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrRecordLookup, "file %q has an invalid download link %q", f.Key, f.Links.Self)
	}
	return u, nil
}

// FindFile returns the first file descriptor whose key equals filePath, and
// the list of available keys for error reporting when there is no match.
func (r *Record) FindFile(filePath string) (*File, []string) {
	keys := make([]string, 0, len(r.Files))
	for i := range r.Files {
		if r.Files[i].Key == filePath {
			return &r.Files[i], nil
		}
		keys = append(keys, r.Files[i].Key)
	}
	return nil, keys
}
