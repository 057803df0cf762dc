package zenodo

import (
	"strings"

	"github.com/glorpus-work/kiara-onboarding/pkg/errors"
)

const (
	// URIPrefix marks a source URI addressed directly by DOI, e.g.
	// "zenodo:10.5281/zenodo.1234".
	URIPrefix = "zenodo:"

	// doiToken separates the DOI prefix from the record id. URIs such as
	// "https://doi.org/10.5281/zenodo.1234" contain it as well.
	doiToken = "/zenodo."
)

// DOI addresses a Zenodo record, optionally narrowed to one file within it.
type DOI struct {
	Prefix   string // registrant prefix, e.g. "10.5281"
	RecordID string
	FilePath string // optional key of a file inside the record
}

// String reconstructs the record DOI without any file path.
func (d DOI) String() string {
	return d.Prefix + doiToken[1:] + d.RecordID
}

// IsZenodoURI reports whether a source URI is addressed at Zenodo, either via
// the "zenodo:" prefix or an embedded "/zenodo." DOI token.
func IsZenodoURI(uri string) bool {
	return strings.HasPrefix(uri, URIPrefix) || strings.Contains(uri, doiToken)
}

// ParseSourceURI splits a Zenodo source URI into registrant prefix, record id
// and optional file path. The grammar is
// "<prefix>/zenodo.<record-id>[/<file-path>]", with an optional leading
// "zenodo:" marker.
func ParseSourceURI(uri string) (DOI, error) {
	raw := strings.TrimPrefix(uri, URIPrefix)

	tokens := strings.Split(raw, doiToken)
	if len(tokens) != 2 {
		return DOI{}, errors.Wrapf(errors.ErrDOIParse, "from URI %q", uri)
	}

	rest := strings.SplitN(tokens[1], "/", 2)
	doi := DOI{
		Prefix:   tokens[0],
		RecordID: rest[0],
	}
	if doi.Prefix == "" || doi.RecordID == "" {
		return DOI{}, errors.Wrapf(errors.ErrDOIParse, "from URI %q", uri)
	}
	if len(rest) == 2 {
		doi.FilePath = rest[1]
	}
	return doi, nil
}
