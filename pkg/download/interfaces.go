//go:generate mockgen -destination=mocks/download.go . Manager
package download

import (
	"context"
	"net/url"
	"time"
)

// Manager defines the interface for fetching remote files. It replaces ad-hoc
// HTTP downloading with a single testable API that captures redirect history
// and verifies integrity while streaming.
type Manager interface {
	// Fetch downloads a single item into opts.Dir and returns the local path
	// together with the captured response headers and content digest.
	Fetch(ctx context.Context, item Item, opts Options) (*Result, error)
}

// Item represents one remote resource to download.
type Item struct {
	URL      *url.URL // source URL to download
	Filename string   // optional target name within Options.Dir; if empty, a name is derived
	Checksum string   // optional hex-encoded MD5 digest; if provided, will be verified
}

// Options control the behavior of a fetch.
type Options struct {
	Dir string // destination scratch directory. Must be absolute.
}

// Result describes a completed fetch. Headers holds the header mapping of every
// hop the client followed, in traversal order, with the terminal response last.
type Result struct {
	Path        string
	Headers     []map[string]string
	RequestTime time.Time
	MD5         string
}
