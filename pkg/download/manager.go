package download

import (
	"context"
	"crypto/md5" //nolint:gosec // Zenodo publishes MD5 digests; this is an integrity check, not a password hash
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	pkgerrors "github.com/glorpus-work/kiara-onboarding/pkg/errors"
	"github.com/glorpus-work/kiara-onboarding/pkg/fsutil"
)

// maxRedirects bounds the redirect chain followed by a single fetch.
const maxRedirects = 10

// ManagerImpl is a simple HTTP-based download manager. It streams the response
// body to a temporary file while computing an MD5 digest, records the headers
// of every redirect hop in traversal order, and verifies an expected checksum
// before the file is finalized.
type ManagerImpl struct {
	client    *http.Client
	userAgent string
}

// NewManager creates a new download manager with the given timeout and user agent.
func NewManager(timeout time.Duration, userAgent string) *ManagerImpl {
	if userAgent == "" {
		userAgent = "kiara-onboard/1.0"
	}
	return &ManagerImpl{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch downloads a single item and returns the path to the downloaded file
// together with the captured redirect-chain headers and content digest.
// A checksum mismatch aborts before any file is finalized.
func (m *ManagerImpl) Fetch(ctx context.Context, item Item, opts Options) (*Result, error) {
	if item.URL == nil {
		return nil, fmt.Errorf("nil URL: %w", pkgerrors.ErrDownloadFailed)
	}
	if opts.Dir == "" || !filepath.IsAbs(opts.Dir) {
		return nil, fmt.Errorf("download dir must be absolute: %s: %w", opts.Dir, pkgerrors.ErrInvalidPath)
	}
	if err := os.MkdirAll(opts.Dir, fsutil.DirModeSecure); err != nil {
		return nil, pkgerrors.Wrap(err, "could not create download dir")
	}

	absPath := filepath.Join(opts.Dir, selectFilename(item))

	requestTime := time.Now().UTC()
	hops := make([]map[string]string, 0, 1)

	resp, err := m.doRequest(ctx, item, &hops)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	// Terminal response always comes last in the captured chain.
	hops = append(hops, flattenHeader(resp.Header))

	tmpPath, digest, err := writeBodyToTemp(resp, opts.Dir)
	if err != nil {
		return nil, err
	}

	if item.Checksum != "" && digest != normalizeHex(item.Checksum) {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("invalid checksum for %s: %s != %s: %w",
			item.URL, normalizeHex(item.Checksum), digest, pkgerrors.ErrChecksumMismatch)
	}

	if err := finalizeFile(tmpPath, absPath); err != nil {
		return nil, err
	}

	return &Result{
		Path:        absPath,
		Headers:     hops,
		RequestTime: requestTime,
		MD5:         digest,
	}, nil
}

// doRequest issues the GET and captures the headers of every redirect hop into hops.
func (m *ManagerImpl) doRequest(ctx context.Context, item Item, hops *[]map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, item.URL.String(), http.NoBody)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", m.userAgent)

	// The base client is shared between calls; redirect capture needs a
	// per-call CheckRedirect closure, so each fetch works on a shallow copy.
	client := &http.Client{
		Transport: m.client.Transport,
		Timeout:   m.client.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			if req.Response != nil {
				*hops = append(*hops, flattenHeader(req.Response.Header))
			}
			return nil
		},
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w: %w", item.URL, pkgerrors.ErrDownloadFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d: %w", resp.StatusCode, pkgerrors.ErrDownloadFailed)
	}
	return resp, nil
}

// writeBodyToTemp streams the response body to a temp file in dir, computing
// the MD5 digest incrementally so the payload is never buffered or re-read.
func writeBodyToTemp(resp *http.Response, dir string) (string, string, error) {
	tmp, err := os.CreateTemp(dir, "dl-*.tmp")
	if err != nil {
		return "", "", pkgerrors.Wrap(err, "could not create temp file")
	}
	tmpPath := tmp.Name()

	hasher := md5.New() //nolint:gosec
	if _, err := io.Copy(io.MultiWriter(tmp, hasher), resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", "", pkgerrors.Wrap(err, "could not write file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return "", "", pkgerrors.Wrap(err, "could not sync file")
	}
	if err := tmp.Close(); err != nil {
		return "", "", pkgerrors.Wrap(err, "could not close file")
	}
	return tmpPath, hex.EncodeToString(hasher.Sum(nil)), nil
}

func finalizeFile(tmpPath, absPath string) error {
	if err := fsutil.Move(tmpPath, absPath); err != nil {
		return pkgerrors.Wrap(err, "could not finalize file")
	}
	if err := os.Chmod(absPath, fsutil.FileModeSecure); err != nil {
		return pkgerrors.Wrap(err, "could not set permissions")
	}
	return nil
}

// selectFilename derives the local file name for an item: the explicit name if
// given, otherwise the final path segment of the URL, otherwise a digest of
// the URL string.
func selectFilename(item Item) string {
	if item.Filename != "" {
		return filepath.FromSlash(item.Filename)
	}
	if base := path.Base(item.URL.Path); base != "" && base != "/" && base != "." {
		return base
	}
	h := md5.Sum([]byte(item.URL.String())) //nolint:gosec
	return hex.EncodeToString(h[:])
}

func flattenHeader(header http.Header) map[string]string {
	out := make(map[string]string, len(header))
	for key := range header {
		out[key] = header.Get(key)
	}
	return out
}

func normalizeHex(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
