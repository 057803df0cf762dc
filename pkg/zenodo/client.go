package zenodo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/glorpus-work/kiara-onboarding/pkg/errors"
)

// DefaultBaseURL is the production Zenodo API host.
const DefaultBaseURL = "https://zenodo.org"

// Client looks up records on a Zenodo (InvenioRDM) instance.
type Client struct {
	baseURL   string
	client    *http.Client
	userAgent string
}

// NewClient creates a record-lookup client. An empty baseURL targets the
// production Zenodo instance.
func NewClient(baseURL string, timeout time.Duration, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = "kiara-onboard/1.0"
	}
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// FindRecordByDOI resolves a DOI to its record payload via the records API.
func (c *Client) FindRecordByDOI(ctx context.Context, doi DOI) (*Record, error) {
	if doi.RecordID == "" {
		return nil, errors.Wrapf(errors.ErrDOIParse, "empty record id in DOI %q", doi.String())
	}

	recordURL := fmt.Sprintf("%s/api/records/%s", c.baseURL, url.PathEscape(doi.RecordID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, recordURL, http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("record request for %s failed: %w: %w", doi.String(), errors.ErrRecordLookup, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		// Continue processing
	case http.StatusNotFound:
		return nil, errors.Wrapf(errors.ErrRecordLookup, "record %s not found", doi.String())
	default:
		return nil, fmt.Errorf("unexpected status code: %d: %w", resp.StatusCode, errors.ErrRecordLookup)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read record payload")
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.Wrap(err, "failed to decode record payload")
	}
	// Keep the untyped payload; it is attached verbatim as artifact metadata.
	if err := json.Unmarshal(data, &record.Raw); err != nil {
		return nil, errors.Wrap(err, "failed to decode record payload")
	}

	return &record, nil
}
