package model

import "encoding/json"

// Metadata schema identifiers attached alongside artifact metadata.
const (
	DownloadMetadataSchema       = "onboarding.download_metadata"
	DownloadBundleMetadataSchema = "onboarding.download_bundle_metadata"

	// ZenodoRecordMetadataKey holds the raw Zenodo record payload in the
	// metadata mapping of Zenodo-onboarded artifacts.
	ZenodoRecordMetadataKey = "zenodo_record_data"
)

// DownloadMetadata is the provenance record attached to downloaded files.
// ResponseHeaders holds the header mapping of every hop the HTTP client
// followed, in traversal order; the terminal response is always present.
type DownloadMetadata struct {
	URL             string              `json:"url"`
	ResponseHeaders []map[string]string `json:"response_headers"`
	RequestTime     string              `json:"request_time"`
}

// DownloadBundleMetadata extends DownloadMetadata with the import
// configuration that was used to import the files from the source bundle.
type DownloadBundleMetadata struct {
	DownloadMetadata
	ImportConfig ImportConfig `json:"import_config"`
}

// AsMap renders the record as a metadata mapping for artifact attachment.
func (m DownloadMetadata) AsMap() map[string]interface{} {
	return toMap(m)
}

// AsMap renders the record as a metadata mapping for artifact attachment.
func (m DownloadBundleMetadata) AsMap() map[string]interface{} {
	return toMap(m)
}

func toMap(v interface{}) map[string]interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}
