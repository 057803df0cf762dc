package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// ZenodoServer is a fake Zenodo records API for tests. It serves record
// payloads under /api/records/{id} and file content under
// /files/{id}/{key}; checksums always describe the original content, so
// tampering with a file makes downloads fail verification.
type ZenodoServer struct {
	Server *httptest.Server
	URL    string

	mu       sync.Mutex
	records  map[string]map[string][]byte
	tampered map[string][]byte
}

// NewZenodoServer starts a fake Zenodo API serving the given records
// (record id -> file key -> content). The server is shut down with the test.
func NewZenodoServer(t *testing.T, records map[string]map[string][]byte) *ZenodoServer {
	t.Helper()

	zs := &ZenodoServer{
		records:  records,
		tampered: make(map[string][]byte),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/records/", zs.handleRecord)
	mux.HandleFunc("/files/", zs.handleFile)

	zs.Server = httptest.NewServer(mux)
	zs.URL = zs.Server.URL
	t.Cleanup(zs.Server.Close)

	return zs
}

// TamperFile makes the server serve different bytes for a file than the
// checksum advertised in the record payload.
func (zs *ZenodoServer) TamperFile(recordID, key string, content []byte) {
	zs.mu.Lock()
	defer zs.mu.Unlock()
	zs.tampered[recordID+"/"+key] = content
}

func (zs *ZenodoServer) handleRecord(w http.ResponseWriter, r *http.Request) {
	recordID := strings.TrimPrefix(r.URL.Path, "/api/records/")
	files, ok := zs.records[recordID]
	if !ok {
		http.NotFound(w, r)
		return
	}

	fileEntries := make([]map[string]interface{}, 0, len(files))
	for key, content := range files {
		fileEntries = append(fileEntries, map[string]interface{}{
			"key":      key,
			"checksum": "md5:" + MD5Hex(content),
			"size":     len(content),
			"links": map[string]string{
				"self": fmt.Sprintf("%s/files/%s/%s", zs.URL, recordID, key),
			},
		})
	}

	payload := map[string]interface{}{
		"id":    recordID,
		"doi":   "10.5281/zenodo." + recordID,
		"files": fileEntries,
		"metadata": map[string]interface{}{
			"title": "fixture record " + recordID,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func (zs *ZenodoServer) handleFile(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/files/")
	recordID, key, found := strings.Cut(rest, "/")
	if !found {
		http.NotFound(w, r)
		return
	}

	zs.mu.Lock()
	content, tampered := zs.tampered[recordID+"/"+key]
	zs.mu.Unlock()

	if !tampered {
		files, ok := zs.records[recordID]
		if !ok {
			http.NotFound(w, r)
			return
		}
		content, ok = files[key]
		if !ok {
			http.NotFound(w, r)
			return
		}
	}

	_, _ = w.Write(content)
}
