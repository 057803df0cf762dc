package onboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glorpus-work/kiara-onboarding/pkg/archive"
	"github.com/glorpus-work/kiara-onboarding/pkg/download"
	"github.com/glorpus-work/kiara-onboarding/pkg/errors"
	"github.com/glorpus-work/kiara-onboarding/pkg/model"
	"github.com/glorpus-work/kiara-onboarding/pkg/onboard/mocks"
	"github.com/glorpus-work/kiara-onboarding/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newHTTPStrategyForTest(t *testing.T) *HTTPStrategy {
	t.Helper()
	return NewHTTPStrategy(
		download.NewManager(10*time.Second, "kiara-onboard-test/1.0"),
		archive.NewManager(),
		t.TempDir(),
	)
}

func TestHTTPStrategy_AcceptsURI(t *testing.T) {
	s := newHTTPStrategyForTest(t)

	tests := []struct {
		uri  string
		want bool
	}{
		{uri: "http://example.org/data.csv", want: true},
		{uri: "https://example.org/data.csv", want: true},
		{uri: "ftp://example.org/data.csv", want: false},
		{uri: "/home/user/data.csv", want: false},
		{uri: "10.5281/zenodo.1234", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			ok, reason := s.AcceptsURI(tt.uri)
			assert.Equal(t, tt.want, ok)
			assert.NotEmpty(t, reason)
		})
	}
}

func TestHTTPStrategy_Retrieve(t *testing.T) {
	content := []byte("remote payload")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write(content)
	}))
	defer server.Close()

	s := newHTTPStrategyForTest(t)

	t.Run("downloads and names after URL path", func(t *testing.T) {
		artifact, err := s.Retrieve(context.Background(), RetrieveRequest{URI: server.URL + "/data.csv"})
		require.NoError(t, err)

		assert.Equal(t, "data.csv", artifact.FileName)
		got, err := os.ReadFile(artifact.Path)
		require.NoError(t, err)
		assert.Equal(t, content, got)
		assert.Nil(t, artifact.Metadata)
	})

	t.Run("file name override", func(t *testing.T) {
		artifact, err := s.Retrieve(context.Background(), RetrieveRequest{
			URI:      server.URL + "/data.csv",
			FileName: "renamed.csv",
		})
		require.NoError(t, err)
		assert.Equal(t, "renamed.csv", artifact.FileName)
	})

	t.Run("attaches download metadata", func(t *testing.T) {
		artifact, err := s.Retrieve(context.Background(), RetrieveRequest{
			URI:            server.URL + "/data.csv",
			AttachMetadata: true,
		})
		require.NoError(t, err)

		assert.Equal(t, model.DownloadMetadataSchema, artifact.MetadataSchema)
		assert.Equal(t, server.URL+"/data.csv", artifact.Metadata["url"])

		headers, ok := artifact.Metadata["response_headers"].([]interface{})
		require.True(t, ok)
		require.Len(t, headers, 1)

		_, err = time.Parse(time.RFC3339, artifact.Metadata["request_time"].(string))
		assert.NoError(t, err)
	})

	t.Run("metadata records every redirect hop", func(t *testing.T) {
		redirecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/start" {
				w.Header().Set("X-Hop", "first")
				http.Redirect(w, r, "/final.csv", http.StatusFound)
				return
			}
			w.Header().Set("X-Terminal", "yes")
			_, _ = w.Write(content)
		}))
		defer redirecting.Close()

		artifact, err := s.Retrieve(context.Background(), RetrieveRequest{
			URI:            redirecting.URL + "/start",
			AttachMetadata: true,
		})
		require.NoError(t, err)

		headers, ok := artifact.Metadata["response_headers"].([]interface{})
		require.True(t, ok)
		require.Len(t, headers, 2)

		first := headers[0].(map[string]interface{})
		last := headers[1].(map[string]interface{})
		assert.Equal(t, "first", first["X-Hop"])
		assert.Equal(t, "yes", last["X-Terminal"])
	})

	t.Run("http error", func(t *testing.T) {
		missing := httptest.NewServer(http.NotFoundHandler())
		defer missing.Close()

		_, err := s.Retrieve(context.Background(), RetrieveRequest{URI: missing.URL + "/data.csv"})
		require.ErrorIs(t, err, errors.ErrDownloadFailed)
	})
}

func TestHTTPStrategy_RetrieveBundle(t *testing.T) {
	fixtureDir := t.TempDir()
	archivePath := testutil.CreateZipArchive(t, fixtureDir, "bundle.zip", map[string]string{
		"a.csv":     "aaa",
		"sub/b.csv": "bbb",
		"notes.txt": "nnn",
	})
	payload, err := os.ReadFile(archivePath)
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	s := newHTTPStrategyForTest(t)

	bundle, err := s.RetrieveBundle(context.Background(), RetrieveBundleRequest{
		URI:            server.URL + "/bundle.zip",
		ImportConfig:   model.ImportConfig{IncludeFiles: []string{"*.csv"}},
		AttachMetadata: true,
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a.csv", "sub/b.csv"}, bundle.Files)
	for _, rel := range bundle.Files {
		_, err := os.Stat(filepath.Join(bundle.Path, filepath.FromSlash(rel)))
		assert.NoError(t, err)
	}

	assert.Equal(t, model.DownloadBundleMetadataSchema, bundle.MetadataSchema)
	assert.Equal(t, server.URL+"/bundle.zip", bundle.Metadata["url"])
	importCfg, ok := bundle.Metadata["import_config"].(map[string]interface{})
	require.True(t, ok)
	assert.NotNil(t, importCfg)
}

func TestHTTPStrategy_Retrieve_DownloaderError(t *testing.T) {
	ctrl := gomock.NewController(t)

	dl := mocks.NewMockDownloader(ctrl)
	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.Wrap(errors.ErrDownloadFailed, "connection refused"))

	s := NewHTTPStrategy(dl, archive.NewManager(), t.TempDir())

	_, err := s.Retrieve(context.Background(), RetrieveRequest{URI: "https://example.org/data.csv"})
	require.ErrorIs(t, err, errors.ErrDownloadFailed)
}

func TestHTTPStrategy_RetrieveBundle_ExtractionFailure(t *testing.T) {
	ctrl := gomock.NewController(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("definitely not an archive"))
	}))
	defer server.Close()

	ext := mocks.NewMockArchiveExtractor(ctrl)
	ext.EXPECT().ExtractAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.Wrap(errors.ErrExtractionFailed, "no archive format recognized"))

	s := NewHTTPStrategy(download.NewManager(10*time.Second, "kiara-onboard-test/1.0"), ext, t.TempDir())

	_, err := s.RetrieveBundle(context.Background(), RetrieveBundleRequest{URI: server.URL + "/blob"})
	require.ErrorIs(t, err, errors.ErrExtractionFailed)
}
