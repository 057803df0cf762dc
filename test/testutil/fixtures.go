// Package testutil provides shared fixtures for onboarding tests: archive
// builders and a fake Zenodo records API server.
package testutil

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"crypto/md5" //nolint:gosec // test fixtures mirror Zenodo's published MD5 checksums
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
)

// MD5Hex returns the hex-encoded MD5 digest of data.
func MD5Hex(data []byte) string {
	sum := md5.Sum(data) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// CreateZipArchive writes a zip archive named name into dir containing the
// given files (slash-separated relative paths) and returns its path.
func CreateZipArchive(t *testing.T, dir, name string, files map[string]string) string {
	t.Helper()

	archivePath := filepath.Join(dir, name)
	out, err := os.Create(archivePath)
	if err != nil {
		t.Fatalf("failed to create zip file: %v", err)
	}
	defer func() { _ = out.Close() }()

	zw := zip.NewWriter(out)
	for rel, content := range files {
		w, err := zw.Create(rel)
		if err != nil {
			t.Fatalf("failed to add %s to zip: %v", rel, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write %s to zip: %v", rel, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finalize zip: %v", err)
	}
	return archivePath
}

// CreateTarGzArchive writes a gzipped tarball named name into dir containing
// the given files and returns its path.
func CreateTarGzArchive(t *testing.T, dir, name string, files map[string]string) string {
	t.Helper()

	archivePath := filepath.Join(dir, name)
	out, err := os.Create(archivePath)
	if err != nil {
		t.Fatalf("failed to create tar.gz file: %v", err)
	}
	defer func() { _ = out.Close() }()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)
	for rel, content := range files {
		header := &tar.Header{
			Name: rel,
			Mode: 0o644,
			Size: int64(len(content)),
		}
		if err := tw.WriteHeader(header); err != nil {
			t.Fatalf("failed to write tar header for %s: %v", rel, err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write %s to tar: %v", rel, err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("failed to finalize tar: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("failed to finalize gzip: %v", err)
	}
	return archivePath
}

// CreateGzipFile writes a gzip-compressed single file named name (e.g.
// "data.csv.gz") into dir and returns its path.
func CreateGzipFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create gzip file: %v", err)
	}
	defer func() { _ = out.Close() }()

	gz := gzip.NewWriter(out)
	if _, err := gz.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write gzip content: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("failed to finalize gzip: %v", err)
	}
	return path
}
