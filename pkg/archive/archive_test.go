package archive

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pkgerrors "github.com/glorpus-work/kiara-onboarding/pkg/errors"
	"github.com/glorpus-work/kiara-onboarding/test/testutil"
)

func TestExtractAll_Zip(t *testing.T) {
	tempDir := t.TempDir()

	testFiles := map[string]string{
		"meta/record.json":      `{"name":"test"}`,
		"data/file1.txt":        "Hello World",
		"data/subdir/file2.txt": "Hello World 2",
	}
	archivePath := testutil.CreateZipArchive(t, tempDir, "bundle.zip", testFiles)

	am := NewManager()
	extractDir := filepath.Join(tempDir, "extracted")
	if err := am.ExtractAll(context.Background(), archivePath, extractDir); err != nil {
		t.Fatalf("Failed to extract archive: %v", err)
	}

	for path, expectedContent := range testFiles {
		content, err := os.ReadFile(filepath.Join(extractDir, path))
		if err != nil {
			t.Errorf("Failed to read extracted file %s: %v", path, err)
			continue
		}
		if string(content) != expectedContent {
			t.Errorf("File %s content mismatch: got %q, want %q", path, content, expectedContent)
		}
	}
}

func TestExtractAll_TarGz(t *testing.T) {
	tempDir := t.TempDir()

	testFiles := map[string]string{
		"a.csv":     "1,2,3",
		"sub/b.csv": "4,5,6",
	}
	archivePath := testutil.CreateTarGzArchive(t, tempDir, "bundle.tar.gz", testFiles)

	am := NewManager()
	extractDir := filepath.Join(tempDir, "extracted")
	if err := am.ExtractAll(context.Background(), archivePath, extractDir); err != nil {
		t.Fatalf("Failed to extract archive: %v", err)
	}

	for path, expectedContent := range testFiles {
		content, err := os.ReadFile(filepath.Join(extractDir, path))
		if err != nil {
			t.Fatalf("Failed to read extracted file %s: %v", path, err)
		}
		if string(content) != expectedContent {
			t.Errorf("File %s content mismatch: got %q, want %q", path, content, expectedContent)
		}
	}
}

// A plain gzip file is not an archive, so the filesystem tier rejects it and
// the streaming tier must take over and decompress the single payload.
func TestExtractAll_GzipFallback(t *testing.T) {
	tempDir := t.TempDir()
	archivePath := testutil.CreateGzipFile(t, tempDir, "data.csv.gz", "col\n1\n2\n")

	am := NewManager()
	extractDir := filepath.Join(tempDir, "extracted")
	if err := am.ExtractAll(context.Background(), archivePath, extractDir); err != nil {
		t.Fatalf("Failed to extract gzip file: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(extractDir, "data.csv"))
	if err != nil {
		t.Fatalf("Decompressed file missing: %v", err)
	}
	if string(content) != "col\n1\n2\n" {
		t.Errorf("Decompressed content mismatch: got %q", content)
	}
}

func TestExtractAll_BothTiersFail(t *testing.T) {
	tempDir := t.TempDir()
	garbage := filepath.Join(tempDir, "garbage.bin")
	if err := os.WriteFile(garbage, []byte("this is not an archive at all"), 0o644); err != nil {
		t.Fatalf("Failed to write garbage file: %v", err)
	}

	am := NewManager()
	err := am.ExtractAll(context.Background(), garbage, filepath.Join(tempDir, "out"))
	if err == nil {
		t.Fatal("Expected extraction of a non-archive to fail")
	}
	if !strings.Contains(err.Error(), pkgerrors.ErrExtractionFailed.Error()) {
		t.Errorf("Error should carry the extraction sentinel, got: %v", err)
	}
	// Both underlying causes must be preserved for diagnosis.
	if !strings.Contains(err.Error(), "no archive format recognized") {
		t.Errorf("Error should reference the filesystem tier cause, got: %v", err)
	}
	if !strings.Contains(err.Error(), "identify") {
		t.Errorf("Error should reference the streaming tier cause, got: %v", err)
	}
}
