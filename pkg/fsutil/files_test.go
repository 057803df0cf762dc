package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMove_File_SameFilesystem tests moving a file within the same filesystem
func TestMove_File_SameFilesystem(t *testing.T) {
	tempDir := t.TempDir()

	srcFile := filepath.Join(tempDir, "source.txt")
	dstFile := filepath.Join(tempDir, "destination.txt")

	content := "Hello, World!"
	err := os.WriteFile(srcFile, []byte(content), 0644)
	require.NoError(t, err)

	err = Move(srcFile, dstFile)
	require.NoError(t, err)

	movedContent, err := os.ReadFile(dstFile)
	require.NoError(t, err)
	assert.Equal(t, content, string(movedContent))

	// Verify source file no longer exists
	_, err = os.Stat(srcFile)
	assert.True(t, os.IsNotExist(err))
}

func TestMove_CreatesDestinationDir(t *testing.T) {
	tempDir := t.TempDir()

	srcFile := filepath.Join(tempDir, "source.txt")
	dstFile := filepath.Join(tempDir, "nested", "deeper", "destination.txt")

	err := os.WriteFile(srcFile, []byte("payload"), 0644)
	require.NoError(t, err)

	err = Move(srcFile, dstFile)
	require.NoError(t, err)

	movedContent, err := os.ReadFile(dstFile)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(movedContent))
}

func TestMove_ErrorCases(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name string
		src  string
		dst  string
	}{
		{name: "empty source", src: "", dst: filepath.Join(tempDir, "x")},
		{name: "empty destination", src: filepath.Join(tempDir, "x"), dst: ""},
		{name: "missing source", src: filepath.Join(tempDir, "missing"), dst: filepath.Join(tempDir, "y")},
		{name: "directory source", src: tempDir, dst: filepath.Join(tempDir, "z")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, Move(tt.src, tt.dst))
		})
	}
}

func TestNewScratchDir_Unique(t *testing.T) {
	root := t.TempDir()

	first, err := NewScratchDir(root)
	require.NoError(t, err)
	second, err := NewScratchDir(root)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	for _, dir := range []string{first, second} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
