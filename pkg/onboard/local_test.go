package onboard

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/kiara-onboarding/pkg/errors"
	"github.com/glorpus-work/kiara-onboarding/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileStrategy_AcceptsURI(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(file, []byte("hello"), 0o644))

	s := NewLocalFileStrategy()

	tests := []struct {
		name string
		uri  string
		want bool
	}{
		{name: "existing file", uri: file, want: true},
		{name: "directory", uri: dir, want: false},
		{name: "missing path", uri: filepath.Join(dir, "nope.txt"), want: false},
		{name: "url", uri: "https://example.org/data.txt", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := s.AcceptsURI(tt.uri)
			assert.Equal(t, tt.want, ok)
			assert.NotEmpty(t, reason)
		})
	}
}

func TestLocalFileStrategy_AcceptsBundleURI(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(file, []byte("hello"), 0o644))

	s := NewLocalFileStrategy()

	ok, _ := s.AcceptsBundleURI(dir)
	assert.True(t, ok)
	ok, _ = s.AcceptsBundleURI(file)
	assert.False(t, ok)
}

func TestLocalFileStrategy_Retrieve(t *testing.T) {
	dir := t.TempDir()
	content := []byte("some local content")
	file := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(file, content, 0o644))

	s := NewLocalFileStrategy()

	t.Run("round trip preserves content and name", func(t *testing.T) {
		artifact, err := s.Retrieve(context.Background(), RetrieveRequest{URI: file})
		require.NoError(t, err)

		assert.Equal(t, "data.txt", artifact.FileName)
		assert.Equal(t, int64(len(content)), artifact.Size)

		got, err := os.ReadFile(artifact.Path)
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("file name override", func(t *testing.T) {
		artifact, err := s.Retrieve(context.Background(), RetrieveRequest{URI: file, FileName: "renamed.txt"})
		require.NoError(t, err)
		assert.Equal(t, "renamed.txt", artifact.FileName)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := s.Retrieve(context.Background(), RetrieveRequest{URI: filepath.Join(dir, "nope.txt")})
		require.ErrorIs(t, err, errors.ErrPathNotFound)
	})

	t.Run("directory is not a file", func(t *testing.T) {
		_, err := s.Retrieve(context.Background(), RetrieveRequest{URI: dir})
		require.ErrorIs(t, err, errors.ErrNotAFile)
	})
}

func TestLocalFileStrategy_RetrieveBundle(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.csv"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("n"), 0o644))

	s := NewLocalFileStrategy()

	t.Run("imports folder with filter", func(t *testing.T) {
		bundle, err := s.RetrieveBundle(context.Background(), RetrieveBundleRequest{
			URI:          dir,
			ImportConfig: model.ImportConfig{IncludeFiles: []string{"*.csv"}},
		})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a.csv", "sub/b.csv"}, bundle.Files)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := s.RetrieveBundle(context.Background(), RetrieveBundleRequest{URI: filepath.Join(dir, "nope")})
		require.ErrorIs(t, err, errors.ErrPathNotFound)
	})

	t.Run("file is not a directory", func(t *testing.T) {
		_, err := s.RetrieveBundle(context.Background(), RetrieveBundleRequest{URI: filepath.Join(dir, "a.csv")})
		require.ErrorIs(t, err, errors.ErrNotADirectory)
	})
}
