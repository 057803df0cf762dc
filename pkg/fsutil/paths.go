package fsutil

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// AppName is the name of the application used in paths.
const AppName = "kiara-onboard"

// GetCacheDir returns the platform-specific cache directory for the application.
// On Linux: ~/.cache/kiara-onboard/
// On macOS: ~/Library/Caches/kiara-onboard/
// On Windows: %LOCALAPPDATA%\kiara-onboard\
func GetCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, AppName), nil
}

// NewScratchDir creates a uniquely-named scratch directory under root.
// Every retrieval gets its own directory so concurrent calls never share
// temporary state; cleanup is the caller's responsibility.
func NewScratchDir(root string) (string, error) {
	if root == "" {
		root = os.TempDir()
	}
	dir := filepath.Join(root, uuid.NewString())
	if err := os.MkdirAll(dir, DirModeSecure); err != nil {
		return "", err
	}
	return dir, nil
}
