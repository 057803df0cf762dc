package hooks

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/kiara-onboarding/pkg/errors"
)

// ScriptExtension is the file extension of hook scripts.
const ScriptExtension = ".tengo"

// LoadFromDir loads all hook scripts from a directory into the manager. Hook
// files are named after their type, e.g. pre-onboard.tengo. A missing
// directory is not an error.
func LoadFromDir(manager Manager, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(errors.ErrHookLoad, "failed to read hooks directory %s", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ScriptExtension {
			continue
		}

		hookType := HookType(strings.TrimSuffix(entry.Name(), ScriptExtension))
		switch hookType {
		case PreOnboard, PostOnboard:
		default:
			continue // Skip unknown hook types
		}

		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return errors.Wrapf(errors.ErrHookLoad, "error reading hook file %s", entry.Name())
		}

		if err := manager.AddHook(Hook{Type: hookType, Content: string(content)}); err != nil {
			return err
		}
	}

	return nil
}
