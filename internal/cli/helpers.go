package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/glorpus-work/kiara-onboarding/internal/logger"
	"github.com/glorpus-work/kiara-onboarding/pkg/archive"
	"github.com/glorpus-work/kiara-onboarding/pkg/config"
	"github.com/glorpus-work/kiara-onboarding/pkg/download"
	"github.com/glorpus-work/kiara-onboarding/pkg/fsutil"
	"github.com/glorpus-work/kiara-onboarding/pkg/hooks"
	"github.com/glorpus-work/kiara-onboarding/pkg/model"
	"github.com/glorpus-work/kiara-onboarding/pkg/onboard"
	"github.com/glorpus-work/kiara-onboarding/pkg/zenodo"
)

// These variables will be set by the main package
var (
	ConfigPath   *string
	Verbose      *bool
	OutputFormat *string
)

// loadConfig loads the configuration and applies CLI flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with CLI flags if provided
	if OutputFormat != nil && *OutputFormat != "" {
		cfg.Settings.OutputFormat = *OutputFormat
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}

	logger.InitLogger(cfg.Settings.LogLevel)

	return cfg, nil
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err})
		return ""
	}
	return defaultPath
}

// buildOnboarder wires the default strategies from the configuration.
func buildOnboarder(cfg *config.Config) (*onboard.Onboarder, error) {
	scratchRoot := cfg.Settings.ScratchDir
	if scratchRoot == "" {
		// Fall back to the user cache dir; NewScratchDir uses the OS temp
		// dir if that cannot be determined either.
		scratchRoot, _ = fsutil.GetCacheDir()
	}

	registry, err := onboard.DefaultRegistry(onboard.Dependencies{
		Downloader:  download.NewManager(cfg.Settings.HTTPTimeout, cfg.Settings.UserAgent),
		Archive:     archive.NewManager(),
		Records:     zenodo.NewClient(cfg.Settings.ZenodoBaseURL, cfg.Settings.HTTPTimeout, cfg.Settings.UserAgent),
		ScratchRoot: scratchRoot,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build strategy registry: %w", err)
	}
	return onboard.New(registry), nil
}

// loadHooks loads hook scripts from the configured hooks directory.
func loadHooks(cfg *config.Config) (hooks.Manager, error) {
	manager := hooks.NewManager()
	if err := hooks.LoadFromDir(manager, cfg.GetHooksDir()); err != nil {
		return nil, fmt.Errorf("failed to load hooks: %w", err)
	}
	return manager, nil
}

func printFileArtifact(cfg *config.Config, artifact *model.FileArtifact) error {
	if cfg.Settings.OutputFormat == "json" {
		return printJSON(artifact)
	}

	fmt.Printf("Onboarded %s\n", artifact.FileName)
	fmt.Printf("  Path: %s\n", artifact.Path)
	fmt.Printf("  Size: %d bytes\n", artifact.Size)
	if artifact.MetadataSchema != "" {
		fmt.Printf("  Metadata schema: %s\n", artifact.MetadataSchema)
	}
	return nil
}

func printBundleArtifact(cfg *config.Config, bundle *model.BundleArtifact) error {
	if cfg.Settings.OutputFormat == "json" {
		return printJSON(bundle)
	}

	fmt.Printf("Onboarded bundle with %d file(s)\n", len(bundle.Files))
	fmt.Printf("  Path: %s\n", bundle.Path)
	for _, rel := range bundle.Files {
		fmt.Printf("  - %s\n", rel)
	}
	if bundle.MetadataSchema != "" {
		fmt.Printf("  Metadata schema: %s\n", bundle.MetadataSchema)
	}
	return nil
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
