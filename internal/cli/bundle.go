package cli

import (
	"github.com/glorpus-work/kiara-onboarding/pkg/hooks"
	"github.com/glorpus-work/kiara-onboarding/pkg/model"
	"github.com/glorpus-work/kiara-onboarding/pkg/onboard"
	"github.com/spf13/cobra"
)

// NewBundleCmd creates the bundle onboarding command.
func NewBundleCmd() *cobra.Command {
	var (
		onboardType string
		includes    []string
		excludes    []string
		excludeDirs []string
		flatten     bool
		noMetadata  bool
	)

	cmd := &cobra.Command{
		Use:   "bundle SOURCE",
		Short: "Onboard a bundle of files",
		Long: `Onboard a set of files from a source URI. The source can be a local
directory, an http(s) URL pointing at an archive, or a Zenodo DOI (the whole
record, or a single archive file within it). Include and exclude patterns
filter the imported files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			importCfg := model.ImportConfig{
				IncludeFiles: includes,
				ExcludeFiles: excludes,
				ExcludeDirs:  excludeDirs,
				Flatten:      flatten,
			}
			return runBundle(cmd, args[0], onboardType, importCfg, noMetadata)
		},
	}

	cmd.Flags().StringVar(&onboardType, "type", "", "Pin a strategy instead of auto-detecting (e.g. url, zenodo)")
	cmd.Flags().StringSliceVar(&includes, "include", nil, "Only import files matching these patterns")
	cmd.Flags().StringSliceVar(&excludes, "exclude", nil, "Skip files matching these patterns")
	cmd.Flags().StringSliceVar(&excludeDirs, "exclude-dir", nil, "Skip directories with these names")
	cmd.Flags().BoolVar(&flatten, "flatten", false, "Flatten the directory structure of the bundle")
	cmd.Flags().BoolVar(&noMetadata, "no-metadata", false, "Do not attach provenance metadata")

	return cmd
}

func runBundle(cmd *cobra.Command, source, onboardType string, importCfg model.ImportConfig, noMetadata bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	onboarder, err := buildOnboarder(cfg)
	if err != nil {
		return err
	}

	hookManager, err := loadHooks(cfg)
	if err != nil {
		return err
	}

	hookCtx := hooks.HookContext{Source: source, Strategy: onboardType}
	if err := hookManager.Execute(hooks.PreOnboard, hookCtx); err != nil {
		return err
	}

	bundle, err := onboarder.OnboardBundle(cmd.Context(), onboard.Request{
		Source:         source,
		OnboardType:    onboardType,
		ImportConfig:   importCfg,
		AttachMetadata: cfg.Settings.AttachMetadata && !noMetadata,
	})
	if err != nil {
		return err
	}

	hookCtx.ArtifactPath = bundle.Path
	if err := hookManager.Execute(hooks.PostOnboard, hookCtx); err != nil {
		return err
	}

	return printBundleArtifact(cfg, bundle)
}
