package cli

import (
	"github.com/glorpus-work/kiara-onboarding/pkg/hooks"
	"github.com/glorpus-work/kiara-onboarding/pkg/onboard"
	"github.com/spf13/cobra"
)

// NewFileCmd creates the file onboarding command.
func NewFileCmd() *cobra.Command {
	var (
		fileName    string
		onboardType string
		noMetadata  bool
	)

	cmd := &cobra.Command{
		Use:   "file SOURCE",
		Short: "Onboard a single file",
		Long: `Onboard a single file from a source URI. The source can be a local path,
an http(s) URL or a Zenodo DOI with a file path (e.g. 10.5281/zenodo.1234/data.csv).
By default the strategy is auto-detected from the source.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(cmd, args[0], fileName, onboardType, noMetadata)
		},
	}

	cmd.Flags().StringVar(&fileName, "name", "", "Override the display name of the onboarded file")
	cmd.Flags().StringVar(&onboardType, "type", "", "Pin a strategy instead of auto-detecting (e.g. url, zenodo)")
	cmd.Flags().BoolVar(&noMetadata, "no-metadata", false, "Do not attach provenance metadata")

	return cmd
}

func runFile(cmd *cobra.Command, source, fileName, onboardType string, noMetadata bool) error {
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

	artifact, err := onboarder.OnboardFile(cmd.Context(), onboard.Request{
		Source:         source,
		FileName:       fileName,
		OnboardType:    onboardType,
		AttachMetadata: cfg.Settings.AttachMetadata && !noMetadata,
	})
	if err != nil {
		return err
	}

	hookCtx.ArtifactPath = artifact.Path
	hookCtx.FileName = artifact.FileName
	if err := hookManager.Execute(hooks.PostOnboard, hookCtx); err != nil {
		return err
	}

	return printFileArtifact(cfg, artifact)
}
