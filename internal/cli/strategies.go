package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/glorpus-work/kiara-onboarding/pkg/onboard"
	"github.com/spf13/cobra"
)

// TabWidth is the width of tabs in formatted output.
const TabWidth = 2

// NewStrategiesCmd creates the strategies listing command.
func NewStrategiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategies",
		Short: "List available onboarding strategies",
		Long:  "Display the identifiers of all registered onboarding strategies",
		RunE:  runStrategies,
	}

	return cmd
}

func runStrategies(*cobra.Command, []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	onboarder, err := buildOnboarder(cfg)
	if err != nil {
		return err
	}

	tabWriter := tabwriter.NewWriter(os.Stdout, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tabWriter, "NAME\tIDENTIFIER")
	_, _ = fmt.Fprintln(tabWriter, "----\t----------")
	for _, id := range onboarder.Strategies() {
		_, _ = fmt.Fprintf(tabWriter, "%s\t%s\n", strings.TrimPrefix(id, onboard.IDPrefix), id)
	}
	_ = tabWriter.Flush()

	return nil
}
