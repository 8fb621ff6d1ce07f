package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qfoxlabs/qfox/internal/capability"
	"github.com/qfoxlabs/qfox/internal/config"
)

var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities",
	Short: "List the capability vocabulary",
	Long: `List the recommended capability vocabulary plus any extras from
the vocabulary.extra config key. Any non-empty name is a valid
capability; the vocabulary is advisory, not enforced.`,
	RunE: runCapabilities,
}

func init() {
	rootCmd.AddCommand(capabilitiesCmd)
}

func runCapabilities(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	for _, cp := range capability.Recommended {
		fmt.Println(cp)
	}
	for _, extra := range cfg.Vocabulary.Extra {
		fmt.Printf("%s (extra)\n", extra)
	}
	return nil
}
