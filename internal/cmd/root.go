package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/qfoxlabs/qfox/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "qfox",
	Short: "Adaptive task-assignment core with per-capability learning",
	Long: `qfox maintains a pool of agents with declared capabilities, assigns
tasks to the best-scoring eligible agent, and learns from outcomes:
every completion moves the assigned agent's per-capability confidence,
so assignment decisions improve as the system runs.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/qfox/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/qfox")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("QFOX")
	// Replace dots with underscores for nested keys in env vars
	// e.g., QFOX_LEARNING_DEFAULT_RATE for learning.default_rate
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
