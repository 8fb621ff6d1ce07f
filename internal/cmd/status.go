package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qfoxlabs/qfox/internal/config"
	"github.com/qfoxlabs/qfox/internal/device"
	"github.com/qfoxlabs/qfox/internal/event"
	"github.com/qfoxlabs/qfox/internal/logging"
	"github.com/qfoxlabs/qfox/internal/sim"
	"github.com/qfoxlabs/qfox/internal/swarm"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the configured system as it would start",
	Long: `Show a plain-text snapshot of the system a run would start with:
the demo agent roster with learning rates and confidence priors, and the
device fleet with a sampled reading per device when devices are enabled.`,
	RunE: runStatus,
}

var statusDevices bool

func init() {
	statusCmd.Flags().BoolVar(&statusDevices, "devices", false, "Include the simulated device fleet")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	controller := swarm.NewController(swarm.NewRegistry(), event.NewBus(), logging.Nop(),
		swarm.WithLearningRates(cfg.Learning.DefaultRate, cfg.Learning.TrainingRate))
	if cfg.Learning.TrainingMode {
		controller.SetTrainingMode(true)
	}

	simulator := sim.NewSimulator(controller, nil, sim.WithAgentCount(cfg.Simulation.AgentCount))
	if _, err := simulator.SetupAgents(); err != nil {
		return fmt.Errorf("failed to register demo agents: %w", err)
	}

	fmt.Println("AGENTS")
	fmt.Println(strings.Repeat("─", 50))
	for _, status := range controller.AgentStatuses() {
		fmt.Printf("%s  (learning rate %.2f)\n", status.Name, status.LearningRate)
		for _, cp := range status.Capabilities {
			conf, ok := status.Confidence[cp]
			if !ok {
				conf = 0.5
			}
			fmt.Printf("  %-22s %.3f\n", cp.String(), conf)
		}
	}
	if cfg.Learning.TrainingMode {
		fmt.Println("\nTraining mode is enabled: outcomes move confidence at the elevated rate.")
	}

	if statusDevices || cfg.Devices.Enabled {
		fleet := device.NewManager(cfg.Devices.CountPerType, event.NewBus(), nil)
		fleet.Poll()

		fmt.Println()
		fmt.Println("DEVICES")
		fmt.Println(strings.Repeat("─", 50))
		for _, d := range fleet.Statuses() {
			fmt.Printf("%-14s %-18s battery %3.0f%%  signal %3.0f%%\n", d.ID, d.Name, d.BatteryLevel, d.SignalStrength)
			keys := make([]string, 0, len(d.LastReading))
			for key := range d.LastReading {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Printf("  %-22s %.2f\n", key, d.LastReading[key])
			}
		}
	}
	return nil
}
