package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/qfoxlabs/qfox/internal/config"
	"github.com/qfoxlabs/qfox/internal/device"
	"github.com/qfoxlabs/qfox/internal/event"
	"github.com/qfoxlabs/qfox/internal/logging"
	"github.com/qfoxlabs/qfox/internal/sim"
	"github.com/qfoxlabs/qfox/internal/swarm"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the workload simulation",
	Long: `Run the assignment core against a synthetic workload.

Demo agents are registered, templated tasks are generated every tick,
and outcomes feed back into each agent's confidence model. The run
continues until interrupted, or until --max-tasks outcomes resolve.`,
	RunE: runSimulation,
}

var (
	runMaxTasks int
	runSeed     int64
	runTraining bool
	runDevices  bool
)

func init() {
	runCmd.Flags().IntVar(&runMaxTasks, "max-tasks", 0, "Stop after this many task outcomes (0 = run until interrupted)")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "Seed for the outcome generator (0 = seed from the clock)")
	runCmd.Flags().BoolVar(&runTraining, "training", false, "Start with training mode (accelerated learning) enabled")
	runCmd.Flags().BoolVar(&runDevices, "devices", false, "Attach a simulated device fleet")
	rootCmd.AddCommand(runCmd)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logging.New(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Close() }()

	bus := event.NewBus()
	controller := swarm.NewController(swarm.NewRegistry(), bus, log,
		swarm.WithLearningRates(cfg.Learning.DefaultRate, cfg.Learning.TrainingRate))

	if runTraining || cfg.Learning.TrainingMode {
		controller.SetTrainingMode(true)
	}
	if cfg.Scoring.LogBreakdowns {
		controller.SetScoreLogging(true)
	}

	opts := []sim.Option{
		sim.WithTickInterval(cfg.Simulation.TickInterval()),
		sim.WithTasksPerTick(cfg.Simulation.TasksPerTick),
		sim.WithAgentCount(cfg.Simulation.AgentCount),
	}

	maxTasks := cfg.Simulation.MaxTasks
	if runMaxTasks > 0 {
		maxTasks = runMaxTasks
	}
	if maxTasks > 0 {
		opts = append(opts, sim.WithMaxTasks(maxTasks))
	}

	seed := cfg.Simulation.Seed
	if runSeed != 0 {
		seed = runSeed
	}
	if seed != 0 {
		opts = append(opts, sim.WithSeed(seed))
	}

	var fleet *device.Manager
	if runDevices || cfg.Devices.Enabled {
		deviceOpts := []device.Option{}
		if seed != 0 {
			deviceOpts = append(deviceOpts, device.WithSeed(seed))
		}
		fleet = device.NewManager(cfg.Devices.CountPerType, bus, log, deviceOpts...)
		opts = append(opts, sim.WithDevices(fleet))
	}

	simulator := sim.NewSimulator(controller, log, opts...)
	if _, err := simulator.SetupAgents(); err != nil {
		return fmt.Errorf("failed to register demo agents: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if fleet != nil {
		go fleet.Run(ctx, cfg.Devices.ReadingInterval())
	}

	fmt.Printf("Running with %d agents", controller.Registry().AgentCount())
	if fleet != nil {
		fmt.Printf(" and %d devices", fleet.Count())
	}
	if maxTasks > 0 {
		fmt.Printf(", stopping after %d outcomes", maxTasks)
	}
	fmt.Println(". Press Ctrl+C to stop.")

	if err := simulator.Run(ctx); err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	printRunSummary(controller, simulator)
	return nil
}

func printRunSummary(controller *swarm.Controller, simulator *sim.Simulator) {
	metrics := controller.Metrics()

	fmt.Println()
	fmt.Println("RUN SUMMARY")
	fmt.Println(strings.Repeat("─", 50))
	fmt.Printf("Outcomes resolved: %d\n", simulator.Resolved())
	fmt.Printf("Tasks created:     %d\n", metrics.TasksCreated)
	fmt.Printf("Completed:         %d\n", metrics.TasksCompleted)
	fmt.Printf("Failed:            %d\n", metrics.TasksFailed)
	fmt.Printf("Still pending:     %d\n", metrics.TasksPending)
	fmt.Printf("System efficiency: %.1f%%\n", metrics.SystemEfficiency*100)
	fmt.Println()

	fmt.Println("AGENT CONFIDENCE")
	fmt.Println(strings.Repeat("─", 50))
	for _, status := range controller.AgentStatuses() {
		fmt.Printf("%s (%d done, %d failed)\n", status.Name, status.TasksCompleted, status.TasksFailed)
		for _, cp := range status.Capabilities {
			conf, ok := status.Confidence[cp]
			if !ok {
				// Never exercised: still at the neutral prior.
				conf = 0.5
			}
			fmt.Printf("  %-22s %.3f\n", cp.String(), conf)
		}
	}
}
