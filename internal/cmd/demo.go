package cmd

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qfoxlabs/qfox/internal/capability"
	"github.com/qfoxlabs/qfox/internal/event"
	"github.com/qfoxlabs/qfox/internal/logging"
	"github.com/qfoxlabs/qfox/internal/swarm"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through the learning loop step by step",
	Long: `Run a deterministic walkthrough of the learning loop: one agent,
one recurring task, and a printed confidence trajectory per round.

Early rounds fail more often; as confidence grows the simulated
success probability rises, so the trajectory shows the feedback loop
converging. Use --training to watch the same loop with the elevated
learning rate.`,
	RunE: runDemo,
}

var (
	demoRounds   int
	demoSeed     int64
	demoTraining bool
)

func init() {
	demoCmd.Flags().IntVar(&demoRounds, "rounds", 15, "Number of task rounds to run")
	demoCmd.Flags().Int64Var(&demoSeed, "seed", 42, "Seed for the outcome generator")
	demoCmd.Flags().BoolVar(&demoTraining, "training", false, "Use training mode (accelerated learning)")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	bus := event.NewBus()
	controller := swarm.NewController(swarm.NewRegistry(), bus, logging.Nop())
	if demoTraining {
		controller.SetTrainingMode(true)
	}

	bus.Subscribe("confidence.updated", func(e event.Event) {
		upd, ok := e.(event.ConfidenceUpdatedEvent)
		if !ok {
			return
		}
		fmt.Printf("    %-20s %.3f -> %.3f (%+.3f)\n", upd.Capability, upd.Before, upd.After, upd.Change())
	})

	required := []capability.Capability{"data_analysis", "pattern_recognition"}
	agentID, err := controller.AddAgent("Demo Analyst", required)
	if err != nil {
		return err
	}

	fmt.Println("LEARNING EVOLUTION")
	fmt.Println(strings.Repeat("─", 50))
	fmt.Printf("Agent: Demo Analyst, learning rate %g\n\n", mustLearningRate(controller, agentID))

	rng := rand.New(rand.NewSource(demoSeed))
	ctx := cmd.Context()
	successes := 0

	for round := 1; round <= demoRounds; round++ {
		taskID, err := controller.CreateTask("Data Pattern Analysis", "recurring demo task", required, 8.0, 4.0)
		if err != nil {
			return err
		}
		assignee, err := controller.Assign(ctx, taskID)
		if err != nil {
			return err
		}
		if assignee == "" {
			return fmt.Errorf("demo task found no eligible agent")
		}

		// The same outcome rule the simulator uses: mean confidence
		// discounted by complexity.
		agent, err := controller.Registry().Agent(assignee)
		if err != nil {
			return err
		}
		sum := 0.0
		for _, req := range required {
			sum += agent.Confidence(req)
		}
		successProb := (sum / float64(len(required))) * (1.0 - 4.0*0.1)
		success := rng.Float64() < successProb
		if success {
			successes++
		}

		fmt.Printf("Round %2d: success=%v (p=%.3f)\n", round, success, successProb)
		if err := controller.Complete(ctx, taskID, success); err != nil {
			return err
		}
	}

	fmt.Printf("\n%d/%d rounds succeeded\n", successes, demoRounds)
	status, err := controller.AgentStatus(agentID)
	if err != nil {
		return err
	}
	fmt.Printf("Final adaptability score: %.3f\n", status.AdaptabilityScore)
	return nil
}

func mustLearningRate(controller *swarm.Controller, agentID string) float64 {
	status, err := controller.AgentStatus(agentID)
	if err != nil {
		return 0
	}
	return status.LearningRate
}
