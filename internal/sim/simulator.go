// Package sim drives the assignment core with a synthetic workload so the
// learning loop can be observed end to end: demo agents are registered,
// templated tasks are generated each tick, and outcomes are resolved from
// each agent's current confidence against the task's complexity.
package sim

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/qfoxlabs/qfox/internal/device"
	"github.com/qfoxlabs/qfox/internal/logging"
	"github.com/qfoxlabs/qfox/internal/swarm"
)

const (
	defaultTickInterval = 500 * time.Millisecond
	defaultTasksPerTick = 1
)

// Simulator generates tasks, runs assignment, and resolves outcomes on a
// fixed tick. It is safe for concurrent use.
type Simulator struct {
	controller *swarm.Controller
	devices    *device.Manager
	log        *logging.Logger

	tickInterval time.Duration
	tasksPerTick int
	maxTasks     int
	agentCount   int
	templates    []TaskTemplate

	mu       sync.Mutex
	rng      *rand.Rand
	resolved int
	attached map[string]string // task ID -> device ID
	stopFunc context.CancelFunc
	stopped  chan struct{}
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithSeed seeds the outcome generator for reproducible runs.
func WithSeed(seed int64) Option {
	return func(s *Simulator) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithTickInterval sets how often the simulator generates and resolves
// work. A zero or negative interval disables the background loop, which
// is useful in tests that call Tick directly.
func WithTickInterval(d time.Duration) Option {
	return func(s *Simulator) {
		s.tickInterval = d
	}
}

// WithTasksPerTick sets how many tasks each tick generates.
func WithTasksPerTick(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.tasksPerTick = n
		}
	}
}

// WithMaxTasks stops the run after n tasks have resolved. Zero means run
// until the context is cancelled.
func WithMaxTasks(n int) Option {
	return func(s *Simulator) {
		s.maxTasks = n
	}
}

// WithDevices attaches a simulated device fleet: each assigned task grabs
// an idle device until its outcome resolves. The fleet samples readings on
// its own schedule; the simulator only attaches and releases.
func WithDevices(m *device.Manager) Option {
	return func(s *Simulator) {
		s.devices = m
	}
}

// WithAgentCount sets how many demo agents SetupAgents registers. Counts
// beyond the template roster cycle through it with numbered names. Zero
// registers the roster once.
func WithAgentCount(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.agentCount = n
		}
	}
}

// WithTemplates replaces the built-in workload catalog.
func WithTemplates(templates []TaskTemplate) Option {
	return func(s *Simulator) {
		if len(templates) > 0 {
			s.templates = templates
		}
	}
}

// NewSimulator creates a Simulator driving the given controller.
// A nil logger is replaced with a no-op implementation.
func NewSimulator(controller *swarm.Controller, log *logging.Logger, opts ...Option) *Simulator {
	if log == nil {
		log = logging.Nop()
	}
	s := &Simulator{
		controller:   controller,
		log:          log.WithComponent("simulator"),
		tickInterval: defaultTickInterval,
		tasksPerTick: defaultTasksPerTick,
		templates:    TaskTemplates(),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		attached:     make(map[string]string),
		stopped:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetupAgents registers the demo roster and returns the new agent IDs.
func (s *Simulator) SetupAgents() ([]string, error) {
	templates := AgentTemplates()
	count := s.agentCount
	if count <= 0 {
		count = len(templates)
	}

	var ids []string
	for i := 0; i < count; i++ {
		tmpl := templates[i%len(templates)]
		name := tmpl.Name
		if i >= len(templates) {
			name = fmt.Sprintf("%s %d", name, i/len(templates)+1)
		}
		id, err := s.controller.AddAgent(name, tmpl.Capabilities)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Start begins the tick loop in a background goroutine. Call Stop to
// clean up.
func (s *Simulator) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.stopFunc = cancel
	go s.run(ctx)
}

// Stop cancels the tick loop and waits for it to exit. It is safe to
// call Stop even if Start was never called.
func (s *Simulator) Stop() {
	if s.stopFunc != nil {
		s.stopFunc()
		<-s.stopped
	}
}

// Run drives the tick loop on the calling goroutine until the context is
// cancelled or the configured task budget is exhausted.
func (s *Simulator) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	s.stopFunc = cancel
	s.run(ctx)
	if err := ctx.Err(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func (s *Simulator) run(ctx context.Context) {
	defer close(s.stopped)

	if s.tickInterval <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Tick(ctx); err != nil {
				s.log.Error("tick failed", "error", err)
				return
			}
			if s.maxTasks > 0 && s.Resolved() >= s.maxTasks {
				s.log.Info("task budget exhausted", "resolved", s.Resolved())
				if s.stopFunc != nil {
					s.stopFunc()
				}
				return
			}
		}
	}
}

// Tick runs one simulation step: generate tasks, assign pending work,
// and resolve every in-flight task to an outcome.
func (s *Simulator) Tick(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for i := 0; i < s.tasksPerTick; i++ {
		if err := s.generateTask(); err != nil {
			return err
		}
	}

	assignments, err := s.controller.AssignPending(ctx)
	if err != nil {
		return err
	}
	if s.devices != nil {
		for _, a := range assignments {
			s.attachDevice(a.TaskID)
		}
	}

	return s.resolveInFlight(ctx)
}

// Resolved returns how many task outcomes the simulator has produced.
func (s *Simulator) Resolved() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolved
}

func (s *Simulator) generateTask() error {
	s.mu.Lock()
	tmpl := s.templates[s.rng.Intn(len(s.templates))]
	s.mu.Unlock()

	_, err := s.controller.CreateTask(tmpl.Name, tmpl.Description, tmpl.Required, tmpl.Priority, tmpl.Complexity)
	return err
}

func (s *Simulator) attachDevice(taskID string) {
	deviceID, err := s.devices.Attach(taskID, "")
	if err != nil || deviceID == "" {
		return
	}
	s.mu.Lock()
	s.attached[taskID] = deviceID
	s.mu.Unlock()
}

// resolveInFlight decides success or failure for every assigned task.
// The success probability is the assigned agent's mean confidence across
// the required capabilities, discounted by task complexity.
func (s *Simulator) resolveInFlight(ctx context.Context) error {
	registry := s.controller.Registry()
	for _, task := range registry.Tasks() {
		if task.Status != swarm.TaskAssigned {
			continue
		}

		agent, err := registry.Agent(task.AssignedAgent)
		if err != nil {
			return err
		}

		sum := 0.0
		for _, req := range task.Required {
			sum += agent.Confidence(req)
		}
		meanConfidence := sum / float64(len(task.Required))
		successProb := meanConfidence * (1.0 - task.Complexity*0.1)
		if successProb < 0 {
			successProb = 0
		}

		s.mu.Lock()
		success := s.rng.Float64() < successProb
		s.mu.Unlock()

		if err := s.controller.Complete(ctx, task.ID, success); err != nil {
			return err
		}

		s.mu.Lock()
		s.resolved++
		deviceID, held := s.attached[task.ID]
		delete(s.attached, task.ID)
		s.mu.Unlock()
		if held && s.devices != nil {
			s.devices.Release(task.ID)
			s.log.Debug("device freed", "device_id", deviceID, "task_id", task.ID)
		}
	}
	return nil
}
