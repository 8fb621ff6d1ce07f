package device

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/qfoxlabs/qfox/internal/errors"
	"github.com/qfoxlabs/qfox/internal/event"
	"github.com/qfoxlabs/qfox/internal/logging"
)

// defaultReadingInterval is how often Run samples the fleet when the
// caller does not supply an interval.
const defaultReadingInterval = 2 * time.Second

// Status is a read-only snapshot of one device for dashboards.
type Status struct {
	ID           string
	Name         string
	Type         Type
	Online       bool
	Busy         bool
	AssignedTask string

	BatteryLevel   float64
	SignalStrength float64
	LastReading    map[string]float64
}

// Manager owns the simulated fleet. It is safe for concurrent use.
type Manager struct {
	mu      sync.Mutex
	devices map[string]*Device
	order   []string
	rng     *rand.Rand

	bus *event.Bus
	log *logging.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithSeed seeds the fleet's random source for reproducible readings.
func WithSeed(seed int64) Option {
	return func(m *Manager) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// NewManager creates a fleet with countPerType devices of each type.
// A nil bus or logger is replaced with a no-op implementation.
func NewManager(countPerType int, bus *event.Bus, log *logging.Logger, opts ...Option) *Manager {
	if countPerType < 1 {
		countPerType = 1
	}
	if bus == nil {
		bus = event.NewBus()
	}
	if log == nil {
		log = logging.Nop()
	}

	m := &Manager{
		devices: make(map[string]*Device),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		bus:     bus,
		log:     log.WithComponent("devices"),
	}
	for _, opt := range opts {
		opt(m)
	}

	for _, t := range Types() {
		for i := 1; i <= countPerType; i++ {
			d := newDevice(t, i, m.rng)
			m.devices[d.ID] = d
			m.order = append(m.order, d.ID)
		}
	}
	sort.Strings(m.order)
	return m
}

// Count returns the number of devices in the fleet.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.devices)
}

// Poll samples every device once, publishing a reading event per device.
func (m *Manager) Poll() []Reading {
	m.mu.Lock()
	readings := make([]Reading, 0, len(m.order))
	for _, id := range m.order {
		readings = append(readings, m.devices[id].sample(m.rng))
	}
	m.mu.Unlock()

	for _, r := range readings {
		m.bus.Publish(event.NewDeviceReadingEvent(r.DeviceID, string(r.Type), r.Values))
	}
	return readings
}

// Run polls the fleet on the given interval until the context is
// cancelled. A zero or negative interval falls back to the default.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultReadingInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Poll()
		}
	}
}

// Statuses returns a snapshot of every device, sorted by ID.
func (m *Manager) Statuses() []Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Status, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.statusLocked(m.devices[id]))
	}
	return out
}

func (m *Manager) statusLocked(d *Device) Status {
	last := make(map[string]float64, len(d.lastReading))
	for k, v := range d.lastReading {
		last[k] = v
	}
	return Status{
		ID:             d.ID,
		Name:           d.Name,
		Type:           d.Type,
		Online:         true,
		Busy:           d.assignedTask != "",
		AssignedTask:   d.assignedTask,
		BatteryLevel:   d.battery,
		SignalStrength: d.signal,
		LastReading:    last,
	}
}

// Available returns snapshots of idle devices whose type matches the
// keyword. An empty keyword matches every type.
func (m *Manager) Available(keyword string) []Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	keyword = strings.ToLower(keyword)
	var out []Status
	for _, id := range m.order {
		d := m.devices[id]
		if d.assignedTask != "" {
			continue
		}
		if keyword != "" && !strings.Contains(string(d.Type), keyword) {
			continue
		}
		out = append(out, m.statusLocked(d))
	}
	return out
}

// Attach binds a task to the first idle device matching the keyword and
// returns its ID. An empty ID with nil error means no device was free.
func (m *Manager) Attach(taskID, keyword string) (string, error) {
	if taskID == "" {
		return "", errors.NewValidationError("task ID must not be empty").WithField("task_id")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	keyword = strings.ToLower(keyword)
	for _, id := range m.order {
		d := m.devices[id]
		if d.assignedTask != "" {
			continue
		}
		if keyword != "" && !strings.Contains(string(d.Type), keyword) {
			continue
		}
		d.assignedTask = taskID
		m.log.Debug("device attached", "device_id", d.ID, "task_id", taskID)
		return d.ID, nil
	}
	return "", nil
}

// Release frees whichever device holds the given task. Releasing a task
// no device holds is a no-op returning false.
func (m *Manager) Release(taskID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range m.order {
		d := m.devices[id]
		if d.assignedTask == taskID {
			d.assignedTask = ""
			m.log.Debug("device released", "device_id", d.ID, "task_id", taskID)
			return true
		}
	}
	return false
}
