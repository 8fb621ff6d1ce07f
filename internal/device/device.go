// Package device simulates a small fleet of monitoring devices that
// produce synthetic readings. The fleet is decorative workload for demo
// runs: devices can be attached to tasks by capability keyword and
// release themselves when the task completes.
package device

import (
	"fmt"
	"math/rand"
	"time"
)

// Type identifies a kind of simulated device.
type Type string

const (
	TypeCPU       Type = "cpu"
	TypeRAM       Type = "ram"
	TypeDisk      Type = "disk"
	TypeSensorHub Type = "sensor_hub"
)

// Types returns all device types in a fixed order.
func Types() []Type {
	return []Type{TypeCPU, TypeRAM, TypeDisk, TypeSensorHub}
}

// displayName returns the human-readable name for a device type.
func (t Type) displayName() string {
	switch t {
	case TypeCPU:
		return "CPU Sensor"
	case TypeRAM:
		return "RAM Monitor"
	case TypeDisk:
		return "Disk Scanner"
	case TypeSensorHub:
		return "Sensor Hub"
	default:
		return string(t)
	}
}

// Reading is one sample of named values from a device.
type Reading struct {
	DeviceID string
	Type     Type
	Values   map[string]float64
	Taken    time.Time
}

// Device is one simulated fleet member. Readings, battery drain, and
// signal drift are driven by the manager's random source; devices are not
// safe for concurrent use on their own and are always accessed under the
// manager's lock.
type Device struct {
	ID   string
	Name string
	Type Type

	battery float64
	signal  float64

	assignedTask string
	lastReading  map[string]float64
}

func newDevice(t Type, seq int, rng *rand.Rand) *Device {
	return &Device{
		ID:      fmt.Sprintf("%s-%02d", t, seq),
		Name:    t.displayName(),
		Type:    t,
		battery: 60 + rng.Float64()*40,
		signal:  70 + rng.Float64()*30,
	}
}

// sample generates one synthetic reading, drains the battery a little,
// and drifts the signal strength.
func (d *Device) sample(rng *rand.Rand) Reading {
	values := make(map[string]float64)
	switch d.Type {
	case TypeCPU:
		values["temperature"] = uniform(rng, 35, 80)
		values["usage_percent"] = uniform(rng, 5, 95)
	case TypeRAM:
		values["used_gb"] = uniform(rng, 1, 15)
		values["available_gb"] = uniform(rng, 1, 16)
	case TypeDisk:
		values["disk_used_percent"] = uniform(rng, 20, 90)
		values["disk_read_speed"] = uniform(rng, 100, 500)
	case TypeSensorHub:
		values["temperature"] = uniform(rng, 15, 35)
		values["humidity"] = uniform(rng, 30, 70)
		if rng.Intn(2) == 1 {
			values["motion_detected"] = 1
		} else {
			values["motion_detected"] = 0
		}
	}

	d.battery = max(0, d.battery-rng.Float64()*0.1)
	d.signal = clamp(d.signal+uniform(rng, -0.5, 0.5), 0, 100)
	d.lastReading = values

	return Reading{
		DeviceID: d.ID,
		Type:     d.Type,
		Values:   values,
		Taken:    time.Now(),
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
