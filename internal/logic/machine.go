package logic

import "time"

// Machine is the whole control state of the lock: the sampler's edge
// trackers plus the controller. It is owned by a single loop and is not
// safe for concurrent use.
type Machine struct {
	sampler       *Sampler
	controller    *Controller
	startTime     time.Time
	lastHeartbeat time.Time
}

// NewMachine creates a Machine in the Locked state.
// The startTime is used for calculating uptime in heartbeat events.
func NewMachine(startTime time.Time) *Machine {
	return &Machine{
		sampler:       NewSampler(),
		controller:    NewController(),
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Tick runs one iteration: sample the levels, feed the presses to the
// controller in button order, and report what the caller must do.
func (m *Machine) Tick(levels Levels, now time.Time) Output {
	presses := m.sampler.Sample(levels)
	if len(presses) == 0 {
		return Output{Indicator: m.controller.Indicator()}
	}
	events, changed := m.controller.Process(presses, now)
	return Output{
		Presses:          presses,
		Events:           events,
		IndicatorChanged: changed,
		Indicator:        m.controller.Indicator(),
	}
}

// State returns the current lock state.
func (m *Machine) State() State {
	return m.controller.State()
}

// Indicator returns the current indicator level.
func (m *Machine) Indicator() bool {
	return m.controller.Indicator()
}

// Fill returns the number of buffered digits.
func (m *Machine) Fill() int {
	return m.controller.Fill()
}

// EventCountsSnapshot returns a copy of the current event counts.
func (m *Machine) EventCountsSnapshot() EventCounts {
	return m.controller.Counts()
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if the interval has not elapsed,
// or if interval is <= 0 (disabled).
func (m *Machine) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}
	if now.Sub(m.lastHeartbeat) < interval {
		return nil
	}
	m.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(m.startTime),
		Counts:    m.controller.Counts(),
	}
}
