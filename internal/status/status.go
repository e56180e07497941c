// Package status provides a thread-safe status tracker for the keypad-lock daemon.
// It is read by the HTTP handlers and used to build MQTT system events.
package status

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sweeney/keypad-lock/internal/logic"
)

// NetworkInfo contains network state as reported by pi-helper.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains daemon configuration for display.
type Config struct {
	TickMs      int64
	HeartbeatMs int64
	Broker      string
	HTTPAddr    string
	Chip        string
	Buttons     []int
	LED         int
	ActiveLow   bool
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type and safe to use after the lock is released.
// The buffered digits are never copied out; only the fill count is.
type Snapshot struct {
	State         logic.State
	Indicator     bool
	Fill          int
	Ready         bool // the control loop has completed a tick
	Counts        logic.EventCounts
	BootID        string
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       *NetworkInfo
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
// Each tracker gets a fresh boot id so consumers can tell restarts apart.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			BootID:    uuid.NewString(),
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the lock state, indicator, buffer fill and event counts.
// Called from runLoop on every tick.
func (t *Tracker) Update(state logic.State, indicator bool, fill int, counts logic.EventCounts) {
	t.mu.Lock()
	t.snap.State = state
	t.snap.Indicator = indicator
	t.snap.Fill = fill
	t.snap.Counts = counts
	t.snap.Ready = true
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
