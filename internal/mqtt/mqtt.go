// Package mqtt provides MQTT publishing of lock events with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/keypad-lock/internal/logic"
)

// Topic is the MQTT topic for lock events.
const Topic = "access/keypad/lock/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "access/keypad/lock/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a lock event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event logic.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT", "RECONNECTED"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Lock LockPayload `json:"lock"`
}

// LockPayload contains the lock event details.
type LockPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Button    int    `json:"button"`
	Fill      int    `json:"fill"`
	State     string `json:"state"`
	Indicator string `json:"indicator"`
}

// FormatPayload creates the JSON payload for a lock event.
func FormatPayload(event logic.Event) ([]byte, error) {
	payload := Payload{
		Lock: LockPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     string(event.Type),
			Button:    int(event.Button),
			Fill:      event.Fill,
			State:     string(event.State),
			Indicator: onOff(event.Indicator),
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events (LWT, RECONNECTED) that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp,omitempty"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	inner := SystemPayloadInner{
		Event:  event.Event,
		Reason: event.Reason,
	}
	if !event.Timestamp.IsZero() {
		inner.Timestamp = event.Timestamp.UTC().Format(time.RFC3339)
	}
	return json.Marshal(SystemPayload{System: inner})
}

// WillPayload is the Last Will the broker publishes if the daemon drops off
// without a clean disconnect. It has no timestamp: the broker sends it later.
func WillPayload() []byte {
	data, _ := FormatSystemPayload(SystemEvent{Event: "OFFLINE"})
	return data
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
