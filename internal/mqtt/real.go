package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/sweeney/keypad-lock/internal/logic"
)

const (
	// outboxCapacity bounds how many messages are kept while disconnected.
	outboxCapacity = 256
	publishTimeout = 5 * time.Second
)

// client is the subset of paho.Client the publisher uses.
type client interface {
	IsConnectionOpen() bool
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

// RealPublisher publishes to an actual MQTT broker. Publishing never waits
// on the network: while the connection is down messages are queued and
// replayed on reconnect.
type RealPublisher struct {
	mu        sync.Mutex
	client    client
	outbox    *outbox
	connected bool // set after the first successful connect
	now       func() time.Time
}

// NewRealPublisher creates a publisher for the given broker. The connection
// is made in the background and retried until it succeeds, so startup does
// not depend on the broker being up.
func NewRealPublisher(broker, clientID string) *RealPublisher {
	p := newPublisher(nil)

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5*time.Second).
		SetWriteTimeout(publishTimeout).
		SetWill(TopicSystem, string(WillPayload()), 1, true).
		SetOnConnectHandler(func(paho.Client) { p.onConnect() }).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Printf("mqtt: connection lost: %v", err)
		})

	c := paho.NewClient(opts)
	p.mu.Lock()
	p.client = c
	p.mu.Unlock()
	c.Connect()

	return p
}

func newPublisher(c client) *RealPublisher {
	return &RealPublisher{
		client: c,
		outbox: newOutbox(outboxCapacity),
		now:    time.Now,
	}
}

// Publish sends a lock event to the MQTT broker (QoS 0, not retained).
func (p *RealPublisher) Publish(event logic.Event) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	p.send(bufferedMsg{topic: Topic, payload: payload})
	return nil
}

// PublishSystem sends a system lifecycle event to the MQTT broker (QoS 1).
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	p.send(bufferedMsg{topic: TopicSystem, payload: payload, qos: 1, retained: event.Retained})
	return nil
}

func (p *RealPublisher) send(msg bufferedMsg) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client == nil || !p.client.IsConnectionOpen() {
		p.outbox.push(msg)
		return
	}
	p.publishLocked(msg)
}

func (p *RealPublisher) publishLocked(msg bufferedMsg) {
	token := p.client.Publish(msg.topic, msg.qos, msg.retained, msg.payload)
	go func() {
		if !token.WaitTimeout(publishTimeout) {
			log.Printf("mqtt: publish to %s timed out", msg.topic)
			return
		}
		if err := token.Error(); err != nil {
			log.Printf("mqtt: publish to %s: %v", msg.topic, err)
		}
	}()
}

// onConnect replays queued messages and, on every connect after the first,
// announces the reconnection.
func (p *RealPublisher) onConnect() {
	p.mu.Lock()
	defer p.mu.Unlock()

	pending, dropped := p.outbox.drain()
	for _, msg := range pending {
		p.publishLocked(msg)
	}
	if len(pending) > 0 || dropped > 0 {
		log.Printf("mqtt: replayed %d queued messages (%d dropped)", len(pending), dropped)
	}

	if !p.connected {
		p.connected = true
		log.Printf("mqtt: connected")
		return
	}

	payload, err := FormatSystemPayload(SystemEvent{Timestamp: p.now(), Event: "RECONNECTED"})
	if err != nil {
		log.Printf("mqtt: format reconnect payload: %v", err)
		return
	}
	p.publishLocked(bufferedMsg{topic: TopicSystem, payload: payload, qos: 1})
}

// IsConnected reports whether the connection to the broker is up.
func (p *RealPublisher) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.client != nil && p.client.IsConnectionOpen()
}

// Queued returns the number of messages waiting for a connection.
func (p *RealPublisher) Queued() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.outbox.len()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.mu.Lock()
	c := p.client
	p.mu.Unlock()
	if c != nil {
		c.Disconnect(1000) // 1 second timeout
	}
	return nil
}
