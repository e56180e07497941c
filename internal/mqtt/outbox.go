package mqtt

import "log"

// bufferedMsg stores a serialized MQTT message for replay after reconnection.
type bufferedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// outbox holds messages published while the broker is unreachable.
// When full, the oldest message is dropped.
// Not safe for concurrent use; RealPublisher guards it with its mutex.
type outbox struct {
	msgs     []bufferedMsg
	capacity int
	dropped  int // messages lost since the last drain
}

func newOutbox(capacity int) *outbox {
	return &outbox{
		msgs:     make([]bufferedMsg, 0, capacity),
		capacity: capacity,
	}
}

func (o *outbox) push(msg bufferedMsg) {
	if len(o.msgs) == o.capacity {
		if o.dropped == 0 {
			log.Printf("mqtt: outbox full (%d messages), dropping oldest", o.capacity)
		}
		o.dropped++
		copy(o.msgs, o.msgs[1:])
		o.msgs = o.msgs[:len(o.msgs)-1]
	}
	o.msgs = append(o.msgs, msg)
}

// drain returns the queued messages oldest first, plus how many were
// dropped, and empties the outbox.
func (o *outbox) drain() ([]bufferedMsg, int) {
	if len(o.msgs) == 0 && o.dropped == 0 {
		return nil, 0
	}
	msgs := make([]bufferedMsg, len(o.msgs))
	copy(msgs, o.msgs)
	dropped := o.dropped

	o.msgs = o.msgs[:0]
	o.dropped = 0
	return msgs, dropped
}

func (o *outbox) len() int {
	return len(o.msgs)
}
