package events

import (
	"sync"

	"github.com/propchain/bridge/pkg/types"
	"github.com/rs/zerolog/log"
)

// SubscribeAll receives every envelope regardless of destination chain;
// the audit archive uses it.
const SubscribeAll = types.ChainID("*")

const defaultBufferSize = 64

// EventBus fans bridge notifications out to per-destination-chain
// subscribers. Publishing never blocks: a subscriber that stops
// draining its channel loses envelopes and a warning is logged.
type EventBus struct {
	mu       sync.RWMutex
	channels map[types.ChainID][]chan *types.EventEnvelope
	bufSize  int
}

func NewEventBus() *EventBus {
	return &EventBus{
		channels: make(map[types.ChainID][]chan *types.EventEnvelope),
		bufSize:  defaultBufferSize,
	}
}

// Publish broadcasts the envelope to the destination chain's
// subscribers and to wildcard subscribers.
func (eb *EventBus) Publish(envelope *types.EventEnvelope) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for _, ch := range eb.channels[envelope.DestinationChain] {
		eb.send(ch, envelope)
	}
	for _, ch := range eb.channels[SubscribeAll] {
		eb.send(ch, envelope)
	}
}

func (eb *EventBus) send(ch chan *types.EventEnvelope, envelope *types.EventEnvelope) {
	select {
	case ch <- envelope:
	default:
		log.Warn().
			Str("event", envelope.Event).
			Uint64("requestId", envelope.RequestID).
			Msg("[EventBus] [Publish] subscriber channel full, envelope dropped")
	}
}

// Subscribe returns a channel carrying every envelope destined for the
// given chain. Pass SubscribeAll for the full stream.
func (eb *EventBus) Subscribe(destinationChain types.ChainID) <-chan *types.EventEnvelope {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	ch := make(chan *types.EventEnvelope, eb.bufSize)
	eb.channels[destinationChain] = append(eb.channels[destinationChain], ch)
	return ch
}
