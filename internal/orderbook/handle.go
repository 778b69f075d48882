package orderbook

import (
	"context"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BookWriter is the producer-facing facade: a cheap, clonable handle that
// enqueues updates onto the engine's inbound mailbox. Sends never block the
// caller on a closed mailbox — they are swallowed, matching the
// fire-and-forget style of a websocket callback that cannot itself fail.
type BookWriter struct {
	inbound chan<- message
}

// Update enqueues a normalized update for processing. Errors (closed
// mailbox) are swallowed; the caller has no way to observe backpressure
// besides the call blocking until the mailbox has room.
func (w BookWriter) Update(u Update) {
	defer func() { _ = recover() }() // swallow send-on-closed-channel panics
	w.inbound <- message{update: &u}
}

// Clone returns an independent BookWriter sharing the same mailbox. Updates
// enqueued by different clones interleave arbitrarily in FIFO mailbox order.
func (w BookWriter) Clone() BookWriter {
	return w
}

// BookHandle is the consumer-facing facade. Created alongside a BookWriter
// by NewEngine, it owns a dedicated subscription to the engine's published
// snapshots, independent of any other Subscribe callback.
type BookHandle struct {
	recv  <-chan BookSnapshot
	reqs  chan<- message
	bus   evbus.Bus
	topic string
}

// Recv awaits the next published BookSnapshot, returning ok=false once the
// channel is closed (the engine has shut down).
func (h BookHandle) Recv() (BookSnapshot, bool) {
	snap, ok := <-h.recv
	return snap, ok
}

// RequestSnapshot asks the actor for the current book state out of band,
// bypassing the publication cadence. It blocks until the actor replies or
// ctx is done.
func (h BookHandle) RequestSnapshot(ctx context.Context) (BookSnapshot, error) {
	reply := make(chan BookSnapshot, 1)
	select {
	case h.reqs <- message{reply: reply}:
	case <-ctx.Done():
		return BookSnapshot{}, ctx.Err()
	}
	select {
	case snap := <-reply:
		return snap, nil
	case <-ctx.Done():
		return BookSnapshot{}, ctx.Err()
	}
}

// Subscribe registers callback to be invoked, in its own goroutine, with
// every snapshot published on this engine. This supplements the single
// Recv() consumer for cases with more than one local observer of the same
// book. transactional=true so EventBus serializes successive Publish calls
// on h.topic through a per-topic lock; without it two close-together
// snapshots could invoke callback out of publish order.
func (h BookHandle) Subscribe(callback func(BookSnapshot)) error {
	return h.bus.SubscribeAsync(h.topic, callback, true)
}

// Unsubscribe removes a callback registered with Subscribe.
func (h BookHandle) Unsubscribe(callback func(BookSnapshot)) error {
	return h.bus.Unsubscribe(h.topic, callback)
}

// NewEngine wires a SyncFSM, a BookSequencer, and a SnapshotFetcher into a
// running BookProcessor actor, returning the external facades. The actor
// terminates when ctx is cancelled; dropping every BookWriter clone does
// not stop it.
func NewEngine(ctx context.Context, symbol string, sequencer BookSequencer, fetcher SnapshotFetcher, depth int, pubInterval time.Duration, log zerolog.Logger) (BookHandle, BookWriter) {
	engineID := uuid.New().String()
	processor := newBookProcessor(symbol, sequencer, fetcher, depth, pubInterval, log.With().Str("engine_id", engineID).Logger())

	go processor.run(ctx)

	bus := evbus.New()
	topic := "book:" + symbol

	// transactional=true: EventBus takes a per-topic lock around each
	// Publish, so this handler and any other Subscribe callback on topic
	// run one at a time in publish order instead of racing across
	// goroutines.
	recvC := make(chan BookSnapshot, outboundPublicationCapacity)
	_ = bus.SubscribeAsync(topic, func(snap BookSnapshot) {
		select {
		case recvC <- snap:
		default:
		}
	}, true)

	go fanOutToBus(ctx, processor.outbound, bus, topic, recvC)

	handle := BookHandle{
		recv:  recvC,
		reqs:  processor.inbound,
		bus:   bus,
		topic: topic,
	}
	writer := BookWriter{
		inbound: processor.inbound,
	}
	return handle, writer
}

// fanOutToBus is the sole consumer of the actor's outbound channel. It
// republishes every snapshot onto bus, which both Recv's internal
// subscription and any caller-registered Subscribe callback observe, and
// closes recvC once the actor stops so Recv() unblocks with ok=false.
func fanOutToBus(ctx context.Context, outbound <-chan BookSnapshot, bus evbus.Bus, topic string, recvC chan<- BookSnapshot) {
	defer close(recvC)
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-outbound:
			if !ok {
				return
			}
			bus.Publish(topic, snap)
		}
	}
}
