package orderbook

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// inboundMailboxCapacity and outboundPublicationCapacity bound the actor's
// mailbox and publication channel so a slow consumer applies backpressure
// instead of letting either queue grow without limit.
const (
	inboundMailboxCapacity      = 50
	outboundPublicationCapacity = 1000
)

// message is the sum type carried on the inbound mailbox: either an Update
// to apply or a RequestSnapshot query. Exactly one of the two fields is set.
type message struct {
	update *Update
	reply  chan<- BookSnapshot
}

// BookProcessor is the concurrent actor wrapping a SyncFSM. It is the only
// goroutine that ever touches its FSM, so the ladders, buffer, state, and
// sequence counters never need locking.
type BookProcessor struct {
	symbol      string
	fsm         *SyncFSM
	fetcher     SnapshotFetcher
	depth       int
	pubInterval time.Duration

	inbound  chan message
	outbound chan BookSnapshot

	snapAt time.Time
	pubAt  time.Time // zero means "not yet scheduled"

	log zerolog.Logger
}

func newBookProcessor(symbol string, sequencer BookSequencer, fetcher SnapshotFetcher, depth int, pubInterval time.Duration, log zerolog.Logger) *BookProcessor {
	return &BookProcessor{
		symbol:      symbol,
		fsm:         NewSyncFSM(sequencer),
		fetcher:     fetcher,
		depth:       depth,
		pubInterval: pubInterval,
		inbound:     make(chan message, inboundMailboxCapacity),
		outbound:    make(chan BookSnapshot, outboundPublicationCapacity),
		log:         log.With().Str("symbol", symbol).Logger(),
	}
}

// run is the actor's main loop. It is single-threaded by construction: the
// FSM mutates synchronously between the suspension points below. run
// terminates when ctx is cancelled or the inbound mailbox is closed;
// nothing in this package closes the mailbox, so dropping every BookWriter
// clone does not stop it.
func (p *BookProcessor) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-p.inbound:
			if !ok {
				return
			}
			if msg.update != nil {
				p.onUpdate(ctx, *msg.update)
				continue
			}
			if msg.reply != nil {
				p.onRequestSnapshot(msg.reply)
			}
		}
	}
}

func (p *BookProcessor) onUpdate(ctx context.Context, u Update) {
	for {
		action := p.fsm.Update(u)
		// After a failed fetch the FSM is still WaitingForSnapshot and only
		// buffers u; treat that as NeedSnapshot so this update re-arms the fetch.
		if action == Ok && p.snapAt.IsZero() && p.fsm.State() == WaitingForSnapshot {
			action = NeedSnapshot
		}
		if action == Ok {
			break
		}

		p.pubAt = time.Time{}
		p.snapAt = time.Time{}

		snap, err := p.fetcher.FetchSnapshot(ctx, p.symbol)
		if err != nil {
			p.log.Warn().Err(err).Msg("snapshot fetch failed, waiting for next update to re-arm")
			return
		}
		p.snapAt = time.Now()
		u = snap
	}

	p.publish(ctx)
}

func (p *BookProcessor) onRequestSnapshot(reply chan<- BookSnapshot) {
	select {
	case reply <- p.fsm.Snapshot(p.depth):
	default:
	}
}

// publish governs rate-limited outbound emission, aligning the publication
// cadence to the snapAt + k*pubInterval grid so it never drifts with
// processing latency.
func (p *BookProcessor) publish(ctx context.Context) {
	if p.snapAt.IsZero() {
		return
	}

	base := p.pubAt
	if base.IsZero() {
		base = p.snapAt
	}
	candidate := base.Add(p.pubInterval)

	if time.Now().Before(candidate) {
		return
	}

	// The outbound channel is bounded; a slow consumer deliberately stalls
	// this actor rather than have it drop snapshots. ctx.Done() is the only
	// way out of that stall, standing in for "the receiver is gone."
	select {
	case p.outbound <- p.fsm.Snapshot(p.depth):
		p.pubAt = candidate
	case <-ctx.Done():
	}
}
