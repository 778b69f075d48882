package orderbook

// BookSequencer supplies the three exchange-specific predicates the engine
// needs to reason about gaps without ever inspecting a venue's payload
// directly. Implementations must be pure and side-effect free.
type BookSequencer interface {
	// IsFirstEvent reports whether u is the incremental that bridges a
	// just-applied snapshot at cur.
	IsFirstEvent(cur Sequence, u Update) bool
	// IsStale reports whether the snapshot at cur is older than the start
	// of u, so u cannot bridge it; the FSM answers with a reset and
	// NeedSnapshot.
	IsStale(cur Sequence, u Update) bool
	// IsNext reports whether u is the immediate successor of cur.
	IsNext(cur Sequence, u Update) bool
}

// Action is the result of feeding an Update through the FSM.
type Action int

const (
	// Ok means no resync is required: the update (or the drained buffer)
	// was applied, buffered while waiting for a snapshot, or discarded.
	Ok Action = iota
	// NeedSnapshot means the caller must fetch a fresh snapshot and feed
	// it back through Update before any further incrementals.
	NeedSnapshot
)

func (a Action) String() string {
	if a == NeedSnapshot {
		return "NeedSnapshot"
	}
	return "Ok"
}

// EngineState is the FSM's current synchronization phase.
type EngineState int

const (
	Init EngineState = iota
	WaitingForSnapshot
	Synchronizing
	Processing
)

func (s EngineState) String() string {
	switch s {
	case WaitingForSnapshot:
		return "WaitingForSnapshot"
	case Synchronizing:
		return "Synchronizing"
	case Processing:
		return "Processing"
	default:
		return "Init"
	}
}

// SyncFSM is the pure, single-threaded synchronization state machine. It
// owns the two price ladders, the replay buffer, the current sequence, and
// the state — nothing else touches them. Callers drive it exclusively
// through Update and Snapshot.
type SyncFSM struct {
	state       EngineState
	bids        *BookLadder
	asks        *BookLadder
	buffer      *replayBuffer
	curSequence Sequence
	tsMs        uint64
	sequencer   BookSequencer
}

// NewSyncFSM constructs an FSM in the Init state, ready to receive its first
// update (which will always trigger NeedSnapshot).
func NewSyncFSM(sequencer BookSequencer) *SyncFSM {
	return &SyncFSM{
		state:     Init,
		bids:      newBookLadder(),
		asks:      newBookLadder(),
		buffer:    newReplayBuffer(),
		sequencer: sequencer,
	}
}

// State returns the FSM's current phase. Exposed for tests and diagnostics.
func (f *SyncFSM) State() EngineState {
	return f.state
}

// CurSequence returns the sequence of the most recently applied update.
func (f *SyncFSM) CurSequence() Sequence {
	return f.curSequence
}

// Update feeds one normalized update through the FSM and returns the action
// the caller must take.
func (f *SyncFSM) Update(u Update) Action {
	return f.processOrder(u)
}

// Snapshot projects the first depth entries of each ladder into a
// BookSnapshot: bids from highest price to lowest, asks from lowest to
// highest.
func (f *SyncFSM) Snapshot(depth int) BookSnapshot {
	return BookSnapshot{
		Bids: f.bids.top(depth, true),
		Asks: f.asks.top(depth, false),
		TsMs: f.tsMs,
	}
}

func (f *SyncFSM) processOrder(u Update) Action {
	switch f.state {
	case Init:
		f.state = WaitingForSnapshot
		return NeedSnapshot

	case WaitingForSnapshot:
		if u.IsSnapshot {
			f.applyOrder(u)
			f.state = Synchronizing
			return f.drainBuffer()
		}
		f.buffer.push(u)
		return Ok

	case Synchronizing:
		if f.sequencer.IsFirstEvent(f.curSequence, u) {
			f.applyOrder(u)
			f.state = Processing
			return Ok
		}
		if f.sequencer.IsStale(f.curSequence, u) {
			return f.reset()
		}
		return Ok

	case Processing:
		if f.sequencer.IsNext(f.curSequence, u) {
			f.applyOrder(u)
			return Ok
		}
		return f.reset()

	default:
		return f.reset()
	}
}

// drainBuffer replays buffered incrementals FIFO after a snapshot apply,
// stopping and surfacing the first non-Ok result. The remaining buffered
// items are discarded by the reset that follows.
func (f *SyncFSM) drainBuffer() Action {
	action := Ok
	for {
		u, ok := f.buffer.popFront()
		if !ok {
			break
		}
		action = f.processOrder(u)
		if action != Ok {
			return action
		}
	}
	return action
}

func (f *SyncFSM) reset() Action {
	f.state = WaitingForSnapshot
	f.buffer.clear()
	return NeedSnapshot
}

func (f *SyncFSM) applyOrder(u Update) {
	f.curSequence = u.ID
	f.tsMs = u.TsMs

	if u.IsSnapshot {
		f.bids.clear()
		f.asks.clear()
	}

	for _, lvl := range u.Bids {
		f.bids.set(lvl.Price, lvl.Size)
	}
	for _, lvl := range u.Asks {
		f.asks.set(lvl.Price, lvl.Size)
	}
}
