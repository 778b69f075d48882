package binance

import (
	"context"
	"sync"

	"github.com/sequex/l2book/internal/orderbook"
	"github.com/sequex/l2book/internal/orderbook/keyedlist"
)

// inFlightCall is the shared result of one REST round trip; every caller
// that coalesces onto it waits on done and reads result/err afterward.
type inFlightCall struct {
	done   chan struct{}
	result orderbook.Update
	err    error
}

// DedupingFetcher wraps a SnapshotFetcher so that concurrent callers asking
// for the same symbol share a single REST round trip instead of each
// issuing their own. Engines typically fetch serially for their own
// symbol, but a process hosting many engines behind one shared fetcher can
// otherwise stampede the REST endpoint when several engines resync at
// once.
type DedupingFetcher struct {
	inner    orderbook.SnapshotFetcher
	mu       sync.Mutex
	inFlight *keyedlist.List[string, *inFlightCall]
}

// NewDedupingFetcher wraps inner with per-symbol in-flight coalescing.
func NewDedupingFetcher(inner orderbook.SnapshotFetcher) *DedupingFetcher {
	return &DedupingFetcher{
		inner:    inner,
		inFlight: keyedlist.New[string, *inFlightCall](),
	}
}

func (f *DedupingFetcher) FetchSnapshot(ctx context.Context, symbol string) (orderbook.Update, error) {
	f.mu.Lock()
	if call, ok := f.inFlight.Get(symbol); ok {
		f.mu.Unlock()
		return f.await(ctx, call)
	}

	call := &inFlightCall{done: make(chan struct{})}
	f.inFlight.PushBack(symbol, call)
	f.mu.Unlock()

	call.result, call.err = f.inner.FetchSnapshot(ctx, symbol)

	f.mu.Lock()
	f.inFlight.RemoveKey(symbol)
	f.mu.Unlock()
	close(call.done)

	return call.result, call.err
}

func (f *DedupingFetcher) await(ctx context.Context, call *inFlightCall) (orderbook.Update, error) {
	select {
	case <-call.done:
		return call.result, call.err
	case <-ctx.Done():
		return orderbook.Update{}, ctx.Err()
	}
}
