package binance

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sequex/l2book/internal/orderbook"
	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	calls atomic.Int64
	delay time.Duration
}

func (f *countingFetcher) FetchSnapshot(ctx context.Context, symbol string) (orderbook.Update, error) {
	f.calls.Add(1)
	time.Sleep(f.delay)
	return orderbook.Update{ID: orderbook.Sequence(1), IsSnapshot: true}, nil
}

func TestDedupingFetcher_CoalescesConcurrentCalls(t *testing.T) {
	inner := &countingFetcher{delay: 20 * time.Millisecond}
	fetcher := NewDedupingFetcher(inner)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, err := fetcher.FetchSnapshot(context.Background(), "BTCUSDT")
			require.NoError(t, err)
			require.Equal(t, orderbook.Sequence(1), u.ID)
		}()
	}
	wg.Wait()

	require.Equal(t, int64(1), inner.calls.Load())
}

func TestDedupingFetcher_SequentialCallsEachFetch(t *testing.T) {
	inner := &countingFetcher{}
	fetcher := NewDedupingFetcher(inner)

	_, err := fetcher.FetchSnapshot(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	_, err = fetcher.FetchSnapshot(context.Background(), "BTCUSDT")
	require.NoError(t, err)

	require.Equal(t, int64(2), inner.calls.Load())
}
