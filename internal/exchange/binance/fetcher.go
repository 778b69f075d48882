package binance

import (
	"context"
	"fmt"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/sequex/l2book/internal/orderbook"
)

const restDepthLimit = 1000

// DefaultRestURL and DefaultWsURL are the USD-M futures endpoints used
// when EngineConfig leaves the corresponding field at the venue's own
// default. go-binance's futures websocket helpers do not expose a runtime
// override for DefaultWsURL; it exists so callers can validate their
// configuration against it.
const (
	DefaultRestURL = "https://fapi.binance.com"
	DefaultWsURL   = "wss://fstream.binance.com"
)

// SnapshotFetcher implements orderbook.SnapshotFetcher against Binance's
// USD-M futures REST depth endpoint.
type SnapshotFetcher struct {
	client *futures.Client
}

// NewSnapshotFetcher wraps a go-binance futures client pointed at restURL.
// apiKey/secretKey may be empty: depth snapshots are a public endpoint.
func NewSnapshotFetcher(apiKey, secretKey, restURL string) *SnapshotFetcher {
	client := futures.NewClient(apiKey, secretKey)
	client.BaseURL = restURL
	return &SnapshotFetcher{client: client}
}

func (f *SnapshotFetcher) FetchSnapshot(ctx context.Context, symbol string) (orderbook.Update, error) {
	resp, err := f.client.NewDepthService().
		Symbol(symbol).
		Limit(restDepthLimit).
		Do(ctx)
	if err != nil {
		return orderbook.Update{}, fmt.Errorf("fetch depth snapshot for %s: %w", symbol, err)
	}

	bids := make([]orderbook.PriceLevel, len(resp.Bids))
	for i, b := range resp.Bids {
		p, err := orderbook.DecodeNumber(b.Price)
		if err != nil {
			return orderbook.Update{}, fmt.Errorf("decode bid: %w", err)
		}
		s, err := orderbook.DecodeNumber(b.Quantity)
		if err != nil {
			return orderbook.Update{}, fmt.Errorf("decode bid size: %w", err)
		}
		bids[i] = orderbook.PriceLevel{Price: orderbook.Price(p), Size: orderbook.Size(s)}
	}

	asks := make([]orderbook.PriceLevel, len(resp.Asks))
	for i, a := range resp.Asks {
		p, err := orderbook.DecodeNumber(a.Price)
		if err != nil {
			return orderbook.Update{}, fmt.Errorf("decode ask: %w", err)
		}
		s, err := orderbook.DecodeNumber(a.Quantity)
		if err != nil {
			return orderbook.Update{}, fmt.Errorf("decode ask size: %w", err)
		}
		asks[i] = orderbook.PriceLevel{Price: orderbook.Price(p), Size: orderbook.Size(s)}
	}

	seq := orderbook.Sequence(resp.LastUpdateID)
	return orderbook.Update{
		ID:         seq,
		Bids:       bids,
		Asks:       asks,
		IsSnapshot: true,
		TsMs:       uint64(resp.TradeTime),
		Meta: depthMeta{
			previousUpdateID: seq,
			firstUpdateID:    seq,
			lastUpdateID:     seq,
		},
	}, nil
}
