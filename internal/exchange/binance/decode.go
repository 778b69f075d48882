package binance

import (
	"fmt"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/sequex/l2book/internal/orderbook"
)

// DecodeDepthEvent converts one USD-M futures diff-depth event into a
// normalized orderbook.Update, parsing every price/size string through
// orderbook.DecodeNumber so the engine never touches floating point.
func DecodeDepthEvent(ev *futures.WsDepthEvent) (orderbook.Update, error) {
	bidLevels := make([]bidLevel, len(ev.Bids))
	for i, b := range ev.Bids {
		bidLevels[i] = bidLevel(b)
	}
	askLevels := make([]askLevel, len(ev.Asks))
	for i, a := range ev.Asks {
		askLevels[i] = askLevel(a)
	}

	bids, err := decodeLevels(bidLevels)
	if err != nil {
		return orderbook.Update{}, fmt.Errorf("decode bids: %w", err)
	}
	asks, err := decodeLevels(askLevels)
	if err != nil {
		return orderbook.Update{}, fmt.Errorf("decode asks: %w", err)
	}

	return orderbook.Update{
		ID:         orderbook.Sequence(ev.LastUpdateID),
		Bids:       bids,
		Asks:       asks,
		IsSnapshot: false,
		TsMs:       uint64(ev.Time),
		Meta: depthMeta{
			previousUpdateID: orderbook.Sequence(ev.PrevLastUpdateID),
			firstUpdateID:    orderbook.Sequence(ev.FirstUpdateID),
			lastUpdateID:     orderbook.Sequence(ev.LastUpdateID),
		},
	}, nil
}

type bidLevel futures.Bid

func (b bidLevel) price() string { return b.Price }
func (b bidLevel) size() string  { return b.Quantity }

type askLevel futures.Ask

func (a askLevel) price() string { return a.Price }
func (a askLevel) size() string  { return a.Quantity }

func decodeLevels[T interface {
	price() string
	size() string
}](raw []T) ([]orderbook.PriceLevel, error) {
	out := make([]orderbook.PriceLevel, len(raw))
	for i, r := range raw {
		p, err := orderbook.DecodeNumber(r.price())
		if err != nil {
			return nil, err
		}
		s, err := orderbook.DecodeNumber(r.size())
		if err != nil {
			return nil, err
		}
		out[i] = orderbook.PriceLevel{Price: orderbook.Price(p), Size: orderbook.Size(s)}
	}
	return out, nil
}
