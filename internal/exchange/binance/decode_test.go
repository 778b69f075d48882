package binance

import (
	"testing"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/sequex/l2book/internal/orderbook"
	"github.com/stretchr/testify/require"
)

func TestDecodeDepthEvent(t *testing.T) {
	ev := &futures.WsDepthEvent{
		Event:             "depthUpdate",
		Time:              1571889248277,
		TransactionTime:   1571889248276,
		Symbol:            "BTCUSDT",
		FirstUpdateID:     390497796,
		LastUpdateID:      390497878,
		PrevLastUpdateID:  390497794,
		Bids: []futures.Bid{
			{Price: "7403.89", Quantity: "0.002"},
			{Price: "7403.90", Quantity: "3.906"},
		},
		Asks: []futures.Ask{
			{Price: "7405.96", Quantity: "3.340"},
		},
	}

	u, err := DecodeDepthEvent(ev)
	require.NoError(t, err)
	require.Equal(t, orderbook.Sequence(390497878), u.ID)
	require.False(t, u.IsSnapshot)
	require.Len(t, u.Bids, 2)
	require.Equal(t, orderbook.Price(74_038_900_000_000), u.Bids[0].Price)
	require.Equal(t, orderbook.Size(20_000_000), u.Bids[0].Size)
	require.Equal(t, orderbook.Price(74_059_600_000_000), u.Asks[0].Price)

	m := metaOf(u)
	require.Equal(t, orderbook.Sequence(390497794), m.previousUpdateID)
	require.Equal(t, orderbook.Sequence(390497796), m.firstUpdateID)
	require.Equal(t, orderbook.Sequence(390497878), m.lastUpdateID)
}

func TestSequencer(t *testing.T) {
	seq := Sequencer{}
	u := orderbook.Update{Meta: depthMeta{previousUpdateID: 100, firstUpdateID: 101, lastUpdateID: 105}}

	require.True(t, seq.IsFirstEvent(101, u))
	require.True(t, seq.IsFirstEvent(105, u))
	require.False(t, seq.IsFirstEvent(100, u))

	require.True(t, seq.IsStale(100, u))
	require.False(t, seq.IsStale(101, u))

	require.True(t, seq.IsNext(100, u))
	require.False(t, seq.IsNext(99, u))
}
