package binance

import "github.com/sequex/l2book/internal/orderbook"

// depthMeta carries the three sequence numbers a USD-M futures depth event
// or snapshot needs for gap detection, traveling in Update.Meta.
type depthMeta struct {
	previousUpdateID orderbook.Sequence
	firstUpdateID    orderbook.Sequence
	lastUpdateID     orderbook.Sequence
}

func metaOf(u orderbook.Update) depthMeta {
	return u.Meta.(depthMeta)
}
