package binance

import "github.com/sequex/l2book/internal/orderbook"

// Sequencer implements orderbook.BookSequencer for Binance USD-M futures
// diff-depth streams: https://binance-docs.github.io/apidocs/futures/en/#how-to-manage-a-local-order-book-correctly
// U <= cur_seq <= u bridges a snapshot; cur_seq == pu chains consecutive
// events; cur_seq < U means the stream has moved past what we can recover
// from without a fresh snapshot.
type Sequencer struct{}

func (Sequencer) IsFirstEvent(cur orderbook.Sequence, u orderbook.Update) bool {
	m := metaOf(u)
	return m.firstUpdateID <= cur && cur <= m.lastUpdateID
}

func (Sequencer) IsStale(cur orderbook.Sequence, u orderbook.Update) bool {
	return cur < metaOf(u).firstUpdateID
}

func (Sequencer) IsNext(cur orderbook.Sequence, u orderbook.Update) bool {
	return cur == metaOf(u).previousUpdateID
}
