package binance

import (
	"time"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/rs/zerolog"
	"github.com/sequex/l2book/internal/orderbook"
)

// Writer is the subset of orderbook.BookWriter the stream subscriber
// needs, kept narrow so tests can substitute a fake.
type Writer interface {
	Update(u orderbook.Update)
}

// Subscribe dials the USD-M futures diff-depth stream for symbol at the
// given rate and feeds every decoded event into writer. It returns the
// stop and done channels go-binance hands back.
func Subscribe(symbol string, rate time.Duration, writer Writer, log zerolog.Logger) (doneC, stopC chan struct{}, err error) {
	handler := func(ev *futures.WsDepthEvent) {
		u, decodeErr := DecodeDepthEvent(ev)
		if decodeErr != nil {
			log.Warn().Err(decodeErr).Str("symbol", symbol).Msg("dropping undecodable depth event")
			return
		}
		writer.Update(u)
	}
	errHandler := func(err error) {
		log.Warn().Err(err).Str("symbol", symbol).Msg("depth stream error")
	}

	return futures.WsDiffDepthServeWithRate(symbol, rate, handler, errHandler)
}
