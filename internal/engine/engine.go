// Package engine is the composition root: it turns a config.EngineConfig
// (optionally loaded as part of a full config.Config) and a Binance API
// keypair into a running orderbook.BookHandle/BookWriter pair, wiring the
// deduping REST fetcher, the Binance sequencer, and the diff-depth
// websocket subscription together the way a long-running process would
// at startup.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sequex/l2book/internal/config"
	"github.com/sequex/l2book/internal/exchange/binance"
	"github.com/sequex/l2book/internal/orderbook"
	"github.com/sequex/l2book/pkg/logger"
)

// depthUpdateSpeed is the venue's diff-depth push rate, one of the three
// values Binance's futures websocket accepts (100ms/250ms/500ms). It is
// independent of EngineConfig's publication cadence, which governs only
// how often BookHandle.Recv() observes a snapshot downstream.
const depthUpdateSpeed = 100 * time.Millisecond

// Start builds a BookProcessor for cfg.Symbol, subscribes it to the
// Binance USD-M futures diff-depth stream, and returns the handle/writer
// pair along with a stop function. apiKey/secretKey may be empty; depth
// snapshots and diff-depth streams are both public endpoints.
//
// log may be nil, in which case Start falls back to pkg/logger's global
// logger.
func Start(ctx context.Context, cfg config.EngineConfig, apiKey, secretKey string, log *zerolog.Logger) (orderbook.BookHandle, orderbook.BookWriter, func(), error) {
	if err := cfg.Validate(); err != nil {
		return orderbook.BookHandle{}, orderbook.BookWriter{}, nil, fmt.Errorf("invalid engine config: %w", err)
	}
	if log == nil {
		log = logger.Get()
	}
	engineLog := log.With().Str("component", "engine").Logger()

	restURL := cfg.RestBaseURL
	if restURL == "" {
		restURL = binance.DefaultRestURL
	}
	if cfg.WebsocketBaseURL != binance.DefaultWsURL {
		engineLog.Warn().
			Str("configured", cfg.WebsocketBaseURL).
			Str("used", binance.DefaultWsURL).
			Msg("go-binance does not support overriding the futures websocket base url at runtime; using the venue default")
	}

	rest := binance.NewSnapshotFetcher(apiKey, secretKey, restURL)
	fetcher := binance.NewDedupingFetcher(rest)

	handle, writer := orderbook.NewEngine(ctx, cfg.Symbol, binance.Sequencer{}, fetcher, cfg.Depth, cfg.PublicationInterval(), engineLog)

	doneC, stopC, err := binance.Subscribe(cfg.Symbol, depthUpdateSpeed, writer, engineLog)
	if err != nil {
		return orderbook.BookHandle{}, orderbook.BookWriter{}, nil, fmt.Errorf("subscribe depth stream for %s: %w", cfg.Symbol, err)
	}

	stop := func() {
		close(stopC)
		<-doneC
	}
	return handle, writer, stop, nil
}

// StartFromConfig validates the full config.Config (engine fields and NATS
// fields alike), resolves cfg.NATS into per-node connection configs so a
// malformed URI or missing stream/subject is caught at startup rather than
// the first time something tries to dial it, logs the resolved endpoints,
// and starts the engine from cfg.Engine.
//
// No NATS client is dialed here: this repo does not publish to a bus, it
// only exposes BookHandle/BookWriter in-process. Resolving and logging the
// endpoints keeps the config's NATS section meaningful to an operator
// reading engine startup logs.
func StartFromConfig(ctx context.Context, cfg *config.Config, apiKey, secretKey string, log *zerolog.Logger) (orderbook.BookHandle, orderbook.BookWriter, func(), error) {
	if err := cfg.Validate(); err != nil {
		return orderbook.BookHandle{}, orderbook.BookWriter{}, nil, fmt.Errorf("invalid config: %w", err)
	}
	if log == nil {
		log = logger.Get()
	}
	engineLog := log.With().Str("component", "engine").Logger()

	natsConns, err := cfg.NATS.ConnectionConfigs()
	if err != nil {
		return orderbook.BookHandle{}, orderbook.BookWriter{}, nil, fmt.Errorf("resolve nats connection strings: %w", err)
	}
	for _, nc := range natsConns {
		engineLog.Info().
			Str("host", nc.Host).
			Int("port", nc.Port).
			Str("stream", nc.GetParam("stream", "")).
			Str("subject", nc.GetParam("subject", "")).
			Msg("nats endpoint resolved (publishing not wired on the engine critical path)")
	}

	return Start(ctx, cfg.Engine, apiKey, secretKey, &engineLog)
}

// StartFromFile loads a config.Config from filePath and starts the engine
// from it, the entry point a long-running process's main would use.
func StartFromFile(ctx context.Context, filePath, apiKey, secretKey string, log *zerolog.Logger) (orderbook.BookHandle, orderbook.BookWriter, func(), error) {
	cfg, err := config.LoadConfig(filePath)
	if err != nil {
		return orderbook.BookHandle{}, orderbook.BookWriter{}, nil, fmt.Errorf("load config: %w", err)
	}
	return StartFromConfig(ctx, cfg, apiKey, secretKey, log)
}
