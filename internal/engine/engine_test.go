package engine

import (
	"context"
	"testing"

	"github.com/sequex/l2book/internal/config"
	"github.com/stretchr/testify/require"
)

func TestStart_RejectsInvalidConfig(t *testing.T) {
	_, _, _, err := Start(context.Background(), config.EngineConfig{}, "", "", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid engine config")
}

func validConfig() *config.Config {
	return &config.Config{
		Exchange:   "binance",
		Instrument: "perp",
		Symbol:     "BTC-USDT",
		Type:       "trade",
		Engine: config.EngineConfig{
			Symbol:           "BTCUSDT",
			Depth:            50,
			PublicationMs:    100,
			InboundCapacity:  50,
			OutboundCapacity: 1000,
			RestBaseURL:      "https://fapi.binance.com",
			WebsocketBaseURL: "wss://fstream.binance.com",
		},
		NATS: config.NATSConfig{
			URIs:    "nats://localhost:4222,nats://localhost:4223",
			Stream:  "TRADE",
			Subject: "trade.binance.perp.btcusdt",
		},
	}
}

func TestStartFromConfig_RejectsInvalidConfig(t *testing.T) {
	_, _, _, err := StartFromConfig(context.Background(), &config.Config{}, "", "", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid config")
}

func TestStartFromConfig_RejectsMalformedNATSURI(t *testing.T) {
	cfg := validConfig()
	cfg.NATS.URIs = "nats://localhost:70000"

	_, _, _, err := StartFromConfig(context.Background(), cfg, "", "", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "resolve nats connection strings")
}

func TestStartFromFile_RejectsMissingFile(t *testing.T) {
	_, _, _, err := StartFromFile(context.Background(), "/nonexistent/engine-config.json", "", "", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "load config")
}
