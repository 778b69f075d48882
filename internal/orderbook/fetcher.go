package orderbook

import "context"

// SnapshotFetcher performs one REST round-trip to retrieve the freshest
// available full-book snapshot for symbol. The engine makes no assumption
// about idempotence or retry behavior: on error it simply waits for the next
// incoming update to re-arm NeedSnapshot.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context, symbol string) (Update, error)
}
