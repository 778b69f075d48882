package orderbook

// BookSnapshot is the truncated, derived view of the book the engine
// publishes to consumers. It is never stored; every call to Snapshot
// rebuilds it from the live ladders.
type BookSnapshot struct {
	Bids []PriceLevel // descending by price
	Asks []PriceLevel // ascending by price
	TsMs uint64
}

// Mid returns the midpoint of the best bid and best ask, or zero if either
// side of the book is empty.
func (s BookSnapshot) Mid() Price {
	if len(s.Bids) == 0 || len(s.Asks) == 0 {
		return 0
	}
	return (s.Bids[0].Price + s.Asks[0].Price) / 2
}
