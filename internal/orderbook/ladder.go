package orderbook

import (
	"github.com/emirpasic/gods/maps/treemap"
)

// BookLadder is a Price -> Size map with no zero values, backed by an
// ordered treemap. bids and asks each get their own ladder; which direction
// "best" points is decided by the descending flag passed to top().
type BookLadder struct {
	levels *treemap.Map
}

func newBookLadder() *BookLadder {
	return &BookLadder{
		levels: treemap.NewWith(priceComparator),
	}
}

func priceComparator(a, b any) int {
	pa, pb := a.(Price), b.(Price)
	switch {
	case pa < pb:
		return -1
	case pa > pb:
		return 1
	default:
		return 0
	}
}

// set inserts or replaces a level; a zero size removes the level instead.
func (l *BookLadder) set(price Price, size Size) {
	if size == ZeroSize {
		l.levels.Remove(price)
		return
	}
	l.levels.Put(price, size)
}

func (l *BookLadder) clear() {
	l.levels.Clear()
}

func (l *BookLadder) empty() bool {
	return l.levels.Empty()
}

// top returns up to depth levels starting from the best, in the ladder's
// natural direction (descending for bids, ascending for asks).
func (l *BookLadder) top(depth int, descending bool) []PriceLevel {
	out := make([]PriceLevel, 0, depth)
	it := l.levels.Iterator()
	count := 0
	if descending {
		for it.End(); it.Prev(); {
			out = append(out, PriceLevel{Price: it.Key().(Price), Size: it.Value().(Size)})
			count++
			if count >= depth {
				break
			}
		}
	} else {
		for it.Next() {
			out = append(out, PriceLevel{Price: it.Key().(Price), Size: it.Value().(Size)})
			count++
			if count >= depth {
				break
			}
		}
	}
	return out
}
