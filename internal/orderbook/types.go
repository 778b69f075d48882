package orderbook

// FloatScale is the fixed-point scale factor applied to decimal text when
// converting to Price/Size: value = floor(decimal * FloatScale).
const FloatScale = 1e10

// Price is a fixed-point decimal-scaled price. Total order is numeric.
type Price uint64

// Size is a fixed-point decimal-scaled size. ZeroSize denotes removal of a
// price level.
type Size uint64

// ZeroSize marks a price level for removal when applied to a ladder.
const ZeroSize Size = 0

// PriceLevel pairs a price with its resting size.
type PriceLevel struct {
	Price Price
	Size  Size
}

// Sequence is a venue-assigned monotonic update identifier.
type Sequence uint64
