package orderbook

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
)

// ErrInvalidNumber is returned when decimal text cannot be converted into a
// fixed-point Price/Size: non-finite, negative, or overflowing FloatScale.
var ErrInvalidNumber = errors.New("invalid number")

// DecodeNumber converts human-readable decimal text into a fixed-point
// uint64: parse as float64, multiply by FloatScale, floor (not
// round-to-nearest).
func DecodeNumber(text string) (uint64, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidNumber, text, err)
	}
	return floatToFixed(f)
}

func floatToFixed(f float64) (uint64, error) {
	scaled := math.Floor(f * FloatScale)
	if math.IsNaN(scaled) || math.IsInf(scaled, 0) || scaled < 0 || scaled >= math.MaxUint64 {
		return 0, fmt.Errorf("%w: scaled value %v out of range", ErrInvalidNumber, scaled)
	}
	return uint64(scaled), nil
}

// EncodeNumber renders a fixed-point uint64 back into decimal text with
// trailing zeros trimmed, using shopspring/decimal so the string form
// round-trips through DecodeNumber up to trailing-zero normalization. Goes
// through big.Int so values above MaxInt64 (unreachable via DecodeNumber,
// but not via direct construction) still render correctly instead of
// wrapping through a negative int64.
func EncodeNumber(fixed uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(fixed), 0).
		Shift(-10).
		String()
}

// jsonNumber accepts either a numeric literal or a string literal wrapping a
// decimal number, exactly as the venue emits price/size fields.
type jsonNumber struct {
	raw json.RawMessage
}

func (n *jsonNumber) UnmarshalJSON(data []byte) error {
	n.raw = append(n.raw[:0], data...)
	return nil
}

// DecodePriceLevel decodes a two-element [price, size] JSON array where each
// element may be a JSON string or a JSON number.
func DecodePriceLevel(data []byte) (PriceLevel, error) {
	var pair [2]jsonNumber
	if err := json.Unmarshal(data, &pair); err != nil {
		return PriceLevel{}, fmt.Errorf("%w: %w", ErrInvalidNumber, err)
	}
	price, err := decodeJSONNumber(pair[0])
	if err != nil {
		return PriceLevel{}, err
	}
	size, err := decodeJSONNumber(pair[1])
	if err != nil {
		return PriceLevel{}, err
	}
	return PriceLevel{Price: Price(price), Size: Size(size)}, nil
}

func decodeJSONNumber(n jsonNumber) (uint64, error) {
	var asString string
	if err := json.Unmarshal(n.raw, &asString); err == nil {
		return DecodeNumber(asString)
	}
	var asFloat float64
	if err := json.Unmarshal(n.raw, &asFloat); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidNumber, string(n.raw))
	}
	return floatToFixed(asFloat)
}
