package enum

import (
	"strings"

	"stockengine/pkg/exception"

	"github.com/yanun0323/errors"
)

// Side buy, sell
type Side uint8

const (
	_side_beg Side = iota
	SideBuy
	SideSell
	_side_end
)

func (s Side) IsAvailable() bool {
	return s > _side_beg && s < _side_end
}

// Opposite returns the side an order of s trades against.
func (s Side) Opposite() Side {
	switch s {
	case SideBuy:
		return SideSell
	case SideSell:
		return SideBuy
	default:
		return s
	}
}

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "BUY"
	case SideSell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// ParseSide accepts "buy"/"sell" in any case, surrounding spaces ignored.
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY":
		return SideBuy, nil
	case "SELL":
		return SideSell, nil
	default:
		return _side_beg, errors.Wrapf(exception.ErrInvalidSide, "side: %q", s)
	}
}
