package types

import (
	"fmt"
	"strings"
)

// Pair is a supported instrument, identified by its canonical symbol
type Pair string

const (
	BTCZAR Pair = "BTCZAR"
	ETHUSD Pair = "ETHUSD"
	LTCUSD Pair = "LTCUSD"
)

var supportedPairs = []Pair{BTCZAR, ETHUSD, LTCUSD}

// SupportedPairs lists every instrument the engine accepts
func SupportedPairs() []Pair {
	out := make([]Pair, len(supportedPairs))
	copy(out, supportedPairs)
	return out
}

// ParsePair resolves a symbol case-insensitively
func ParsePair(symbol string) (Pair, error) {
	trimmed := strings.TrimSpace(symbol)
	for _, p := range supportedPairs {
		if strings.EqualFold(string(p), trimmed) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unsupported symbol: %s", symbol)
}

func (p Pair) String() string {
	return string(p)
}
