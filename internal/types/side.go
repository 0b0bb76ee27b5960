package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SideType is the direction of an order or the taker direction of a trade
type SideType uint8

const (
	Buy SideType = iota + 1
	Sell
)

// ParseSide accepts "buy" or "sell" in any case
func ParseSide(value string) (SideType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("invalid order side: %q", value)
	}
}

// Opposite returns the side an order of this side matches against
func (s SideType) Opposite() SideType {
	if s == Buy {
		return Sell
	}
	return Buy
}

func (s SideType) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON writes the side in lower case ("buy" / "sell")
func (s SideType) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(s.String()))
}

func (s *SideType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseSide(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
