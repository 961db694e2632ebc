package entity

import (
	"fmt"
	"strings"
)

// Market identifies the exchange a ticker trades on.
type Market string

const (
	MarketDomestic Market = "DOMESTIC"
	MarketForeign  Market = "FOREIGN"
)

// ParseMarket accepts DOMESTIC/VN and FOREIGN/US in any case.
// An empty string defaults to the domestic market.
func ParseMarket(s string) (Market, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "DOMESTIC", "VN":
		return MarketDomestic, nil
	case "FOREIGN", "US":
		return MarketForeign, nil
	default:
		return "", fmt.Errorf("unknown market %q", s)
	}
}

// Valid reports whether m is one of the known markets.
func (m Market) Valid() bool {
	return m == MarketDomestic || m == MarketForeign
}

// Currency returns the ISO code amounts in this market are quoted in.
func (m Market) Currency() string {
	if m == MarketForeign {
		return "USD"
	}
	return "VND"
}

// TransactionType is BUY or SELL.
type TransactionType string

const (
	TransactionTypeBuy  TransactionType = "BUY"
	TransactionTypeSell TransactionType = "SELL"
)

// NormalizeTicker upper-cases and trims a symbol.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
