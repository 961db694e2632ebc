package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMarket(t *testing.T) {
	testCases := []struct {
		in      string
		want    Market
		wantErr bool
	}{
		{in: "VN", want: MarketDomestic},
		{in: " domestic ", want: MarketDomestic},
		{in: "", want: MarketDomestic},
		{in: "us", want: MarketForeign},
		{in: "FOREIGN", want: MarketForeign},
		{in: "HK", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMarket(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMarketCurrency(t *testing.T) {
	assert.Equal(t, "VND", MarketDomestic.Currency())
	assert.Equal(t, "USD", MarketForeign.Currency())
	assert.False(t, Market("X").Valid())
}

func TestNormalizeTicker(t *testing.T) {
	assert.Equal(t, "FPT", NormalizeTicker("  fpt "))
}

func TestPriceAlertMatches(t *testing.T) {
	above := PriceAlert{Condition: AlertConditionAbove, TargetPrice: 100}
	below := PriceAlert{Condition: AlertConditionBelow, TargetPrice: 100}

	assert.True(t, above.Matches(100))
	assert.True(t, above.Matches(101))
	assert.False(t, above.Matches(99))
	assert.True(t, below.Matches(99))
	assert.False(t, below.Matches(101))
}
