package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestItemAggregate_TotalContributed_SumsAllContributions(t *testing.T) {
	agg := &ItemAggregate{
		Item: Item{ID: "item-1", Price: dec("100")},
		Contributions: []Contribution{
			{ID: "contrib-1", ItemID: "item-1", UserID: "usr-a", Amount: dec("40")},
			{ID: "contrib-2", ItemID: "item-1", UserID: "usr-b", Amount: dec("60")},
		},
	}

	assert.True(t, dec("100").Equal(agg.TotalContributed()))
}

func TestItemAggregate_TotalContributed_EmptyIsZero(t *testing.T) {
	agg := &ItemAggregate{Item: Item{ID: "item-1", Price: dec("50")}}

	assert.True(t, agg.TotalContributed().IsZero())
}

func TestItemAggregate_IsFullyFunded(t *testing.T) {
	tests := []struct {
		name    string
		price   string
		amounts []string
		want    bool
	}{
		{name: "exact total funds the item", price: "100", amounts: []string{"40", "60"}, want: true},
		{name: "partial total does not", price: "100", amounts: []string{"99.99"}, want: false},
		{name: "over-funding still counts", price: "100", amounts: []string{"150"}, want: true},
		{name: "zero price with no contributions", price: "0", amounts: nil, want: true},
		{name: "zero price with contributions", price: "0", amounts: []string{"20"}, want: true},
		{name: "fractional cents sum exactly", price: "0.30", amounts: []string{"0.10", "0.10", "0.10"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := &ItemAggregate{Item: Item{ID: "item-1", Price: dec(tt.price)}}
			for i, a := range tt.amounts {
				agg.Contributions = append(agg.Contributions, Contribution{
					ID:     "contrib-" + string(rune('a'+i)),
					ItemID: "item-1",
					Amount: dec(a),
				})
			}
			assert.Equal(t, tt.want, agg.IsFullyFunded())
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "valid price", raw: "49.99", want: "49.99"},
		{name: "zero price allowed", raw: "0", want: "0"},
		{name: "empty defaults to zero", raw: "", want: "0"},
		{name: "negative rejected", raw: "-1", wantErr: ErrNegativePrice},
		{name: "garbage rejected", raw: "abc", wantErr: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrice(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(got))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "valid amount", raw: "25.50", want: "25.50"},
		{name: "zero rejected", raw: "0", wantErr: ErrNonPositiveAmount},
		{name: "negative rejected", raw: "-5", wantErr: ErrNonPositiveAmount},
		{name: "empty rejected", raw: "", wantErr: ErrInvalidAmount},
		{name: "garbage rejected", raw: "ten", wantErr: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(got))
		})
	}
}
