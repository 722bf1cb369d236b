package valueobject

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRupiah(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{"grouped millions", decimal.NewFromInt(1234567), "Rp 1.234.567"},
		{"small amount", decimal.NewFromInt(500), "Rp 500"},
		{"zero", decimal.Zero, "Rp 0"},
		{"rounds fractions away", decimal.RequireFromString("1000.75"), "Rp 1.001"},
		{"negative", decimal.NewFromInt(-25000), "Rp -25.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rupiah(tt.amount))
		})
	}
}

func TestRupiahFromFloat(t *testing.T) {
	assert.Equal(t, "Rp 1.500", RupiahFromFloat(1500))
	assert.Equal(t, "Rp 0", RupiahFromFloat(math.NaN()))
	assert.Equal(t, "Rp 0", RupiahFromFloat(math.Inf(1)))
	assert.Equal(t, "Rp 0", RupiahFromFloat(math.Inf(-1)))
}

func TestRupiahShort(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{"triliun", decimal.New(25, 11), "Rp 2,50 T"},
		{"miliar", decimal.New(13, 8), "Rp 1,30 M"},
		{"juta", decimal.New(15, 5), "Rp 1,5 Jt"},
		{"ribu", decimal.NewFromInt(7500), "Rp 7,5 Rb"},
		{"below a thousand", decimal.NewFromInt(999), "Rp 999"},
		{"zero", decimal.Zero, "Rp 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RupiahShort(tt.amount))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "16,67%", Percent(decimal.RequireFromString("16.67")))
	assert.Equal(t, "0,00%", Percent(decimal.Zero))
	assert.Equal(t, "100,00%", Percent(decimal.NewFromInt(100)))
}
