package sts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAyat(t *testing.T) {
	tests := []struct {
		name     string
		ayat     string
		wantOPD  string
		wantRek  string
	}{
		{
			name:    "full composite key",
			ayat:    "1.02.0.00.0.00.014.1.01.01.01.0001",
			wantOPD: "1.02.0.00.0.00.",
			wantRek: "014.1.01.01.01.0001",
		},
		{
			name:    "exactly unit width",
			ayat:    "123456789012345",
			wantOPD: "123456789012345",
			wantRek: "",
		},
		{
			name:    "shorter than unit width degrades to whole string",
			ayat:    "12345",
			wantOPD: "12345",
			wantRek: "",
		},
		{
			name:    "empty",
			ayat:    "",
			wantOPD: "",
			wantRek: "",
		},
		{
			name:    "leading zeros preserved",
			ayat:    "000010000000001420101",
			wantOPD: "000010000000001",
			wantRek: "420101",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opd, rek := ParseAyat(tt.ayat)
			assert.Equal(t, tt.wantOPD, opd)
			assert.Equal(t, tt.wantRek, rek)
		})
	}
}

func TestRekeningLevel(t *testing.T) {
	assert.Equal(t, 3, RekeningLevel("420101"))
	assert.Equal(t, 6, RekeningLevel("420101060201")) // 12 chars
	assert.Equal(t, 4, RekeningLevel("4201010602011")) // 13 chars, /3
	assert.Equal(t, 0, RekeningLevel(""))
}
