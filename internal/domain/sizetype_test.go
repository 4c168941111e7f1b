package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizesForProduct(t *testing.T) {
	round := &SizeType{
		ID: "round",
		Sizes: []SizeOption{
			{Key: "16", Label: "16cm"},
			{Key: "20", Label: "20cm"},
			{Key: "24", Label: "24cm"},
		},
	}

	t.Run("no override keeps full list", func(t *testing.T) {
		assert.Equal(t, round.Sizes, round.SizesForProduct(&Product{}))
	})

	t.Run("override narrows", func(t *testing.T) {
		got := round.SizesForProduct(&Product{Sizes: []string{"20", "24"}})
		assert.Equal(t, []SizeOption{{Key: "20", Label: "20cm"}, {Key: "24", Label: "24cm"}}, got)
	})

	t.Run("override matching nothing yields empty", func(t *testing.T) {
		assert.Empty(t, round.SizesForProduct(&Product{Sizes: []string{"99"}}))
	})

	t.Run("nil type", func(t *testing.T) {
		var missing *SizeType
		assert.Nil(t, missing.SizesForProduct(&Product{}))
	})
}

func TestPriceForSize(t *testing.T) {
	level := &PriceLevel{ID: "basic", Prices: map[string]float64{"16": 100000, "20": 150000}}
	p := &Product{Price: 90000, PriceBySize: map[string]float64{"16": 120000}}

	assert.Equal(t, 120000.0, p.PriceForSize("16", level)) // own entry wins
	assert.Equal(t, 150000.0, p.PriceForSize("20", level)) // level table
	assert.Equal(t, 90000.0, p.PriceForSize("24", level))  // base price fallback
	assert.Equal(t, 120000.0, p.PriceForSize("16", nil), "own entry wins even without a level")
}
