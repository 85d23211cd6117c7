package repository

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPriceWrites_NoPriorPrice(t *testing.T) {
	updateRow, appendHistory := priceWrites(nil, dec("120000"))
	assert.True(t, updateRow)
	assert.False(t, appendHistory, "no old value exists, nothing to audit")
}

func TestPriceWrites_Unchanged(t *testing.T) {
	current := dec("120000")
	updateRow, appendHistory := priceWrites(&current, dec("120000"))
	assert.False(t, updateRow)
	assert.False(t, appendHistory)
}

func TestPriceWrites_UnchangedAcrossScales(t *testing.T) {
	// 120000 and 120000.00 are the same money value — must not produce a
	// spurious history row.
	current := dec("120000")
	updateRow, appendHistory := priceWrites(&current, dec("120000.00"))
	assert.False(t, updateRow)
	assert.False(t, appendHistory)
}

func TestUniqueNames_DropsRepeats(t *testing.T) {
	got := uniqueNames([]string{"parking", "playground", "parking", "parking", "gym"})
	assert.Equal(t, []string{"parking", "playground", "gym"}, got)
}

func TestUniqueNames_Empty(t *testing.T) {
	assert.Empty(t, uniqueNames(nil))
}

func TestPriceWrites_Changed(t *testing.T) {
	current := dec("120000")
	updateRow, appendHistory := priceWrites(&current, dec("135000"))
	assert.True(t, updateRow)
	assert.True(t, appendHistory)
}
