package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/posdesk/pos-engine/internal/domain/catalog"
	domainErrors "github.com/posdesk/pos-engine/internal/domain/errors"
	"github.com/posdesk/pos-engine/internal/pkg/money"
)

func sellable(id, sku string, cents int64) catalog.Sellable {
	return catalog.Sellable{
		VariantID:   id,
		ProductName: "Product " + id,
		SKU:         sku,
		UnitPrice:   money.FromCents(cents),
	}
}

func TestAddSameSellableTwiceIncrementsQuantity(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(sellable("v1", "X1", 1000), 1))
	require.NoError(t, c.Add(sellable("v1", "X1", 1000), 1))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 2, c.ItemCount())
}

func TestAddRejectsItemWithoutIdentity(t *testing.T) {
	c := NewCart()
	err := c.Add(catalog.Sellable{SKU: "X1"}, 1)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidItem)
	assert.True(t, c.IsEmpty())
}

func TestAddCoercesQuantityToAtLeastOne(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(sellable("v1", "X1", 500), 0))
	require.NoError(t, c.Add(sellable("v2", "X2", 500), -4))

	for _, l := range c.Lines() {
		assert.Equal(t, 1, l.Quantity)
	}
}

func TestSubtotalRecomputed(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(sellable("v1", "X1", 1000), 3))
	require.NoError(t, c.Add(sellable("v2", "X2", 250), 2))
	assert.Equal(t, int64(3500), c.Subtotal().Cents())

	c.SetQuantity("v2", 1)
	assert.Equal(t, int64(3250), c.Subtotal().Cents())

	c.Remove("v1")
	assert.Equal(t, int64(250), c.Subtotal().Cents())
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(sellable("v1", "X1", 1000), 2))

	c.SetQuantity("v1", 0)
	assert.True(t, c.IsEmpty())
}

func TestRemoveIsIdempotent(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(sellable("v1", "X1", 1000), 1))

	c.Remove("missing")
	c.Remove("v1")
	c.Remove("v1")
	assert.True(t, c.IsEmpty())
}

func TestInsertionOrderPreserved(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(sellable("v2", "B", 100), 1))
	require.NoError(t, c.Add(sellable("v1", "A", 100), 1))
	require.NoError(t, c.Add(sellable("v3", "C", 100), 1))
	require.NoError(t, c.Add(sellable("v1", "A", 100), 1))

	lines := c.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"v2", "v1", "v3"}, []string{lines[0].SellableID, lines[1].SellableID, lines[2].SellableID})
}

func TestNoTwoLinesShareSellableID(t *testing.T) {
	c := NewCart()
	for i := 0; i < 5; i++ {
		require.NoError(t, c.Add(sellable("v1", "X1", 100), 1))
	}
	seen := map[string]bool{}
	for _, l := range c.Lines() {
		assert.False(t, seen[l.SellableID])
		seen[l.SellableID] = true
	}
}

func TestClear(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(sellable("v1", "X1", 1000), 2))
	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.ItemCount())
	assert.True(t, c.Subtotal().IsZero())
}
