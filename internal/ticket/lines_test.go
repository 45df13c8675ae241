package ticket

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineListAdd(t *testing.T) {
	gas := uuid.New()
	filter := uuid.New()

	t.Run("appends new items with quantity 1", func(t *testing.T) {
		l := NewLineList()
		l.Add(gas, "Gás R410A", 9000)
		l.Add(filter, "Filtro secador", 2500)

		require.Equal(t, 2, l.Len())

		lines := l.Lines()
		assert.Equal(t, 1, lines[0].Quantity)
		assert.Equal(t, int64(9000), lines[0].Price)
		assert.Equal(t, "Filtro secador", lines[1].Name)
	})

	t.Run("same item twice increments quantity", func(t *testing.T) {
		l := NewLineList()
		l.Add(gas, "Gás R410A", 9000)
		l.Add(gas, "Gás R410A", 9000)

		require.Equal(t, 1, l.Len())
		assert.Equal(t, 2, l.Lines()[0].Quantity)
		assert.Equal(t, int64(18000), l.Total())
	})

	t.Run("rebuilt list keeps stored price snapshots", func(t *testing.T) {
		l := NewLineList(Line{InventoryItemID: gas, Name: "Gás R410A", Quantity: 3, Price: 8000})

		// Catalog price changed since the ticket was saved; adding the
		// same item must not refresh the stored snapshot.
		l.Add(gas, "Gás R410A", 9500)

		require.Equal(t, 1, l.Len())
		assert.Equal(t, 4, l.Lines()[0].Quantity)
		assert.Equal(t, int64(8000), l.Lines()[0].Price)
	})
}

func TestLineListTotal(t *testing.T) {
	l := NewLineList()
	assert.Equal(t, int64(0), l.Total())

	gas := uuid.New()
	l.Add(gas, "Gás R410A", 9000)
	l.Add(uuid.New(), "Suporte compressor", 1500)
	assert.Equal(t, int64(10500), l.Total())

	require.NoError(t, l.SetQuantity(0, 3))
	assert.Equal(t, int64(28500), l.Total())

	require.NoError(t, l.SetPrice(1, 2000))
	assert.Equal(t, int64(29000), l.Total())

	require.NoError(t, l.Remove(0))
	assert.Equal(t, int64(2000), l.Total())
}

func TestLineListSetQuantity(t *testing.T) {
	l := NewLineList()
	l.Add(uuid.New(), "Compressor 1/4 HP", 45000)

	t.Run("rejects zero and keeps the prior quantity", func(t *testing.T) {
		err := l.SetQuantity(0, 0)
		require.ErrorIs(t, err, ErrQuantityTooSmall)
		assert.Equal(t, 1, l.Lines()[0].Quantity)
	})

	t.Run("rejects negative", func(t *testing.T) {
		err := l.SetQuantity(0, -2)
		require.ErrorIs(t, err, ErrQuantityTooSmall)
		assert.Equal(t, 1, l.Lines()[0].Quantity)
	})

	t.Run("out of range", func(t *testing.T) {
		require.ErrorIs(t, l.SetQuantity(1, 2), ErrLineOutOfRange)
		require.ErrorIs(t, l.SetQuantity(-1, 2), ErrLineOutOfRange)
	})
}

func TestLineListSetPrice(t *testing.T) {
	l := NewLineList()
	l.Add(uuid.New(), "Gás R410A", 9000)

	require.ErrorIs(t, l.SetPrice(0, -1), ErrPriceNegative)
	assert.Equal(t, int64(9000), l.Lines()[0].Price)

	require.NoError(t, l.SetPrice(0, 0))
	assert.Equal(t, int64(0), l.Lines()[0].Price)

	require.ErrorIs(t, l.SetPrice(3, 100), ErrLineOutOfRange)
}

func TestLineListRemove(t *testing.T) {
	gas := uuid.New()
	filter := uuid.New()

	l := NewLineList()
	l.Add(gas, "Gás R410A", 9000)
	l.Add(filter, "Filtro secador", 2500)

	require.ErrorIs(t, l.Remove(2), ErrLineOutOfRange)
	require.Equal(t, 2, l.Len())

	require.NoError(t, l.Remove(0))
	require.Equal(t, 1, l.Len())
	assert.Equal(t, filter, l.Lines()[0].InventoryItemID)
}

func TestLineListLinesReturnsCopy(t *testing.T) {
	l := NewLineList()
	l.Add(uuid.New(), "Gás R410A", 9000)

	lines := l.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, l.Lines()[0].Quantity)
}
