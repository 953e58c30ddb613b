package service

import (
	"testing"

	"cafe-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogOf(ids ...string) ProductLookup {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return func(productID string) bool {
		_, ok := set[productID]
		return ok
	}
}

func TestAddLineParsesQuantity(t *testing.T) {
	c := NewLineComposer(catalogOf("p1"))

	line, err := c.AddLine("p1", "3")
	require.NoError(t, err)
	assert.Equal(t, "p1", line.ProductID)
	assert.Equal(t, 3, line.Quantity)
	assert.NotEmpty(t, line.LineID)
	assert.Equal(t, 1, c.Len())
}

func TestAddLineInvalidQuantity(t *testing.T) {
	c := NewLineComposer(catalogOf("p1"))

	for _, q := range []string{"", "abc", "0", "-2", "1.5"} {
		_, err := c.AddLine("p1", q)
		assert.ErrorIs(t, err, ErrInvalidQuantity, "quantity %q", q)
	}
	// Working set unchanged after failures.
	assert.Equal(t, 0, c.Len())
}

func TestAddLineUnknownProduct(t *testing.T) {
	c := NewLineComposer(catalogOf("p1"))

	_, err := c.AddLine("p9", "2")
	assert.ErrorIs(t, err, ErrUnknownProduct)
	assert.Equal(t, 0, c.Len())
}

func TestAddLineAllowsDuplicates(t *testing.T) {
	c := NewLineComposer(nil)

	_, err := c.AddLine("p1", "2")
	require.NoError(t, err)
	_, err = c.AddLine("p1", "2")
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())
}

func TestRemoveLineRoundTrip(t *testing.T) {
	c := NewLineComposer(nil)
	_, err := c.AddLine("p1", "1")
	require.NoError(t, err)
	before := c.Snapshot()

	line, err := c.AddLine("p2", "4")
	require.NoError(t, err)
	c.RemoveLine(line)

	assert.Equal(t, before, c.Snapshot())
}

func TestRemoveLineAbsentIsNoop(t *testing.T) {
	c := NewLineComposer(nil)
	_, err := c.AddLine("p1", "1")
	require.NoError(t, err)

	c.RemoveLine(models.OrderLine{ProductID: "p9", Quantity: 7})
	assert.Equal(t, 1, c.Len())
}

func TestRemoveLineValueEqualityIgnoresLineID(t *testing.T) {
	c := NewLineComposer(nil)
	_, err := c.AddLine("p1", "2")
	require.NoError(t, err)
	_, err = c.AddLine("p1", "2")
	require.NoError(t, err)

	// Value-based removal takes out one of the duplicates.
	c.RemoveLine(models.OrderLine{ProductID: "p1", Quantity: 2})
	assert.Equal(t, 1, c.Len())
}

func TestRemoveLineByID(t *testing.T) {
	c := NewLineComposer(nil)
	first, err := c.AddLine("p1", "2")
	require.NoError(t, err)
	second, err := c.AddLine("p1", "2")
	require.NoError(t, err)

	c.RemoveLineByID(first.LineID)

	snapshot := c.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, second.LineID, snapshot[0].LineID)
}

func TestReset(t *testing.T) {
	c := NewLineComposer(nil)
	_, err := c.AddLine("p1", "2")
	require.NoError(t, err)

	c.Reset()
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Snapshot())
}

func TestSnapshotIsDetached(t *testing.T) {
	c := NewLineComposer(nil)
	_, err := c.AddLine("p1", "2")
	require.NoError(t, err)

	snapshot := c.Snapshot()
	_, err = c.AddLine("p2", "5")
	require.NoError(t, err)

	assert.Len(t, snapshot, 1)
}
