package service

import (
	"strconv"
	"strings"

	"cafe-service/internal/models"

	"github.com/google/uuid"
)

// ProductLookup reports whether a product key resolves in the current
// catalog snapshot.
type ProductLookup func(productID string) bool

// LineComposer accumulates candidate line items in memory while one
// order is being composed. Nothing here touches the store; the working
// set lives until Reset or a successful commit hands it off via
// Snapshot. Not safe for concurrent use; one composer belongs to one
// in-progress edit.
type LineComposer struct {
	lookup ProductLookup
	lines  []models.OrderLine
}

// NewLineComposer creates an empty composer resolving products through
// lookup. A nil lookup accepts every product key.
func NewLineComposer(lookup ProductLookup) *LineComposer {
	return &LineComposer{lookup: lookup}
}

// AddLine parses quantityText and appends a new line to the working
// set. Returns ErrInvalidQuantity if the text is not an integer > 0,
// ErrUnknownProduct if the key does not resolve. On failure the working
// set is unchanged. Duplicate lines for the same product are allowed.
func (c *LineComposer) AddLine(productID, quantityText string) (models.OrderLine, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(quantityText))
	if err != nil || qty <= 0 {
		return models.OrderLine{}, ErrInvalidQuantity
	}
	if c.lookup != nil && !c.lookup(productID) {
		return models.OrderLine{}, ErrUnknownProduct
	}

	line := models.OrderLine{
		LineID:    uuid.NewString(),
		ProductID: productID,
		Quantity:  qty,
	}
	c.lines = append(c.lines, line)
	return line, nil
}

// RemoveLine removes the first line structurally equal to line
// (productID, quantity). With duplicates present this removes an
// arbitrary one of them. Absent lines are a silent no-op.
func (c *LineComposer) RemoveLine(line models.OrderLine) {
	for i, l := range c.lines {
		if l.SameValue(line) {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// RemoveLineByID removes the line with the given transient ID, which is
// unambiguous even among duplicate (product, quantity) pairs.
func (c *LineComposer) RemoveLineByID(lineID string) {
	for i, l := range c.lines {
		if l.LineID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Reset clears the working set. Used on cancel and after a successful
// commit.
func (c *LineComposer) Reset() {
	c.lines = nil
}

// Len reports the number of composed lines.
func (c *LineComposer) Len() int {
	return len(c.lines)
}

// Snapshot returns a copy of the working set for hand-off to the
// aggregate manager. Later composer mutations do not affect it.
func (c *LineComposer) Snapshot() []models.OrderLine {
	out := make([]models.OrderLine, len(c.lines))
	copy(out, c.lines)
	return out
}
