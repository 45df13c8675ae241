package ticket

import "github.com/google/uuid"

// LineList accumulates the materials selected for one ticket. It is
// transient form state: rebuilt from stored lines when editing, discarded
// after submit.
type LineList struct {
	lines []Line
}

// NewLineList rebuilds the accumulator from stored lines, keeping their
// stored price snapshots.
func NewLineList(lines ...Line) *LineList {
	l := &LineList{lines: make([]Line, len(lines))}
	copy(l.lines, lines)

	return l
}

// Add appends a line for the catalog item with quantity 1 and the item's
// current value as the price snapshot. Adding an item already present
// increments that line's quantity instead of appending a second line.
func (l *LineList) Add(itemID uuid.UUID, name string, price int64) {
	for i := range l.lines {
		if l.lines[i].InventoryItemID == itemID {
			l.lines[i].Quantity++
			return
		}
	}

	l.lines = append(l.lines, Line{
		InventoryItemID: itemID,
		Name:            name,
		Quantity:        1,
		Price:           price,
	})
}

func (l *LineList) Remove(index int) error {
	if index < 0 || index >= len(l.lines) {
		return ErrLineOutOfRange
	}

	l.lines = append(l.lines[:index], l.lines[index+1:]...)

	return nil
}

// SetQuantity overwrites a line's quantity. Quantities below 1 are rejected
// and the prior quantity is retained.
func (l *LineList) SetQuantity(index, quantity int) error {
	if index < 0 || index >= len(l.lines) {
		return ErrLineOutOfRange
	}

	if quantity < 1 {
		return ErrQuantityTooSmall
	}

	l.lines[index].Quantity = quantity

	return nil
}

// SetPrice overwrites a line's price snapshot, for hand-edited line prices.
func (l *LineList) SetPrice(index int, price int64) error {
	if index < 0 || index >= len(l.lines) {
		return ErrLineOutOfRange
	}

	if price < 0 {
		return ErrPriceNegative
	}

	l.lines[index].Price = price

	return nil
}

// Total is recomputed from the present lines on every call, never cached.
func (l *LineList) Total() int64 {
	var total int64
	for _, line := range l.lines {
		total += line.Subtotal()
	}

	return total
}

func (l *LineList) Len() int {
	return len(l.lines)
}

// Lines returns a copy of the accumulated lines in selection order.
func (l *LineList) Lines() []Line {
	out := make([]Line, len(l.lines))
	copy(out, l.lines)

	return out
}
