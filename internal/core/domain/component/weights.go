package component

import (
	"fmt"

	"cordial/internal/core/domain"
)

// ItemWeights packs items into fixed-capacity rows. Each row holds at most
// maxWidth units; an item either pins itself to an explicit row or takes the
// first row with enough remaining capacity.
type ItemWeights struct {
	weights  []int
	maxWidth int
	maxRows  int
}

func newItemWeights(maxWidth, maxRows int) *ItemWeights {
	return &ItemWeights{
		weights:  make([]int, maxRows),
		maxWidth: maxWidth,
		maxRows:  maxRows,
	}
}

func (w *ItemWeights) findOpenSpace(item Item) (int, error) {
	for row, weight := range w.weights {
		if weight+item.Width() <= w.maxWidth {
			return row, nil
		}
	}
	return 0, fmt.Errorf("%w: width %d", domain.ErrNoOpenSpace, item.Width())
}

// AddItem records the item's weight and resolves its rendered row.
func (w *ItemWeights) AddItem(item Item) error {
	if row := item.Row(); row >= 0 {
		if row >= w.maxRows {
			return domain.ErrRowOutOfRange
		}

		total := w.weights[row] + item.Width()
		if total > w.maxWidth {
			return fmt.Errorf("%w: row %d would hold %d of %d", domain.ErrRowFull, row, total, w.maxWidth)
		}

		w.weights[row] = total
		item.setRenderedRow(row)
		return nil
	}

	row, err := w.findOpenSpace(item)
	if err != nil {
		return err
	}
	w.weights[row] += item.Width()
	item.setRenderedRow(row)
	return nil
}

// RemoveItem reverses the item's weight contribution and clears its
// rendered row, restoring the capacity it occupied.
func (w *ItemWeights) RemoveItem(item Item) {
	if row := item.renderedRow(); row >= 0 {
		w.weights[row] -= item.Width()
		item.setRenderedRow(-1)
	}
}

// Clear resets all rows.
func (w *ItemWeights) Clear() {
	w.weights = make([]int, w.maxRows)
}
