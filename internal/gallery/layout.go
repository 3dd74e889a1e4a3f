package gallery

import "picgrid/internal/domain"

// Card chrome around the thumbnail: a border plus title and meta lines in grid mode
const (
	borderCells   = 2
	gridTextLines = 2
)

// CardSize returns the card footprint for the current mode
func (v *View) CardSize() CardSize {
	if v.mode == domain.ViewList {
		w := v.layout.Width
		if w < v.thumb.Width+borderCells {
			w = v.thumb.Width + borderCells
		}
		return CardSize{Width: w, Height: v.thumb.Height + borderCells}
	}
	return CardSize{
		Width:  v.thumb.Width + borderCells,
		Height: v.thumb.Height + borderCells + gridTextLines,
	}
}

// Layout returns the current layout
func (v *View) Layout() Layout {
	return v.layout
}

// Focus returns the focused card index
func (v *View) Focus() int {
	return v.focus
}

// Resize sets the gallery area size. Loaded cards are kept as they are;
// callers follow up with PendingNearViewport.
func (v *View) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	v.layout.Width = width
	v.layout.Height = height
	v.relayout()
}

func (v *View) relayout() {
	size := v.CardSize()
	cols := 1
	if v.mode != domain.ViewList && size.Width > 0 {
		cols = v.layout.Width / size.Width
	}
	if cols < 1 {
		cols = 1
	}
	rows := 1
	if size.Height > 0 {
		rows = v.layout.Height / size.Height
	}
	if rows < 1 {
		rows = 1
	}
	v.layout.Columns = cols
	v.layout.CardRows = rows
	v.ensureVisible()
}

// TotalRows is the number of card rows in the whole list
func (v *View) TotalRows() int {
	if len(v.cards) == 0 {
		return 0
	}
	return (len(v.cards) + v.layout.Columns - 1) / v.layout.Columns
}

// VisibleRange returns the card indexes [start, end) inside the window
func (v *View) VisibleRange() (start, end int) {
	start = v.layout.ScrollRow * v.layout.Columns
	end = start + v.layout.CardRows*v.layout.Columns
	if start > len(v.cards) {
		start = len(v.cards)
	}
	if end > len(v.cards) {
		end = len(v.cards)
	}
	return start, end
}

// MoveFocus moves the focus by dx columns and dy rows, clamped to the list
func (v *View) MoveFocus(dx, dy int) {
	if len(v.cards) == 0 {
		return
	}
	v.FocusIndex(v.focus + dx + dy*v.layout.Columns)
}

// FocusIndex focuses index, clamped into range
func (v *View) FocusIndex(index int) {
	v.focus = v.clampIndex(index)
	v.ensureVisible()
}

// FocusFirst focuses the first card
func (v *View) FocusFirst() {
	v.FocusIndex(0)
}

// FocusLast focuses the last card
func (v *View) FocusLast() {
	v.FocusIndex(len(v.cards) - 1)
}

// PageDown moves the focus one window down
func (v *View) PageDown() {
	v.MoveFocus(0, v.layout.CardRows)
}

// PageUp moves the focus one window up
func (v *View) PageUp() {
	v.MoveFocus(0, -v.layout.CardRows)
}

// Scroll moves the window by delta rows. Ignored while scrolling is locked.
func (v *View) Scroll(delta int) {
	if v.scrollLocked || len(v.cards) == 0 {
		return
	}
	v.layout.ScrollRow = v.clampScroll(v.layout.ScrollRow + delta)

	// keep the focus inside the window
	start, end := v.VisibleRange()
	if v.focus < start {
		v.focus = start
	} else if v.focus >= end {
		v.focus = end - 1
	}
}

// SetScrollLocked freezes scrolling while the viewer is open
func (v *View) SetScrollLocked(locked bool) {
	v.scrollLocked = locked
}

// ScrollLocked reports whether scrolling is frozen
func (v *View) ScrollLocked() bool {
	return v.scrollLocked
}

// CardAt resolves a cell inside the gallery area to a card index
func (v *View) CardAt(col, row int) (int, bool) {
	if col < 0 || row < 0 || v.status != StatusCards {
		return 0, false
	}
	size := v.CardSize()
	c := col / size.Width
	if c >= v.layout.Columns {
		return 0, false
	}
	r := row/size.Height + v.layout.ScrollRow
	index := r*v.layout.Columns + c
	if index >= len(v.cards) {
		return 0, false
	}
	return index, true
}

// PendingNearViewport marks not-yet-requested cards within ProximityRows of
// the window as loading and returns their load requests
func (v *View) PendingNearViewport() []LoadRequest {
	if v.status != StatusCards || len(v.cards) == 0 {
		return nil
	}
	first := v.layout.ScrollRow - v.proximityRows
	if first < 0 {
		first = 0
	}
	last := v.layout.ScrollRow + v.layout.CardRows + v.proximityRows
	start := first * v.layout.Columns
	end := last * v.layout.Columns
	if end > len(v.cards) {
		end = len(v.cards)
	}

	var reqs []LoadRequest
	for i := start; i < end; i++ {
		if v.cards[i].State != CardPending {
			continue
		}
		v.cards[i].State = CardLoading
		reqs = append(reqs, LoadRequest{
			Generation: v.generation,
			Index:      i,
			Image:      v.cards[i].Image,
			Width:      v.thumb.Width,
			Height:     v.thumb.Height,
		})
	}
	return reqs
}

func (v *View) ensureVisible() {
	if len(v.cards) == 0 {
		v.layout.ScrollRow = 0
		return
	}
	v.focus = v.clampIndex(v.focus)
	row := v.focus / v.layout.Columns
	if row < v.layout.ScrollRow {
		v.layout.ScrollRow = row
	} else if row >= v.layout.ScrollRow+v.layout.CardRows {
		v.layout.ScrollRow = row - v.layout.CardRows + 1
	}
	v.layout.ScrollRow = v.clampScroll(v.layout.ScrollRow)
}

func (v *View) clampScroll(row int) int {
	maxRow := v.TotalRows() - v.layout.CardRows
	if row > maxRow {
		row = maxRow
	}
	if row < 0 {
		row = 0
	}
	return row
}

func (v *View) clampIndex(index int) int {
	if index >= len(v.cards) {
		index = len(v.cards) - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}
