package host

import (
	"github.com/dshills/vbind/internal/dom"
	"github.com/gdamore/tcell/v2"
)

var (
	styleBox     = tcell.StyleDefault
	styleFocused = tcell.StyleDefault.Bold(true).Reverse(true)
	styleStatus  = tcell.StyleDefault.Reverse(true)
)

// Draw renders the outline of every node below the root and the status
// line.
func (h *Host) Draw() {
	if !h.draw {
		return
	}
	h.screen.Clear()
	for _, child := range h.root.Children() {
		child.Walk(func(n *dom.Node) {
			style := styleBox
			if n == h.focused {
				style = styleFocused
			}
			h.drawBox(n.Bounds(), n.Name(), style)
		})
	}
	if h.status != "" {
		w, ht := h.screen.Size()
		h.drawText(0, ht-1, w, h.status, styleStatus)
	}
	h.screen.Show()
}

func (h *Host) drawBox(r dom.Rect, title string, style tcell.Style) {
	if r.IsEmpty() {
		return
	}
	x1, y1 := r.X+r.Width-1, r.Y+r.Height-1
	for x := r.X; x <= x1; x++ {
		h.screen.SetContent(x, r.Y, tcell.RuneHLine, nil, style)
		h.screen.SetContent(x, y1, tcell.RuneHLine, nil, style)
	}
	for y := r.Y; y <= y1; y++ {
		h.screen.SetContent(r.X, y, tcell.RuneVLine, nil, style)
		h.screen.SetContent(x1, y, tcell.RuneVLine, nil, style)
	}
	if r.Width > 1 && r.Height > 1 {
		h.screen.SetContent(r.X, r.Y, tcell.RuneULCorner, nil, style)
		h.screen.SetContent(x1, r.Y, tcell.RuneURCorner, nil, style)
		h.screen.SetContent(r.X, y1, tcell.RuneLLCorner, nil, style)
		h.screen.SetContent(x1, y1, tcell.RuneLRCorner, nil, style)
	}
	h.drawText(r.X+1, r.Y, r.Width-2, title, style)
}

func (h *Host) drawText(x, y, width int, s string, style tcell.Style) {
	for _, r := range s {
		if width <= 0 {
			return
		}
		h.screen.SetContent(x, y, r, nil, style)
		x++
		width--
	}
}
