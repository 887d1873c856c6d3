package host

import (
	"github.com/dshills/vbind/internal/dom"
	"github.com/dshills/vbind/internal/input/mouse"
	"github.com/gdamore/tcell/v2"
)

const wheelMask = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

// buttonMap lists the tcell buttons in DOM button order.
var buttonMap = []struct {
	mask   tcell.ButtonMask
	button mouse.Button
	bit    uint8
}{
	{tcell.ButtonPrimary, mouse.ButtonLeft, 1},
	{tcell.ButtonMiddle, mouse.ButtonMiddle, 4},
	{tcell.ButtonSecondary, mouse.ButtonRight, 2},
	{tcell.Button4, mouse.ButtonBack, 8},
	{tcell.Button5, mouse.ButtonForward, 16},
}

// domButtons converts a tcell button mask to the DOM buttons bitmask.
func domButtons(m tcell.ButtonMask) uint8 {
	var bits uint8
	for _, b := range buttonMap {
		if m&b.mask != 0 {
			bits |= b.bit
		}
	}
	return bits
}

func wheelDelta(m tcell.ButtonMask) (dx, dy int) {
	if m&tcell.WheelUp != 0 {
		dy--
	}
	if m&tcell.WheelDown != 0 {
		dy++
	}
	if m&tcell.WheelLeft != 0 {
		dx--
	}
	if m&tcell.WheelRight != 0 {
		dx++
	}
	return dx, dy
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pos := mouse.Position{X: x, Y: y}
	target := h.targetAt(pos)
	pressed := ev.Buttons() &^ wheelMask

	base := dom.MouseEventInit{
		EventInit: dom.EventInit{
			Bubbles:    true,
			Cancelable: true,
			Modifiers:  convertMod(ev.Modifiers()),
			TimeStamp:  ev.When(),
		},
		Buttons:  domButtons(pressed),
		Position: pos,
	}
	dispatched := false

	if wheel := ev.Buttons() & wheelMask; wheel != 0 {
		dx, dy := wheelDelta(wheel)
		target.DispatchEvent(dom.NewWheelEvent("wheel", dom.WheelEventInit{MouseEventInit: base, DeltaX: dx, DeltaY: dy}))
		dispatched = true
	}

	down := pressed &^ h.buttons
	up := h.buttons &^ pressed
	for _, b := range buttonMap {
		init := base
		init.Button = b.button
		switch {
		case down&b.mask != 0:
			h.downTargets[b.button] = target
			target.DispatchEvent(dom.NewMouseEvent("mousedown", init))
			if b.button == mouse.ButtonRight {
				target.DispatchEvent(dom.NewMouseEvent("contextmenu", init))
			}
			dispatched = true
		case up&b.mask != 0:
			target.DispatchEvent(dom.NewMouseEvent("mouseup", init))
			clickTarget := commonAncestor(h.downTargets[b.button], target)
			delete(h.downTargets, b.button)
			if clickTarget != nil {
				name := "auxclick"
				if b.button == mouse.ButtonLeft {
					name = "click"
				}
				clickTarget.DispatchEvent(dom.NewMouseEvent(name, init))
			}
			dispatched = true
		}
	}

	if !dispatched && (!h.hasPos || !pos.Equal(h.lastPos)) {
		target.DispatchEvent(dom.NewMouseEvent("mousemove", base))
	}
	h.buttons = pressed
	h.lastPos, h.hasPos = pos, true
}

// commonAncestor returns the deepest node containing both a and b.
func commonAncestor(a, b *dom.Node) *dom.Node {
	if a == nil || b == nil {
		return nil
	}
	for n := a; n != nil; n = n.Parent() {
		if n == b || n.Contains(b) {
			return n
		}
	}
	return nil
}
