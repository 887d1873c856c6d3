package binding

import (
	"time"

	"github.com/dshills/vbind/internal/dom"
	"github.com/google/uuid"
)

// invoker is the listener registered on a target for one binding key.
type invoker struct {
	id       string
	value    Value
	attached time.Time
	now      func() time.Time

	// fired is called after a once listener has been consumed.
	fired func(*invoker)
}

func newInvoker(v Value, now func() time.Time) *invoker {
	return &invoker{
		id:       uuid.NewString(),
		value:    v,
		attached: now(),
		now:      now,
	}
}

// HandleEvent implements dom.Listener.
func (inv *invoker) HandleEvent(e dom.Event) {
	if inv.fired != nil {
		defer inv.fired(inv)
	}
	ts := e.EnsureTimeStamp(inv.now())
	if ts.Before(inv.attached) {
		return
	}
	inv.value.call(e)
}
