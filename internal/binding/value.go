package binding

import (
	"fmt"
	"reflect"

	"github.com/dshills/vbind/internal/dom"
	"github.com/dshills/vbind/internal/modifier"
)

// Value is a normalized handler value: empty, a single callable or an
// ordered sequence of callables.
type Value struct {
	callables []modifier.Callable
	sequence  bool
}

// NewValue normalizes v. See the package documentation for the accepted
// types.
func NewValue(v any) (Value, error) {
	if v, ok := v.(Value); ok {
		return v, nil
	}
	if isNil(v) {
		return Value{}, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		if _, ok := v.(modifier.Callable); !ok {
			return newSequence(rv)
		}
	}

	c, err := callable(v)
	if err != nil {
		return Value{}, &HandlerTypeError{Index: -1, Type: err.Error()}
	}
	return Value{callables: []modifier.Callable{c}}, nil
}

func newSequence(rv reflect.Value) (Value, error) {
	if rv.Len() == 0 {
		return Value{}, nil
	}
	out := make([]modifier.Callable, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if isNil(elem) {
			return Value{}, &HandlerTypeError{Index: i, Type: "<nil>"}
		}
		c, err := callable(elem)
		if err != nil {
			return Value{}, &HandlerTypeError{Index: i, Type: err.Error()}
		}
		out = append(out, c)
	}
	return Value{callables: out, sequence: true}, nil
}

// callable converts a single non-nil value. The error text is the type
// name of v.
func callable(v any) (modifier.Callable, error) {
	switch c := v.(type) {
	case modifier.Callable:
		return c, nil
	case func(dom.Event):
		return modifier.Func(c), nil
	case dom.Listener:
		return listenerCallable{c}, nil
	default:
		return nil, fmt.Errorf("%T", v)
	}
}

type listenerCallable struct {
	l dom.Listener
}

func (c listenerCallable) Call(e dom.Event) { c.l.HandleEvent(e) }

// IsEmpty reports whether the value removes the binding.
func (v Value) IsEmpty() bool { return len(v.callables) == 0 }

// IsSequence reports whether the value was given as a sequence.
func (v Value) IsSequence() bool { return v.sequence }

// Len returns the number of callables.
func (v Value) Len() int { return len(v.callables) }

// Callables returns a copy of the callables in call order.
func (v Value) Callables() []modifier.Callable {
	return append([]modifier.Callable(nil), v.callables...)
}

// call invokes the callables in order. A sequence stops once a callable
// has stopped immediate propagation.
func (v Value) call(e dom.Event) {
	for _, c := range v.callables {
		c.Call(e)
		if v.sequence && e.ImmediatePropagationStopped() {
			return
		}
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	case reflect.Slice:
		return rv.IsNil() || rv.Len() == 0
	}
	return false
}
