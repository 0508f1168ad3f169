// Package types defines the closed set of values held by record slots.
package types

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"time"
)

// Void is used for values in maps used as sets.
type Void struct{}

// Kind identifies a value variant.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindInst
	KindObject
	KindArray
	KindOpaque
)

var kindNames = [...]string{
	KindUndefined: "undefined",
	KindNull:      "null",
	KindBool:      "bool",
	KindNumber:    "number",
	KindString:    "string",
	KindInst:      "inst",
	KindObject:    "object",
	KindArray:     "array",
	KindOpaque:    "opaque",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Value is an immutable slot value. Nil is not a valid value, Undefined is.
type Value interface {
	Kind() Kind
}

// Undefined is the value of a slot that has never been given one.
type Undefined struct{}

func (Undefined) String() string { return "#undefined" }

// Null is the explicit absence of a value.
type Null struct{}

func (Null) String() string { return "#null" }

// Bool is a boolean.
type Bool bool

func (b Bool) String() string {
	if bool(b) {
		return "#t"
	} else {
		return "#f"
	}
}

// Number is a floating-point number. NaN is a valid number, the result of
// failed numeric coercion.
type Number float64

func (n Number) String() string {
	return fmt.Sprintf("#num(%v)", float64(n))
}

// String is a string.
type String string

func (s String) String() string {
	return fmt.Sprintf("#str(%q)", string(s))
}

// Inst is an instant in time.
type Inst time.Time

func (inst Inst) String() string {
	return fmt.Sprintf("#inst(%q)", time.Time(inst).Format(time.RFC3339Nano))
}

// Object is a plain keyed object.
type Object map[string]Value

func (o Object) String() string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%q: %v", k, o[k])
	}
	return "#obj{" + strings.Join(parts, ", ") + "}"
}

// Array is an ordered list of values.
type Array []Value

func (a Array) String() string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = fmt.Sprint(v)
	}
	return "#arr[" + strings.Join(parts, ", ") + "]"
}

// Opaque holds any Go value outside the closed set, e.g. a function. Opaque
// values are only ever passed through.
type Opaque struct {
	X any
}

func (o Opaque) String() string {
	return fmt.Sprintf("#opaque(%T)", o.X)
}

func (Undefined) Kind() Kind { return KindUndefined }
func (Null) Kind() Kind      { return KindNull }
func (Bool) Kind() Kind      { return KindBool }
func (Number) Kind() Kind    { return KindNumber }
func (String) Kind() Kind    { return KindString }
func (Inst) Kind() Kind      { return KindInst }
func (Object) Kind() Kind    { return KindObject }
func (Array) Kind() Kind     { return KindArray }
func (Opaque) Kind() Kind    { return KindOpaque }

// TimeType is the type of golang's Time value.
var TimeType = reflect.TypeOf(time.Time{})

// NaN returns the not-a-number value.
func NaN() Number {
	return Number(math.NaN())
}

// IsNaN is true if v is the not-a-number value.
func IsNaN(v Value) bool {
	n, ok := v.(Number)
	return ok && math.IsNaN(float64(n))
}

// IsNull is true if v is Null.
func IsNull(v Value) bool {
	_, ok := v.(Null)
	return ok
}

// IsUndefined is true if v is Undefined or nil.
func IsUndefined(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Undefined)
	return ok
}

// Typeof returns the type tag of a value: Null, objects, arrays and
// instants all report "object".
func Typeof(v Value) (tag string) {
	switch x := v.(type) {
	case nil, Undefined:
		tag = "undefined"
	case Null, Object, Array, Inst:
		tag = "object"
	case Bool:
		tag = "boolean"
	case Number:
		tag = "number"
	case String:
		tag = "string"
	case Opaque:
		if x.X != nil && reflect.TypeOf(x.X).Kind() == reflect.Func {
			tag = "function"
		} else {
			tag = "opaque"
		}
	default:
		tag = "opaque"
	}
	return
}

// Truthy reports whether v counts as true. Undefined, Null, false, 0, NaN and
// the empty string are falsy, everything else is truthy.
func Truthy(v Value) (ok bool) {
	switch x := v.(type) {
	case nil, Undefined, Null:
	case Bool:
		ok = bool(x)
	case Number:
		ok = x != 0 && !math.IsNaN(float64(x))
	case String:
		ok = x != ""
	default:
		ok = true
	}
	return
}

// Equal reports whether two values are structurally equal. Unlike float
// comparison, NaN equals NaN.
func Equal(a, b Value) bool {
	if a == nil {
		a = Undefined{}
	}
	if b == nil {
		b = Undefined{}
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Undefined, Null:
		return true
	case Bool:
		return x == b.(Bool)
	case Number:
		y := b.(Number)
		if math.IsNaN(float64(x)) {
			return math.IsNaN(float64(y))
		}
		return x == y
	case String:
		return x == b.(String)
	case Inst:
		return time.Time(x).Equal(time.Time(b.(Inst)))
	case Object:
		y := b.(Object)
		if len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, ok := y[k]
			if !ok || !Equal(xv, yv) {
				return false
			}
		}
		return true
	case Array:
		y := b.(Array)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case Opaque:
		y := b.(Opaque)
		xv, yv := reflect.ValueOf(x.X), reflect.ValueOf(y.X)
		if xv.Kind() == reflect.Func && yv.Kind() == reflect.Func {
			return xv.Pointer() == yv.Pointer()
		}
		return reflect.DeepEqual(x.X, y.X)
	}
	return false
}
