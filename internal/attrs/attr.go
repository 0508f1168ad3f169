// Package attrs provides attribute types, the descriptors built from them, and
// the coercions applied when a slot value is set.
package attrs

import (
	"fmt"

	"github.com/dball/slots/internal/types"
)

// Kind is the closed set of attribute variants.
type Kind uint8

const (
	Mixed Kind = iota
	Int
	Float
	Object
	Date
	Custom
)

func (k Kind) String() string {
	switch k {
	case Mixed:
		return "mixed"
	case Int:
		return "int"
	case Float:
		return "float"
	case Object:
		return "object"
	case Date:
		return "date"
	case Custom:
		return "custom"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Owner is the entity whose slot is being set. Coercers may read sibling
// slots through it. The owner may be nil, e.g. when coercing a default.
type Owner interface {
	Get(name string) types.Value
}

// CoerceFunc is the coercion of a custom attribute type.
type CoerceFunc func(attr Attr, owner Owner, newValue types.Value, oldValue types.Value) types.Value

// Type is an attribute type, registered under a key.
type Type struct {
	// Key is the registry key of the type.
	Key string
	// Kind selects the coercion.
	Kind Kind
	// Default is the value of unset slots of this type. Nil means Undefined.
	Default types.Value
	// Coerce is the coercion of a Custom type. It is ignored for other kinds.
	Coerce CoerceFunc
}

// Primitive is true for the numeric kinds, which honor the useNull policy.
func (typ Type) Primitive() bool {
	return typ.Kind == Int || typ.Kind == Float
}

// CustomType returns a custom type with the given coercion and default.
func CustomType(coerce CoerceFunc, def types.Value) Type {
	return Type{Kind: Custom, Coerce: coerce, Default: def}
}

// Attr describes a named slot: its type and configuration. An Attr is built
// once per schema and shared by every record of that schema.
type Attr struct {
	// Name is the slot name.
	Name string
	// Type is the resolved attribute type.
	Type Type
	// UseNull makes empty input coerce to Null instead of the zero value.
	// It only applies to primitive types.
	UseNull bool
	// Default is the configured default, if HasDefault.
	Default types.Value
	// HasDefault indicates Default was configured.
	HasDefault bool
}

// DefaultValue is the value of the slot before anything has been set.
func (attr Attr) DefaultValue() (v types.Value) {
	switch {
	case attr.HasDefault:
		v = attr.Default
	case attr.Type.Primitive() && attr.UseNull:
		v = types.Null{}
	case attr.Type.Primitive():
		v = types.Number(0)
	case attr.Type.Default != nil:
		v = attr.Type.Default
	default:
		v = types.Undefined{}
	}
	return
}

// Coerce returns the value to store when newValue is set on the slot, which
// currently holds oldValue. Coercion never fails; bad input degrades to Null,
// zero or NaN depending on the kind.
func (attr Attr) Coerce(owner Owner, newValue types.Value, oldValue types.Value) (v types.Value) {
	if newValue == nil {
		newValue = types.Undefined{}
	}
	switch attr.Type.Kind {
	case Int, Float:
		v = coerceNumber(newValue, attr.UseNull)
	case Object:
		v = coerceObject(newValue)
	case Date:
		v = coerceDate(newValue)
	case Custom:
		if attr.Type.Coerce == nil {
			v = newValue
			break
		}
		v = attr.Type.Coerce(attr, owner, newValue, oldValue)
		if v == nil {
			v = types.Undefined{}
		}
	default:
		v = newValue
	}
	return
}
