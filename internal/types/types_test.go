package types

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTypeof(t *testing.T) {
	epoch := time.Date(1969, 7, 20, 20, 17, 54, 0, time.UTC)
	cases := map[string][]Value{
		"undefined": {Undefined{}, nil},
		"object":    {Null{}, Object{}, Array{Number(1)}, Inst(epoch)},
		"boolean":   {Bool(true), Bool(false)},
		"number":    {Number(0), NaN()},
		"string":    {String(""), String("x")},
		"function":  {Opaque{X: func() {}}},
		"opaque":    {Opaque{X: struct{}{}}},
	}
	for tag, values := range cases {
		for _, v := range values {
			assert.Equal(t, tag, Typeof(v), "%v", v)
		}
	}
}

func TestTruthy(t *testing.T) {
	for _, v := range []Value{Undefined{}, Null{}, Bool(false), Number(0), NaN(), String("")} {
		assert.False(t, Truthy(v), "%v", v)
	}
	for _, v := range []Value{Bool(true), Number(-1), String("0"), Object{}, Array{}, Inst(time.Time{}), Opaque{X: 1}} {
		assert.True(t, Truthy(v), "%v", v)
	}
}

func TestEqual(t *testing.T) {
	epoch := time.Date(1969, 7, 20, 20, 17, 54, 0, time.UTC)
	fn := func() {}

	assert.True(t, Equal(NaN(), NaN()))
	assert.True(t, Equal(nil, Undefined{}))
	assert.False(t, Equal(Null{}, Undefined{}))
	assert.False(t, Equal(Number(0), String("0")))
	assert.True(t, Equal(Inst(epoch), Inst(epoch.In(time.FixedZone("x", 3600)))))
	assert.True(t, Equal(
		Object{"a": Array{Number(1), String("b")}},
		Object{"a": Array{Number(1), String("b")}},
	))
	assert.False(t, Equal(Object{"a": Number(1)}, Object{"b": Number(1)}))
	assert.True(t, Equal(Opaque{X: fn}, Opaque{X: fn}))
}

func TestToValue(t *testing.T) {
	epoch := time.Date(1969, 7, 20, 20, 17, 54, 0, time.UTC)
	four := 4
	var nilPtr *int

	t.Run("scalars", func(t *testing.T) {
		expected := map[any]Value{
			"x":          String("x"),
			true:         Bool(true),
			int8(3):      Number(3),
			uint64(7):    Number(7),
			float32(1.5): Number(1.5),
			Number(2):    Number(2),
			String("y"):  String("y"),
			Undefined{}:  Undefined{},
		}
		for x, v := range expected {
			actual, ok := ToValue(x)
			assert.True(t, ok)
			assert.Equal(t, v, actual)
		}
	})

	t.Run("nil and pointers", func(t *testing.T) {
		v, ok := ToValue(nil)
		assert.True(t, ok)
		assert.Equal(t, Null{}, v)
		v, _ = ToValue(nilPtr)
		assert.Equal(t, Null{}, v)
		v, _ = ToValue(&four)
		assert.Equal(t, Number(4), v)
		v, _ = ToValue(&epoch)
		assert.Equal(t, Inst(epoch), v)
	})

	t.Run("composites", func(t *testing.T) {
		v, ok := ToValue(map[string]any{"tags": []string{"a", "b"}, "n": 1})
		assert.True(t, ok)
		assert.Equal(t, Object{"tags": Array{String("a"), String("b")}, "n": Number(1)}, v)
	})

	t.Run("structs", func(t *testing.T) {
		type address struct {
			City   string `mapstructure:"city"`
			Zip    *int
			Hidden string `mapstructure:"-"`
			secret string
		}
		type customer struct {
			Address address
			Since   time.Time
		}
		zip := 1234
		expected := Object{
			"Address": Object{"city": String("Oslo"), "Zip": Number(1234)},
			"Since":   Inst(epoch),
		}
		v, ok := ToValue(customer{Address: address{City: "Oslo", Zip: &zip, Hidden: "h", secret: "s"}, Since: epoch})
		assert.True(t, ok)
		assert.Equal(t, expected, v)
		assert.Equal(t, "object", Typeof(v))
		v, ok = ToValue(&customer{Address: address{City: "Oslo", Zip: &zip}, Since: epoch})
		assert.True(t, ok)
		assert.Equal(t, expected, v)
	})

	t.Run("opaque", func(t *testing.T) {
		v, ok := ToValue(func() {})
		assert.False(t, ok)
		assert.Equal(t, "function", Typeof(v))
		v, ok = ToValue(map[int]string{1: "a"})
		assert.False(t, ok)
		assert.Equal(t, KindOpaque, v.Kind())
	})

	t.Run("round trip", func(t *testing.T) {
		x := map[string]any{"when": epoch, "list": []any{1.5, "s", nil}}
		v, _ := ToValue(x)
		assert.Equal(t, x, FromValue(v))
	})
}

func TestError(t *testing.T) {
	err := NewError("record.unknownAttr", "name", "title", "schema", "person")
	assert.Equal(t, "record.unknownAttr: name=title schema=person", err.Error())
	assert.True(t, errors.Is(err, Error{Code: "record.unknownAttr"}))
	assert.False(t, errors.Is(err, Error{Code: "record.duplicateAttr"}))
	assert.Panics(t, func() { NewError("x", "dangling") })
}
