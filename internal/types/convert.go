package types

import (
	"reflect"
	"strings"
	"time"
)

// ToValue converts a Go value into a slot value. Values outside the closed
// set are wrapped in Opaque, in which case ok is false.
func ToValue(x any) (v Value, ok bool) {
	ok = true
	switch xv := x.(type) {
	case nil:
		v = Null{}
	case Value:
		v = xv
	case bool:
		v = Bool(xv)
	case string:
		v = String(xv)
	case int:
		v = Number(xv)
	case int8:
		v = Number(xv)
	case int16:
		v = Number(xv)
	case int32:
		v = Number(xv)
	case int64:
		v = Number(xv)
	case uint:
		v = Number(xv)
	case uint8:
		v = Number(xv)
	case uint16:
		v = Number(xv)
	case uint32:
		v = Number(xv)
	case uint64:
		v = Number(xv)
	case float32:
		v = Number(xv)
	case float64:
		v = Number(xv)
	case time.Time:
		v = Inst(xv)
	case *time.Time:
		if xv == nil {
			v = Null{}
		} else {
			v = Inst(*xv)
		}
	case map[string]any:
		obj := make(Object, len(xv))
		for k, e := range xv {
			obj[k], _ = ToValue(e)
		}
		v = obj
	case []any:
		arr := make(Array, len(xv))
		for i, e := range xv {
			arr[i], _ = ToValue(e)
		}
		v = arr
	default:
		v, ok = reflectValue(reflect.ValueOf(x))
	}
	return
}

// reflectValue handles the named and composite kinds the type switch misses,
// e.g. pointers, typed slices, maps with string keys and structs.
func reflectValue(rv reflect.Value) (v Value, ok bool) {
	ok = true
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			v = Null{}
		} else {
			v, ok = ToValue(rv.Elem().Interface())
		}
	case reflect.Bool:
		v = Bool(rv.Bool())
	case reflect.String:
		v = String(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v = Number(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v = Number(rv.Uint())
	case reflect.Float32, reflect.Float64:
		v = Number(rv.Float())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			v = Null{}
			return
		}
		n := rv.Len()
		arr := make(Array, n)
		for i := 0; i < n; i++ {
			arr[i], _ = ToValue(rv.Index(i).Interface())
		}
		v = arr
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			v, ok = Opaque{X: rv.Interface()}, false
			return
		}
		if rv.IsNil() {
			v = Null{}
			return
		}
		obj := make(Object, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			obj[iter.Key().String()], _ = ToValue(iter.Value().Interface())
		}
		v = obj
	case reflect.Struct:
		v = structValue(rv)
	default:
		v, ok = Opaque{X: rv.Interface()}, false
	}
	return
}

// structValue converts a struct's exported fields into an object, keyed by
// field name or by the field's mapstructure tag name so the object decodes
// back into the same struct.
func structValue(rv reflect.Value) (obj Object) {
	typ := rv.Type()
	obj = make(Object, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, found := field.Tag.Lookup("mapstructure"); found {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		obj[name], _ = ToValue(rv.Field(i).Interface())
	}
	return
}

// FromValue converts a slot value back into plain Go values: nil for
// Undefined and Null, float64 for numbers, time.Time for instants,
// map[string]any and []any for objects and arrays.
func FromValue(v Value) (x any) {
	switch xv := v.(type) {
	case nil, Undefined, Null:
	case Bool:
		x = bool(xv)
	case Number:
		x = float64(xv)
	case String:
		x = string(xv)
	case Inst:
		x = time.Time(xv)
	case Object:
		m := make(map[string]any, len(xv))
		for k, e := range xv {
			m[k] = FromValue(e)
		}
		x = m
	case Array:
		s := make([]any, len(xv))
		for i, e := range xv {
			s[i] = FromValue(e)
		}
		x = s
	case Opaque:
		x = xv.X
	}
	return
}
