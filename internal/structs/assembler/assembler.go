// Package assembler provides for the construction of structs from records.
package assembler

import (
	"math"
	"reflect"
	"time"

	"github.com/dball/slots/internal/record"
	"github.com/dball/slots/internal/structs/models"
	. "github.com/dball/slots/internal/types"
	"github.com/go-viper/mapstructure/v2"
)

// Assemble writes the record's slot values into the slot-tagged fields of the
// struct the target points to. Null and Undefined values zero their fields.
func Assemble(analyzer models.Analyzer, rec *record.Record, target any) (err error) {
	ptr := reflect.ValueOf(target)
	if ptr.Kind() != reflect.Pointer || ptr.IsNil() {
		err = NewError("assembler.targetNotPointer", "type", reflect.TypeOf(target))
		return
	}
	value := ptr.Elem()
	if value.Kind() != reflect.Struct {
		err = NewError("assembler.targetValueNotStruct", "type", value.Type())
		return
	}
	model, err := analyzer.Analyze(value.Type())
	if err != nil {
		return
	}
	for _, field := range model.Fields {
		name := field.Config.Name
		err = setField(value.Field(field.Index), rec.Get(name))
		if err != nil {
			err = NewError("assembler.invalidValue", "slot", name, "value", rec.Get(name), "cause", err.Error())
			return
		}
	}
	return
}

func setField(field reflect.Value, v Value) (err error) {
	if IsUndefined(v) || IsNull(v) {
		field.SetZero()
		return
	}
	switch field.Kind() {
	case reflect.Pointer:
		elem := reflect.New(field.Type().Elem())
		err = setField(elem.Elem(), v)
		if err == nil {
			field.Set(elem)
		}
		return
	case reflect.Interface:
		x := FromValue(v)
		if x == nil {
			field.SetZero()
			return
		}
		if !reflect.TypeOf(x).AssignableTo(field.Type()) {
			err = NewError("assembler.typeMismatch", "type", field.Type(), "value", reflect.TypeOf(x))
			return
		}
		field.Set(reflect.ValueOf(x))
		return
	}
	switch x := v.(type) {
	case Number:
		err = setNumber(field, float64(x))
	case Inst:
		if field.Type() != TimeType {
			err = NewError("assembler.typeMismatch", "kind", field.Kind())
			return
		}
		field.Set(reflect.ValueOf(time.Time(x)))
	case Bool:
		if field.Kind() != reflect.Bool {
			err = NewError("assembler.typeMismatch", "kind", field.Kind())
			return
		}
		field.SetBool(bool(x))
	case String:
		if field.Kind() != reflect.String {
			err = NewError("assembler.typeMismatch", "kind", field.Kind())
			return
		}
		field.SetString(string(x))
	default:
		err = mapstructure.Decode(FromValue(v), field.Addr().Interface())
	}
	return
}

func setNumber(field reflect.Value, f float64) (err error) {
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		field.SetFloat(f)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// The range is checked on the float, int64(f) is undefined outside it.
		limit := math.Ldexp(1, field.Type().Bits()-1)
		if math.IsNaN(f) || f < -limit || f >= limit {
			err = NewError("assembler.notRepresentable", "number", f, "kind", field.Kind())
			return
		}
		field.SetInt(int64(f))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if math.IsNaN(f) || f < 0 || f >= math.Ldexp(1, field.Type().Bits()) {
			err = NewError("assembler.notRepresentable", "number", f, "kind", field.Kind())
			return
		}
		field.SetUint(uint64(f))
	default:
		err = NewError("assembler.typeMismatch", "kind", field.Kind())
	}
	return
}
