// Package shredder deconstructs structs into slot values.
package shredder

import (
	"reflect"

	"github.com/dball/slots/internal/record"
	"github.com/dball/slots/internal/structs/models"
	. "github.com/dball/slots/internal/types"
)

// Shredder shreds structs into slot values.
type Shredder interface {
	// Shred returns the values of the struct's slot-tagged fields by slot name.
	Shred(x any) (values map[string]Value, err error)
	// Apply sets the struct's slot values on the record.
	Apply(rec *record.Record, x any) (err error)
}

type shredder struct {
	analyzer models.Analyzer
}

// NewShredder returns a new shredder.
func NewShredder(analyzer models.Analyzer) Shredder {
	return &shredder{analyzer: analyzer}
}

func (s *shredder) Shred(x any) (values map[string]Value, err error) {
	val := reflect.ValueOf(x)
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			err = NewError("shredder.nilStruct", "type", val.Type())
			return
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		err = NewError("shredder.invalidStruct", "type", reflect.TypeOf(x))
		return
	}
	model, err := s.analyzer.Analyze(val.Type())
	if err != nil {
		return
	}
	values = make(map[string]Value, len(model.Fields))
	for _, field := range model.Fields {
		values[field.Config.Name], _ = ToValue(val.Field(field.Index).Interface())
	}
	return
}

func (s *shredder) Apply(rec *record.Record, x any) (err error) {
	values, err := s.Shred(x)
	if err != nil {
		return
	}
	raw := make(map[string]any, len(values))
	for name, v := range values {
		raw[name] = v
	}
	err = rec.SetAll(raw)
	return
}
