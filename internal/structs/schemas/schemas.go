// Package schemas provides for defining record schemas from structs.
package schemas

import (
	"reflect"
	"strings"

	"github.com/dball/slots/internal/attrs"
	"github.com/dball/slots/internal/record"
	"github.com/dball/slots/internal/structs/models"
)

// Analyze builds a record schema from the slot-tagged fields of the struct
// type. The schema is named after the type unless a name is given.
func Analyze(registry *attrs.Registry, analyzer models.Analyzer, typ reflect.Type, name string) (schema *record.Schema, err error) {
	model, err := analyzer.Analyze(typ)
	if err != nil {
		return
	}
	if name == "" {
		name = strings.ToLower(model.Type.Name())
	}
	schema, err = record.NewSchema(registry, name, model.Configs()...)
	return
}
