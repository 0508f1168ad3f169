// Package slots contains the public types and functions for defining record
// schemas of typed, coerced slots and working with their records.
package slots

import (
	"reflect"

	"github.com/dball/slots/internal/attrs"
	"github.com/dball/slots/internal/config"
	"github.com/dball/slots/internal/record"
	"github.com/dball/slots/internal/structs/assembler"
	"github.com/dball/slots/internal/structs/models"
	"github.com/dball/slots/internal/structs/schemas"
	"github.com/dball/slots/internal/structs/shredder"
	"github.com/dball/slots/internal/types"
)

type (
	// Value is a slot value.
	Value = types.Value
	// Registry maps type keys to attribute types.
	Registry = attrs.Registry
	// Type is an attribute type.
	Type = attrs.Type
	// Attr describes a slot.
	Attr = attrs.Attr
	// AttrConfig declares a slot.
	AttrConfig = attrs.Config
	// Owner is handed to custom coercions.
	Owner = attrs.Owner
	// CoerceFunc is the coercion of a custom type.
	CoerceFunc = attrs.CoerceFunc
	// Schema is a named set of slots.
	Schema = record.Schema
	// Record holds a schema's slot values.
	Record = record.Record
	// Change describes a changed slot.
	Change = record.Change
	// UnknownTypeError reports an unregistered type key.
	UnknownTypeError = attrs.UnknownTypeError
)

// ErrUnknownType matches every UnknownTypeError.
var ErrUnknownType = attrs.ErrUnknownType

var analyzer = models.NewCachingAnalyzer()

// NewRegistry returns a registry holding the builtin types.
func NewRegistry(options ...attrs.Option) *Registry {
	return attrs.NewRegistry(options...)
}

// Define builds a schema from slot declarations.
func Define(registry *Registry, name string, configs ...AttrConfig) (*Schema, error) {
	return record.NewSchema(registry, name, configs...)
}

// DefineStruct builds a schema from the slot-tagged fields of the struct x,
// which may also be a pointer to a struct.
func DefineStruct(registry *Registry, x any) (*Schema, error) {
	return schemas.Analyze(registry, analyzer, reflect.TypeOf(x), "")
}

// New returns a record of the schema holding its default values.
func New(schema *Schema, options ...record.Option) *Record {
	return record.New(schema, options...)
}

// Assign sets the slot-tagged fields of the struct x on the record.
func Assign(rec *Record, x any) error {
	return shredder.NewShredder(analyzer).Apply(rec, x)
}

// Decode writes the record's values into the struct target points to.
func Decode(rec *Record, target any) error {
	return assembler.Assemble(analyzer, rec, target)
}

// LoadSchemas reads a schema file and builds its schemas by name.
func LoadSchemas(registry *Registry, path string) (map[string]*Schema, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg.Schemas(registry)
}

// ToValue converts a Go value into a slot value.
func ToValue(x any) Value {
	v, _ := types.ToValue(x)
	return v
}

// FromValue converts a slot value into a plain Go value.
func FromValue(v Value) any {
	return types.FromValue(v)
}

// IsNaN is true for the result of unparsable numeric input.
func IsNaN(v Value) bool {
	return types.IsNaN(v)
}
