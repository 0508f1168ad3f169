// Package record provides schemas of typed slots and the records holding
// their coerced, change-tracked values.
package record

import (
	"github.com/dball/slots/internal/attrs"
	. "github.com/dball/slots/internal/types"
)

// Schema is a named, ordered set of slot descriptors. A schema is built once
// and shared by all of its records.
type Schema struct {
	name    string
	attrs   []attrs.Attr
	indexes map[string]int
}

// NewSchema resolves the slot configs against the registry. Unknown type keys
// fail here rather than when a value is first set.
func NewSchema(registry *attrs.Registry, name string, configs ...attrs.Config) (schema *Schema, err error) {
	schema = &Schema{
		name:    name,
		attrs:   make([]attrs.Attr, 0, len(configs)),
		indexes: make(map[string]int, len(configs)),
	}
	for _, cfg := range configs {
		if _, ok := schema.indexes[cfg.Name]; ok {
			err = NewError("record.duplicateAttr", "schema", name, "name", cfg.Name)
			schema = nil
			return
		}
		attr, attrErr := registry.Build(cfg)
		if attrErr != nil {
			err = attrErr
			schema = nil
			return
		}
		schema.indexes[attr.Name] = len(schema.attrs)
		schema.attrs = append(schema.attrs, attr)
	}
	return
}

// Name returns the schema's name.
func (schema *Schema) Name() string {
	return schema.name
}

// Attr returns the descriptor of the named slot, if any.
func (schema *Schema) Attr(name string) (attr attrs.Attr, ok bool) {
	i, ok := schema.indexes[name]
	if ok {
		attr = schema.attrs[i]
	}
	return
}

// Attrs returns the slot descriptors in declaration order.
func (schema *Schema) Attrs() []attrs.Attr {
	out := make([]attrs.Attr, len(schema.attrs))
	copy(out, schema.attrs)
	return out
}

// Names returns the slot names in declaration order.
func (schema *Schema) Names() []string {
	names := make([]string, len(schema.attrs))
	for i, attr := range schema.attrs {
		names[i] = attr.Name
	}
	return names
}
