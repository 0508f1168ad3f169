package record

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	. "github.com/dball/slots/internal/types"
)

// Change is a slot whose value differs from its value when changes were last
// cleared.
type Change struct {
	Name string
	Old  Value
	New  Value
}

// Record holds the values of a schema's slots. Every value is stored as
// coerced by its slot. Records are not safe for concurrent mutation.
type Record struct {
	// ID is a client-side identifier, unique per record.
	ID uuid.UUID

	schema *Schema
	values []Value
	// baseline holds the values as of the last ClearChanges.
	baseline []Value
	logger   *zap.Logger
}

// Option configures a new record.
type Option func(*Record)

// WithLogger sets the logger slot changes are reported to.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Record) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithID gives the record a known id instead of a random one.
func WithID(id uuid.UUID) Option {
	return func(r *Record) {
		r.ID = id
	}
}

// New returns a record of the schema with every slot at its default value
// and no changes.
func New(schema *Schema, options ...Option) (r *Record) {
	r = &Record{
		ID:     uuid.New(),
		schema: schema,
		values: make([]Value, len(schema.attrs)),
		logger: zap.NewNop(),
	}
	for _, option := range options {
		option(r)
	}
	for i, attr := range schema.attrs {
		r.values[i] = attr.DefaultValue()
	}
	r.ClearChanges()
	return
}

// Schema returns the record's schema.
func (r *Record) Schema() *Schema {
	return r.schema
}

// Get returns the value of the named slot, or Undefined if the schema has no
// such slot.
func (r *Record) Get(name string) Value {
	i, ok := r.schema.indexes[name]
	if !ok {
		return Undefined{}
	}
	return r.values[i]
}

// Has is true if the named slot holds neither Undefined nor Null.
func (r *Record) Has(name string) bool {
	v := r.Get(name)
	return !IsUndefined(v) && !IsNull(v)
}

// Set coerces x through the named slot and stores the result, which is
// returned. Bad data never fails; only an unknown slot name does.
func (r *Record) Set(name string, x any) (stored Value, err error) {
	i, ok := r.schema.indexes[name]
	if !ok {
		err = NewError("record.unknownAttr", "schema", r.schema.name, "name", name)
		return
	}
	stored = r.set(i, x)
	return
}

func (r *Record) set(i int, x any) (stored Value) {
	attr := r.schema.attrs[i]
	v, _ := ToValue(x)
	old := r.values[i]
	stored = attr.Coerce(r, v, old)
	r.values[i] = stored
	if !Equal(old, stored) {
		r.logger.Debug("slot changed",
			zap.String("schema", r.schema.name),
			zap.Stringer("record", r.ID),
			zap.String("slot", attr.Name),
			zap.Any("old", old),
			zap.Any("new", stored))
	}
	return
}

// SetAll sets each of the given slots in schema order. No slot is set if any
// name is unknown.
func (r *Record) SetAll(values map[string]any) (err error) {
	for name := range values {
		if _, ok := r.schema.indexes[name]; !ok {
			err = NewError("record.unknownAttr", "schema", r.schema.name, "name", name)
			return
		}
	}
	for i, attr := range r.schema.attrs {
		x, ok := values[attr.Name]
		if ok {
			r.set(i, x)
		}
	}
	return
}

// Unset restores the named slot's default value.
func (r *Record) Unset(name string) (err error) {
	i, ok := r.schema.indexes[name]
	if !ok {
		err = NewError("record.unknownAttr", "schema", r.schema.name, "name", name)
		return
	}
	r.values[i] = r.schema.attrs[i].DefaultValue()
	return
}

// HasChanged is true if any slot differs from its baseline value.
func (r *Record) HasChanged() bool {
	for i, v := range r.values {
		if !Equal(r.baseline[i], v) {
			return true
		}
	}
	return false
}

// Changed returns the changed slots in schema order.
func (r *Record) Changed() (changes []Change) {
	for i, v := range r.values {
		if !Equal(r.baseline[i], v) {
			changes = append(changes, Change{Name: r.schema.attrs[i].Name, Old: r.baseline[i], New: v})
		}
	}
	return
}

// Previous returns the named slot's value as of the last ClearChanges.
func (r *Record) Previous(name string) Value {
	i, ok := r.schema.indexes[name]
	if !ok {
		return Undefined{}
	}
	return r.baseline[i]
}

// ClearChanges makes the current values the baseline.
func (r *Record) ClearChanges() {
	r.baseline = make([]Value, len(r.values))
	copy(r.baseline, r.values)
}

// Values returns the slot values by name.
func (r *Record) Values() map[string]Value {
	values := make(map[string]Value, len(r.values))
	for i, v := range r.values {
		values[r.schema.attrs[i].Name] = v
	}
	return values
}

// Native returns the slot values by name as plain Go values.
func (r *Record) Native() map[string]any {
	values := make(map[string]any, len(r.values))
	for i, v := range r.values {
		values[r.schema.attrs[i].Name] = FromValue(v)
	}
	return values
}
