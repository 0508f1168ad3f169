// Package models provides models of structs with slot bindings.
package models

import (
	"reflect"
	"strings"
	"sync"

	"github.com/dball/slots/internal/attrs"
	"github.com/dball/slots/internal/sys"
	. "github.com/dball/slots/internal/types"
)

// StructModel models a struct that has fields bound to slots, whose instances
// correspond to records.
type StructModel struct {
	// Type is the struct type, whose kind must be a struct.
	Type reflect.Type
	// Fields are the fields bound to slots, in field order.
	Fields []FieldModel
}

// Field returns the field model bound to the given slot, if any.
func (model StructModel) Field(name string) (field FieldModel, ok bool) {
	for _, f := range model.Fields {
		if f.Config.Name == name {
			field = f
			ok = true
			break
		}
	}
	return
}

// Configs returns the slot declarations of the fields, in field order.
func (model StructModel) Configs() []attrs.Config {
	configs := make([]attrs.Config, len(model.Fields))
	for i, field := range model.Fields {
		configs[i] = field.Config
	}
	return configs
}

// FieldModel models a field bound to a slot.
type FieldModel struct {
	// Index is the position of the field in the struct.
	Index int
	// FieldType is the field's go type.
	FieldType reflect.Type
	// Config is the slot declaration.
	Config attrs.Config
}

// IsPointer indicates that the field value is a pointer.
func (field FieldModel) IsPointer() bool {
	return field.FieldType.Kind() == reflect.Pointer
}

// Analyzer builds struct models.
type Analyzer interface {
	Analyze(typ reflect.Type) (model StructModel, err error)
}

type cachingAnalyzer struct {
	lock   sync.Mutex
	models map[reflect.Type]StructModel
}

// NewCachingAnalyzer returns an analyzer that analyzes each type once.
func NewCachingAnalyzer() Analyzer {
	return &cachingAnalyzer{models: map[reflect.Type]StructModel{}}
}

func (a *cachingAnalyzer) Analyze(typ reflect.Type) (model StructModel, err error) {
	a.lock.Lock()
	defer a.lock.Unlock()
	model, ok := a.models[typ]
	if ok {
		return
	}
	model, err = Analyze(typ)
	if err == nil {
		a.models[typ] = model
	}
	return
}

// Analyze builds a struct model for the given type. Pointers to structs are
// dereferenced.
func Analyze(typ reflect.Type) (model StructModel, err error) {
	if typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		err = NewError("models.notStruct", "type", typ)
		return
	}
	model.Type = typ
	n := typ.NumField()
	fields := make([]FieldModel, 0, n)
	names := make(map[string]Void, n)
	for i := 0; i < n; i++ {
		field, ok, fieldErr := parseField(typ.Field(i))
		if fieldErr != nil {
			err = fieldErr
			return
		}
		if !ok {
			continue
		}
		if _, dup := names[field.Config.Name]; dup {
			err = NewError("models.duplicateSlot", "type", typ, "name", field.Config.Name)
			return
		}
		names[field.Config.Name] = Void{}
		field.Index = i
		fields = append(fields, field)
	}
	model.Fields = fields
	return
}

// TypeForKind infers the type key for a field type declared without one.
func TypeForKind(typ reflect.Type) (key string, ok bool) {
	ok = true
	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		key = sys.TypeInt
	case reflect.Float32, reflect.Float64:
		key = sys.TypeFloat
	case reflect.Bool, reflect.String, reflect.Interface:
		key = sys.TypeMixed
	case reflect.Struct:
		if TimeType == typ {
			key = sys.TypeDate
		} else {
			key = sys.TypeObject
		}
	case reflect.Map, reflect.Slice, reflect.Array:
		key = sys.TypeObject
	case reflect.Pointer:
		// This repeats the switch, but without the pointer case.
		if typ.Elem().Kind() == reflect.Pointer {
			ok = false
			return
		}
		key, ok = TypeForKind(typ.Elem())
	default:
		ok = false
	}
	return
}

func parseField(field reflect.StructField) (model FieldModel, ok bool, err error) {
	tag, found := field.Tag.Lookup(sys.Tag)
	if !found || tag == "-" {
		return
	}
	if !field.IsExported() {
		err = NewError("models.unexportedField", "tag", tag, "field", field.Name)
		return
	}
	cfg, err := parseTag(tag)
	if err != nil {
		return
	}
	if cfg.Name == "" {
		cfg.Name = field.Name
	}
	inferred, valid := TypeForKind(field.Type)
	if !valid {
		err = NewError("models.invalidType", "tag", tag, "type", field.Type, "kind", field.Type.Kind())
		return
	}
	if cfg.Type == "" {
		cfg.Type = inferred
	}
	model = FieldModel{FieldType: field.Type, Config: cfg}
	ok = true
	return
}

func parseTag(tag string) (cfg attrs.Config, err error) {
	parts := strings.Split(tag, ",")
	cfg.Name = strings.TrimSpace(parts[0])
	n := len(parts)
	for i := 1; i < n; i++ {
		part := strings.TrimSpace(parts[i])
		switch {
		case part == "usenull":
			cfg.UseNull = true
		case strings.HasPrefix(part, "type="):
			cfg.Type = sys.NormalizeTypeKey(part[5:])
		case strings.HasPrefix(part, "default="):
			// The default runs to the end of the tag, commas included.
			cfg.Default = strings.Join(append([]string{part[8:]}, parts[i+1:]...), ",")
			return
		default:
			err = NewError("models.invalidDirective", "tag", tag, "directive", part)
			return
		}
	}
	return
}
