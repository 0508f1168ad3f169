package attrs

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dball/slots/internal/sys"
	"github.com/dball/slots/internal/types"
	"github.com/go-viper/mapstructure/v2"
)

// Config is the declaration of a single slot.
type Config struct {
	// Name is the slot name.
	Name string `mapstructure:"name"`
	// Type is the registry key of the slot's type. Empty means mixed.
	Type string `mapstructure:"type"`
	// UseNull is only meaningful for primitive types.
	UseNull bool `mapstructure:"usenull"`
	// Default, if not nil, is coerced by the slot and used as its default.
	Default any `mapstructure:"default"`
}

// Build resolves the config's type and returns the slot's descriptor.
func (r *Registry) Build(cfg Config) (attr Attr, err error) {
	if !sys.ValidSlotName(cfg.Name) {
		err = types.NewError("attrs.invalidName", "name", cfg.Name)
		return
	}
	key := cfg.Type
	if key == "" {
		key = sys.TypeMixed
	}
	typ, err := r.Resolve(key)
	if err != nil {
		err = errors.Wrapf(err, "slot %q", cfg.Name)
		return
	}
	attr = Attr{
		Name:    cfg.Name,
		Type:    typ,
		UseNull: cfg.UseNull && typ.Primitive(),
	}
	if cfg.Default != nil {
		def, _ := types.ToValue(cfg.Default)
		attr.Default = attr.Coerce(nil, def, types.Undefined{})
		attr.HasDefault = true
	}
	return
}

// DecodeConfig decodes a slot declaration from a generic map, as read from a
// schema file. Keys match case-insensitively and ignore underscores and
// dashes, so useNull, use_null and usenull are equivalent. defaultValue is
// accepted for default.
func DecodeConfig(raw map[string]any) (cfg Config, err error) {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		MatchName: func(mapKey, fieldName string) bool {
			key := normalizeConfigKey(mapKey)
			if key == "defaultvalue" {
				key = "default"
			}
			return key == normalizeConfigKey(fieldName)
		},
	})
	if err != nil {
		return
	}
	if err = decoder.Decode(raw); err != nil {
		err = errors.Mark(errors.Wrap(err, "decoding slot config"), types.Error{Code: "attrs.invalidConfig"})
	}
	return
}

func normalizeConfigKey(key string) string {
	key = strings.ToLower(key)
	return strings.NewReplacer("_", "", "-", "").Replace(key)
}
