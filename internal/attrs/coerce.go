package attrs

import (
	"errors"
	"strconv"

	"github.com/dball/slots/internal/sys"
	"github.com/dball/slots/internal/types"
	"github.com/spf13/cast"
)

// coerceNumber is shared by the int and float kinds; neither truncates.
func coerceNumber(v types.Value, useNull bool) types.Value {
	switch x := v.(type) {
	case types.Undefined, types.Null:
		return emptyNumber(useNull)
	case types.String:
		if x == "" {
			return emptyNumber(useNull)
		}
	case types.Number:
		return x
	}
	s, err := cast.ToStringE(types.FromValue(v))
	if err != nil {
		return types.NaN()
	}
	return parseNumber(s)
}

func emptyNumber(useNull bool) types.Value {
	if useNull {
		return types.Null{}
	}
	return types.Number(0)
}

// parseNumber parses the string after stripping formatting characters. An
// out of range literal parses to an infinity.
func parseNumber(s string) types.Number {
	s = sys.NumericStrip.ReplaceAllString(s, "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return types.NaN()
	}
	return types.Number(f)
}

func coerceObject(v types.Value) types.Value {
	if types.Typeof(v) != "object" {
		return types.Null{}
	}
	return v
}

func coerceDate(v types.Value) types.Value {
	if !types.Truthy(v) {
		return types.Null{}
	}
	if inst, ok := v.(types.Inst); ok {
		return inst
	}
	s, err := cast.ToStringE(types.FromValue(v))
	if err != nil {
		return types.Null{}
	}
	t, err := cast.ToTimeE(s)
	if err != nil {
		return types.Null{}
	}
	return types.Inst(t)
}
