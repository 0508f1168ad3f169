// Package sys holds the system constants shared by the slot packages.
package sys

import (
	"regexp"
	"strings"
)

// The builtin type keys.
const (
	TypeInt    = "int"
	TypeFloat  = "float"
	TypeNumber = "number"
	TypeObject = "object"
	TypeDate   = "date"
	TypeMixed  = "mixed"
)

// BuiltinTypes are the keys registered on every new registry, in order.
var BuiltinTypes = []string{TypeInt, TypeFloat, TypeNumber, TypeObject, TypeDate, TypeMixed}

// Tag is the struct tag that binds a field to a slot.
const Tag = "slot"

// NumericStrip matches the formatting characters removed from the string
// form of a value before it is parsed as a number: whitespace, digit group
// separators and underscores.
var NumericStrip = regexp.MustCompile(`[\s,_]`)

var typeKeyPattern = regexp.MustCompile(`^[a-z0-9_./-]+$`)

// ValidTypeKey is true for non-empty keys of lowercase letters, digits and _./-.
func ValidTypeKey(key string) bool {
	return typeKeyPattern.MatchString(key)
}

// NormalizeTypeKey lowercases and trims a type key given in a declaration.
func NormalizeTypeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// ValidSlotName is true for names that can identify a slot.
func ValidSlotName(name string) bool {
	return name != "" && strings.TrimSpace(name) == name
}
