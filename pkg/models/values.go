package models

import (
	"errors"
	"fmt"
	"strconv"
)

// Preference validation errors
var (
	ErrUnknownKey    = errors.New("unknown preference key")
	ErrInvalidValue  = errors.New("invalid preference value")
	ErrOutOfRange    = errors.New("preference value out of range")
	ErrInvalidOption = errors.New("value is not one of the declared options")
)

// ValueKind identifies which member of Value is set
type ValueKind int

const (
	KindBool ValueKind = iota
	KindInt
	KindEnum
)

func (k ValueKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindEnum:
		return "enum"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a tagged union over the value shapes a preference can hold.
// Only the member matching Kind is meaningful.
type Value struct {
	Kind ValueKind
	Bool bool
	Int  int
	Enum string
}

// BoolValue wraps a boolean preference value
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// IntValue wraps an integer preference value
func IntValue(n int) Value {
	return Value{Kind: KindInt, Int: n}
}

// EnumValue wraps an enumerated preference value
func EnumValue(s string) Value {
	return Value{Kind: KindEnum, Enum: s}
}

func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindInt:
		return strconv.Itoa(v.Int)
	default:
		return v.Enum
	}
}

// Option is a single (label, value) choice of an enumerated preference
type Option struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

// Definition describes the shape, bounds and default of one preference key
type Definition struct {
	Key     Key
	Kind    ValueKind
	Default Value
	Min     int
	Max     int
	Options []Option
}

// Allows reports whether value is one of the declared options
func (d Definition) Allows(value string) bool {
	for _, opt := range d.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Validate checks v against the definition. Enumerations are closed: a value
// outside Options is rejected rather than stored.
func (d Definition) Validate(v Value) error {
	if v.Kind != d.Kind {
		return fmt.Errorf("%w: expected %s, got %s", ErrInvalidValue, d.Kind, v.Kind)
	}

	switch d.Kind {
	case KindInt:
		if v.Int < d.Min || v.Int > d.Max {
			return fmt.Errorf("%w: %d not in [%d, %d]", ErrOutOfRange, v.Int, d.Min, d.Max)
		}
	case KindEnum:
		if !d.Allows(v.Enum) {
			return fmt.Errorf("%w: %q", ErrInvalidOption, v.Enum)
		}
	}

	return nil
}
