package database

import "fmt"

// TypeTag states the wire type of a bound parameter value. The caller
// declares the type explicitly; the facade never infers it from the
// runtime value and never coerces.
type TypeTag uint8

const (
	TypeString TypeTag = iota
	TypeInteger
	TypeBoolean
	TypeNull
)

func (t TypeTag) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeBoolean:
		return "boolean"
	case TypeNull:
		return "null"
	default:
		return fmt.Sprintf("typetag(%d)", uint8(t))
	}
}

// Binding associates a named placeholder in SQL text with a concrete
// value and its declared wire type. Marker includes the leading colon
// and must match a :identifier placeholder present in the statement.
type Binding struct {
	Marker string
	Value  any
	Type   TypeTag
}

// String builds a string binding for marker.
func String(marker, value string) Binding {
	return Binding{Marker: marker, Value: value, Type: TypeString}
}

// Int builds an integer binding for marker.
func Int(marker string, value int64) Binding {
	return Binding{Marker: marker, Value: value, Type: TypeInteger}
}

// Bool builds a boolean binding for marker.
func Bool(marker string, value bool) Binding {
	return Binding{Marker: marker, Value: value, Type: TypeBoolean}
}

// Null builds an SQL NULL binding for marker.
func Null(marker string) Binding {
	return Binding{Marker: marker, Type: TypeNull}
}

// Validate checks that the binding is well formed: the marker names a
// :placeholder and the value's runtime kind matches the declared tag.
func (b Binding) Validate() error {
	if len(b.Marker) < 2 || b.Marker[0] != ':' {
		return fmt.Errorf("%w: marker %q must name a :placeholder", ErrMalformedBinding, b.Marker)
	}

	switch b.Type {
	case TypeString:
		if _, ok := b.Value.(string); !ok {
			return b.kindError()
		}
	case TypeInteger:
		switch b.Value.(type) {
		case int, int32, int64:
		default:
			return b.kindError()
		}
	case TypeBoolean:
		if _, ok := b.Value.(bool); !ok {
			return b.kindError()
		}
	case TypeNull:
		if b.Value != nil {
			return b.kindError()
		}
	default:
		return fmt.Errorf("%w: %s carries unknown type tag %s", ErrMalformedBinding, b.Marker, b.Type)
	}

	return nil
}

func (b Binding) kindError() error {
	return fmt.Errorf("%w: %s declares %s but carries %T", ErrMalformedBinding, b.Marker, b.Type, b.Value)
}

// arg returns the driver-level argument for the binding.
func (b Binding) arg() any {
	if b.Type == TypeNull {
		return nil
	}
	return b.Value
}
