// Package semantic resolves static types and call signatures for a single C#
// compilation unit. It is a best-effort resolver: it knows the declarations in
// the unit, the predefined types, and a table of well-known enumerations, and
// reports "unknown" for everything else rather than guessing.
package semantic

import "strings"

// Category is the kind of a named type.
type Category uint8

const (
	CategoryUnknown Category = iota
	CategoryEnum
	CategoryStruct
	CategoryClass
	CategoryInterface
	CategoryDelegate
)

// String implements fmt.Stringer.
func (c Category) String() string {
	switch c {
	case CategoryEnum:
		return "enum"
	case CategoryStruct:
		return "struct"
	case CategoryClass:
		return "class"
	case CategoryInterface:
		return "interface"
	case CategoryDelegate:
		return "delegate"
	default:
		return "unknown"
	}
}

// Special identifies types the runtime treats specially.
type Special uint8

const (
	SpecialNone Special = iota
	SpecialObject
	SpecialBoolean
	SpecialString
	SpecialInt32
	SpecialEnum
)

// Type is a resolved static type.
type Type struct {
	// Name is the simple (unqualified) type name, e.g. "StringSplitOptions".
	// Nullable value types carry a trailing "?".
	Name string

	// Category is the kind of the type.
	Category Category

	// Special is set for the runtime's special types.
	Special Special
}

// IsEnum reports whether t is an enumeration type.
func (t Type) IsEnum() bool {
	return t.Category == CategoryEnum
}

// IsNullable reports whether t is a nullable value type wrapper.
func (t Type) IsNullable() bool {
	return strings.HasSuffix(t.Name, "?")
}

// Same reports whether t and other denote the same type.
func (t Type) Same(other Type) bool {
	return t.Name != "" && t.Name == other.Name && t.Category == other.Category
}

// String implements fmt.Stringer.
func (t Type) String() string {
	if t.Name == "" {
		return "?"
	}
	return t.Name
}

// Signature is the resolved target of a call.
type Signature struct {
	// Name is the method name.
	Name string

	// Params are the declared parameter types, in order.
	Params []Type

	// Return is the declared return type.
	Return Type

	// Static is true for methods invoked through a type rather than an instance.
	Static bool
}

// IsObjectEquals reports whether sig is the Equals(object) -> bool shape.
func (sig Signature) IsObjectEquals() bool {
	return sig.Return.Special == SpecialBoolean &&
		len(sig.Params) == 1 &&
		sig.Params[0].Special == SpecialObject
}
