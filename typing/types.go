package typing

// CXType is the type of a CX value.  CX has no user-defined types: every value
// is an unsigned 32-bit integer, a boolean or a double-precision float.
type CXType int

// Enumeration of CX types.
const (
	// Error is the placeholder type of an expression whose type has not been
	// resolved, and the "no type" marker of a `for` without a loop variable.
	Error CXType = iota
	Int
	Bool
	Double
)

var typeNames = [...]string{
	Error:  "<error>",
	Int:    "int",
	Bool:   "bool",
	Double: "double",
}

func (t CXType) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "<unknown>"
	}

	return typeNames[t]
}

// IsValid returns whether t names an actual value type.
func (t CXType) IsValid() bool {
	return t == Int || t == Bool || t == Double
}

// Signature is the call signature of a function: its return type and the types
// of its parameters in order.
type Signature struct {
	Return CXType
	Params []CXType
}

// Equals returns whether two signatures have the same return type and the same
// parameter types.
func (s Signature) Equals(other Signature) bool {
	if s.Return != other.Return || len(s.Params) != len(other.Params) {
		return false
	}

	for i, p := range s.Params {
		if p != other.Params[i] {
			return false
		}
	}

	return true
}

func (s Signature) String() string {
	str := "("
	for i, p := range s.Params {
		if i > 0 {
			str += ", "
		}
		str += p.String()
	}

	return str + ") -> " + s.Return.String()
}
