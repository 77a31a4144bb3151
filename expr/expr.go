// Package expr defines the tagged expression value used throughout mzfeat:
// it is both the parser's output representation for literals and the
// payload carried by constraint/solve annotations.
//
// A Value is one of six variants — Bool, Int, Float, String, Array, Set —
// and supports structural equality. Array equality is ordered; Set
// equality is unordered and requires a matching partner for every element
// in both directions (subset-equality both ways), not the parallel
// iteration some reference implementations use, which is only sound when
// both sets already share an iteration order.
package expr

import "fmt"

// Kind discriminates the variant held by a Value.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
	KindArray
	KindSet
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindSet:
		return "set"
	default:
		return "unknown"
	}
}

// Value is a tagged, immutable expression node.
type Value struct {
	kind    Kind
	boolV   bool
	intV    int64
	floatV  float64
	stringV string
	items   []Value // Array: ordered; Set: canonical de-duplicated contents
}

// Bool constructs a boolean literal.
func Bool(b bool) Value { return Value{kind: KindBool, boolV: b} }

// Int constructs an integer literal.
func Int(i int64) Value { return Value{kind: KindInt, intV: i} }

// Float constructs a floating-point literal.
func Float(f float64) Value { return Value{kind: KindFloat, floatV: f} }

// String constructs a string literal.
func String(s string) Value { return Value{kind: KindString, stringV: s} }

// Array constructs an ordered sequence of expressions.
func Array(items ...Value) Value {
	out := make([]Value, len(items))
	copy(out, items)
	return Value{kind: KindArray, items: out}
}

// Set constructs an unordered collection of expressions. Duplicate
// elements (by structural equality) are folded into one.
func Set(items ...Value) Value {
	var out []Value
	for _, it := range items {
		dup := false
		for _, existing := range out {
			if existing.Equal(it) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, it)
		}
	}
	return Value{kind: KindSet, items: out}
}

// Kind reports the variant held.
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the payload, valid only when Kind() == KindBool.
func (v Value) AsBool() bool { return v.boolV }

// AsInt returns the payload, valid only when Kind() == KindInt.
func (v Value) AsInt() int64 { return v.intV }

// AsFloat returns the payload, valid only when Kind() == KindFloat.
func (v Value) AsFloat() float64 { return v.floatV }

// AsString returns the payload, valid only when Kind() == KindString.
func (v Value) AsString() string { return v.stringV }

// Items returns the children of an Array or Set value (nil for scalars).
func (v Value) Items() []Value { return v.items }

// Len returns len(Items()) for Array/Set, 0 otherwise.
func (v Value) Len() int { return len(v.items) }

// Head returns the string payload of items[0] when v is a non-empty Array
// whose first element is a String, and true. Used to read the annotation
// or constraint name that heads a parameter list. Returns ("", false)
// otherwise.
func (v Value) Head() (string, bool) {
	if v.kind != KindArray || len(v.items) == 0 {
		return "", false
	}
	if v.items[0].kind != KindString {
		return "", false
	}
	return v.items[0].stringV, true
}

// Equal reports structural equality. Bool/Int/String compare by value;
// Float comparison is bit-exact (no tolerance, per spec); Array
// comparison is ordered and element-wise; Set comparison is
// order-independent and requires a matching partner for every element in
// both directions.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.boolV == other.boolV
	case KindInt:
		return v.intV == other.intV
	case KindFloat:
		return v.floatV == other.floatV
	case KindString:
		return v.stringV == other.stringV
	case KindArray:
		return equalOrdered(v.items, other.items)
	case KindSet:
		return equalSet(v.items, other.items)
	default:
		return false
	}
}

func equalOrdered(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// equalSet implements subset-equality in both directions: every element
// of a must have a matching partner in b, and vice versa. Cardinality is
// checked first as a cheap short-circuit.
func equalSet(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	return isSubset(a, b) && isSubset(b, a)
}

func isSubset(a, b []Value) bool {
	used := make([]bool, len(b))
	for _, av := range a {
		found := false
		for j, bv := range b {
			if used[j] {
				continue
			}
			if av.Equal(bv) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// String renders v for debugging/log output. It is not a serialization
// format.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("%t", v.boolV)
	case KindInt:
		return fmt.Sprintf("%d", v.intV)
	case KindFloat:
		return fmt.Sprintf("%g", v.floatV)
	case KindString:
		return v.stringV
	case KindArray:
		return fmt.Sprintf("%v", v.items)
	case KindSet:
		return fmt.Sprintf("{%v}", v.items)
	default:
		return "<invalid>"
	}
}

// IsVariableName reports whether v is a String (i.e. could be resolved
// against the symbol table as a variable reference).
func (v Value) IsVariableName() bool { return v.kind == KindString }
