// Package value implements the tagged union of shell variable kinds and
// the never-failing conversions between them and their string
// carriers. A conversion to a foreign kind always yields that kind's
// neutral zero value rather than an error, so that typed retrieval from
// the variable store (package store) stays total.
package value

import "strings"

// Kind identifies which variant of Value is populated.
type Kind int

const (
	KindAbsent Kind = iota
	KindString
	KindAlias
	KindArray
	KindKeyedMap
	KindOrderedMap
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindAlias:
		return "alias"
	case KindArray:
		return "array"
	case KindKeyedMap:
		return "keyed map"
	case KindOrderedMap:
		return "ordered map"
	case KindFunction:
		return "function"
	default:
		return "absent"
	}
}

// FunctionBody is owned by the command executor; this core never inspects
// it, only carries it.
type FunctionBody any

// Function is a callable definition. Opaque to this core beyond its shape.
type Function struct {
	Params      []string
	Body        FunctionBody
	Description string
}

// Value is a tagged union over the variable kinds a shell scope can hold.
// The zero Value is Absent.
type Value struct {
	kind Kind

	str      string
	array    []string
	keyed    map[string]Value
	orderKey []string // defines iteration order for KindOrderedMap
	fn       Function
}

// Absent is the sentinel returned when a conversion is requested against a
// Value whose variant does not match.
var Absent = Value{kind: KindAbsent}

func NewString(s string) Value { return Value{kind: KindString, str: s} }
func NewAlias(s string) Value  { return Value{kind: KindAlias, str: s} }

func NewArray(items []string) Value {
	cp := make([]string, len(items))
	copy(cp, items)
	return Value{kind: KindArray, array: cp}
}

func NewKeyedMap(m map[string]Value) Value {
	cp := make(map[string]Value, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Value{kind: KindKeyedMap, keyed: cp}
}

// NewOrderedMap builds an ordered map preserving the given key order.
// Duplicate keys keep their first position.
func NewOrderedMap(keys []string, m map[string]Value) Value {
	cp := make(map[string]Value, len(m))
	order := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		order = append(order, k)
		cp[k] = m[k]
	}
	return Value{kind: KindOrderedMap, keyed: cp, orderKey: order}
}

func NewFunction(fn Function) Value { return Value{kind: KindFunction, fn: fn} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsEmpty reports whether v is the "empty" instance of its own kind --
// the condition that triggers variable deletion in store.Set (spec §4.3).
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindString, KindAlias:
		return v.str == ""
	case KindArray:
		return len(v.array) == 0
	case KindKeyedMap, KindOrderedMap:
		return len(v.keyed) == 0
	default:
		return true
	}
}

// AsString converts v to its string carrier, or "" if v is not a String.
func (v Value) AsString() string {
	if v.kind == KindString {
		return v.str
	}
	return ""
}

// AsAlias converts v to its alias carrier, or "" if v is not an Alias.
func (v Value) AsAlias() string {
	if v.kind == KindAlias {
		return v.str
	}
	return ""
}

// AsArray converts v to its array carrier, or an empty slice if v is not an Array.
func (v Value) AsArray() []string {
	if v.kind == KindArray {
		out := make([]string, len(v.array))
		copy(out, v.array)
		return out
	}
	return []string{}
}

// AsKeyedMap converts v to its keyed-map carrier, or an empty map if v is
// neither a KeyedMap nor an OrderedMap.
func (v Value) AsKeyedMap() map[string]Value {
	if v.kind == KindKeyedMap || v.kind == KindOrderedMap {
		out := make(map[string]Value, len(v.keyed))
		for k, val := range v.keyed {
			out[k] = val
		}
		return out
	}
	return map[string]Value{}
}

// AsOrderedMap converts v to its (keys, map) carrier, or empty if v is not
// an OrderedMap.
func (v Value) AsOrderedMap() ([]string, map[string]Value) {
	if v.kind == KindOrderedMap {
		keys := make([]string, len(v.orderKey))
		copy(keys, v.orderKey)
		return keys, v.AsKeyedMap()
	}
	return nil, map[string]Value{}
}

// AsFunction converts v to its function carrier, or the zero Function if v
// is not a Function.
func (v Value) AsFunction() Function {
	if v.kind == KindFunction {
		return v.fn
	}
	return Function{}
}

// Display renders v per spec §3: arrays join with spaces, maps concatenate
// their values' displays with spaces (keys elided, trailing separator
// trimmed), and every other kind displays as its plain string form.
func (v Value) Display() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindAlias:
		return v.str
	case KindArray:
		return strings.Join(v.array, " ")
	case KindKeyedMap:
		return joinMapValues(mapValuesUnordered(v.keyed))
	case KindOrderedMap:
		vals := make([]string, 0, len(v.orderKey))
		for _, k := range v.orderKey {
			vals = append(vals, v.keyed[k].Display())
		}
		return joinMapValues(vals)
	default:
		return ""
	}
}

func mapValuesUnordered(m map[string]Value) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v.Display())
	}
	return out
}

func joinMapValues(vals []string) string {
	return strings.Join(vals, " ")
}
