package json5parser_airp

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// JSONType is an enum for any JSON-types
type JSONType uint8

// JSONTypes to compare values with. The zero value signals invalid.
const (
	Error JSONType = iota
	Null
	Bool
	Number
	String
	Array
	Object
)

func (t JSONType) String() string {
	switch t {
	case Error:
		return "Error"
	case Null:
		return "Null"
	case Bool:
		return "Bool"
	case Number:
		return "Number"
	case String:
		return "String"
	case Array:
		return "Array"
	case Object:
		return "Object"
	default:
		return "JSONType(" + strconv.Itoa(int(t)) + ")"
	}
}

// Value is one node of a parsed JSON5 tree. Its JSONType decides which
// field is meaningful:
//     JSONType	Field
//     Error	none
//     Null	none
//     Bool	b
//     Number	num
//     String	str
//     Array	arr
//     Object	obj
// Values are immutable; accessors hand out copies.
type Value struct {
	jsonType JSONType
	b        bool
	num      Decimal
	str      string
	arr      []Value
	obj      map[string]Value
}

// NullValue returns the JSON null.
func NullValue() Value {
	return Value{jsonType: Null}
}

// BoolValue wraps b.
func BoolValue(b bool) Value {
	return Value{jsonType: Bool, b: b}
}

// NumberValue wraps d.
func NumberValue(d Decimal) Value {
	return Value{jsonType: Number, num: d}
}

// StringValue wraps s.
func StringValue(s string) Value {
	return Value{jsonType: String, str: s}
}

// ArrayValue creates an array of elems.
func ArrayValue(elems ...Value) Value {
	return Value{jsonType: Array, arr: append([]Value(nil), elems...)}
}

// ObjectValue creates an object holding a copy of fields.
func ObjectValue(fields map[string]Value) Value {
	m := make(map[string]Value, len(fields))
	for k, v := range fields {
		m[k] = v
	}
	return Value{jsonType: Object, obj: m}
}

// Type returns the JSONType of a value.
func (v Value) Type() JSONType {
	return v.jsonType
}

// Bool returns the boolean held by v.
func (v Value) Bool() (b, ok bool) {
	return v.b, v.jsonType == Bool
}

// Number returns the decimal held by v.
func (v Value) Number() (Decimal, bool) {
	return v.num, v.jsonType == Number
}

// Str returns the string held by v.
func (v Value) Str() (string, bool) {
	return v.str, v.jsonType == String
}

// Len gives the length of an array or items in an object.
func (v Value) Len() int {
	switch v.jsonType {
	case Array:
		return len(v.arr)
	case Object:
		return len(v.obj)
	case Error:
		return 0
	default:
		return 1
	}
}

// Index returns the i-th element of an array.
func (v Value) Index(i int) (Value, bool) {
	if v.jsonType != Array || i < 0 || i >= len(v.arr) {
		return Value{}, false
	}
	return v.arr[i], true
}

// Get returns the member key of an object.
func (v Value) Get(key string) (Value, bool) {
	if v.jsonType != Object {
		return Value{}, false
	}
	m, ok := v.obj[key]
	return m, ok
}

// Elems returns a copy of the elements of an array.
func (v Value) Elems() []Value {
	if v.jsonType != Array {
		return nil
	}
	return append(make([]Value, 0, len(v.arr)), v.arr...)
}

// Fields returns a copy of the members of an object.
func (v Value) Fields() map[string]Value {
	if v.jsonType != Object {
		return nil
	}
	m := make(map[string]Value, len(v.obj))
	for k, e := range v.obj {
		m[k] = e
	}
	return m
}

// Keys returns the keys of an object in sorted order. Objects do not keep
// the order of their source text.
func (v Value) Keys() []string {
	if v.jsonType != Object {
		return nil
	}
	ss := make([]string, 0, len(v.obj))
	for k := range v.obj {
		ss = append(ss, k)
	}
	sort.Strings(ss)
	return ss
}

// GetChild returns the value specified by a dot separated path of object
// keys and array indices, e.g. "servlet.1.init-param". The empty path
// returns v itself.
func (v Value) GetChild(path string) (Value, error) {
	if path == "" {
		return v, nil
	}
	cur := v
	keys := strings.Split(path, ".")
	for i, k := range keys {
		switch cur.jsonType {
		case Object:
			next, ok := cur.obj[k]
			if !ok {
				return Value{}, errors.Wrapf(ErrChildNotFound, "%s", strings.Join(keys[:i+1], "."))
			}
			cur = next
		case Array:
			idx, err := strconv.Atoi(k)
			if err != nil || idx < 0 || idx >= len(cur.arr) {
				return Value{}, errors.Wrapf(ErrChildNotFound, "%s", strings.Join(keys[:i+1], "."))
			}
			cur = cur.arr[idx]
		default:
			return Value{}, errors.Wrapf(ErrNotArrayOrObject, "%s is %s", strings.Join(keys[:i], "."), cur.jsonType)
		}
	}
	return cur, nil
}

// Total returns the number of total values held by v, v included.
func (v Value) Total() int {
	n := 0
	stack := []Value{v}
	for len(stack) > 0 {
		m := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if m.jsonType == Error {
			continue
		}
		n++
		stack = appendChildren(stack, m)
	}
	return n
}

// Depth returns the maximum nesting of arrays and objects in v. Scalars
// have depth 0, an empty array depth 1.
func (v Value) Depth() int {
	type item struct {
		v     Value
		depth int
	}
	deepest := 0
	stack := []item{{v, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.v.jsonType != Array && it.v.jsonType != Object {
			continue
		}
		d := it.depth + 1
		if d > deepest {
			deepest = d
		}
		for _, c := range it.v.arr {
			stack = append(stack, item{c, d})
		}
		for _, c := range it.v.obj {
			stack = append(stack, item{c, d})
		}
	}
	return deepest
}

// Interface creates the plain Go representation of a value.
// The possible underlying types are:
//     Object    map[string]interface{}
//     Array     []interface{}
//     String    string
//     Number    Decimal
//     Bool      bool
//     Null      nil
func (v Value) Interface() interface{} {
	type item struct {
		v   Value
		dst interface{}
	}
	root := shallow(v)
	stack := []item{{v, root}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch dst := it.dst.(type) {
		case []interface{}:
			for i, c := range it.v.arr {
				dst[i] = shallow(c)
				if c.jsonType == Array || c.jsonType == Object {
					stack = append(stack, item{c, dst[i]})
				}
			}
		case map[string]interface{}:
			for k, c := range it.v.obj {
				dst[k] = shallow(c)
				if c.jsonType == Array || c.jsonType == Object {
					stack = append(stack, item{c, dst[k]})
				}
			}
		}
	}
	return root
}

// shallow converts scalars and allocates empty containers of the final
// size. Containers are reference types, so they are filled in place later.
func shallow(v Value) interface{} {
	switch v.jsonType {
	case Bool:
		return v.b
	case Number:
		return v.num
	case String:
		return v.str
	case Array:
		return make([]interface{}, len(v.arr))
	case Object:
		return make(map[string]interface{}, len(v.obj))
	default:
		return nil
	}
}

// UnmarshalJSON implements the json.Unmarshaler interface for Value; data
// may be any JSON5 text.
func (v *Value) UnmarshalJSON(data []byte) error {
	m, err := parse(string(data), 0)
	if err != nil {
		return err
	}
	*v = m
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler like UnmarshalJSON.
func (v *Value) UnmarshalText(text []byte) error {
	return v.UnmarshalJSON(text)
}

// EqValue compares the values and all their children. Numbers are equal
// when numerically equal, object key order is arbitrary.
func EqValue(a, b Value) bool {
	type pair struct{ a, b Value }
	stack := []pair{{a, b}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.a.jsonType != p.b.jsonType {
			return false
		}
		switch p.a.jsonType {
		case Bool:
			if p.a.b != p.b.b {
				return false
			}
		case Number:
			if !p.a.num.Equal(p.b.num) {
				return false
			}
		case String:
			if p.a.str != p.b.str {
				return false
			}
		case Array:
			if len(p.a.arr) != len(p.b.arr) {
				return false
			}
			for i := range p.a.arr {
				stack = append(stack, pair{p.a.arr[i], p.b.arr[i]})
			}
		case Object:
			if len(p.a.obj) != len(p.b.obj) {
				return false
			}
			for k, av := range p.a.obj {
				bv, ok := p.b.obj[k]
				if !ok {
					return false
				}
				stack = append(stack, pair{av, bv})
			}
		}
	}
	return true
}

// helper functions

func appendChildren(stack []Value, v Value) []Value {
	stack = append(stack, v.arr...)
	for _, c := range v.obj {
		stack = append(stack, c)
	}
	return stack
}
