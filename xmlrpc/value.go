package xmlrpc

import "time"

// Kind tags which field of a Value is populated.
type Kind int

const (
	Int32 Kind = iota
	Boolean
	Double
	String
	Date
	Binary
	Struct
	Array
)

// Value is a tagged XML-RPC value: exactly one of the typed fields is
// meaningful, selected by Kind.
type Value struct {
	Kind Kind

	Int32Val  int32
	BoolVal   bool
	DoubleVal float64
	StringVal string
	DateVal   time.Time
	BinaryVal []byte
	StructVal []NamedValue
	ArrayVal  []Value
}

// NamedValue is one <member> of a <struct>.
type NamedValue struct {
	Name  string
	Value Value
}

func Int32Value(v int32) Value      { return Value{Kind: Int32, Int32Val: v} }
func BooleanValue(v bool) Value     { return Value{Kind: Boolean, BoolVal: v} }
func DoubleValue(v float64) Value   { return Value{Kind: Double, DoubleVal: v} }
func StringValue(v string) Value    { return Value{Kind: String, StringVal: v} }
func DateValue(v time.Time) Value   { return Value{Kind: Date, DateVal: v} }
func BinaryValue(v []byte) Value    { return Value{Kind: Binary, BinaryVal: v} }
func StructValue(m []NamedValue) Value { return Value{Kind: Struct, StructVal: m} }
func ArrayValue(v []Value) Value    { return Value{Kind: Array, ArrayVal: v} }

// StructGet looks up a member by name within a Struct-kind Value.
func (v Value) StructGet(name string) (Value, bool) {
	for _, m := range v.StructVal {
		if m.Name == name {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Fault is a method response's error payload.
type Fault struct {
	Code   int32
	String string
}

// Request is a parsed or to-be-printed <methodCall>.
type Request struct {
	MethodName string
	Params     []Value
}

// Response is a parsed or to-be-printed <methodResponse>, carrying
// either Params or a Fault, never both.
type Response struct {
	Params []Value
	Fault  *Fault
}
