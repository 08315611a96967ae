// Package schema holds the client-side tool parameter schemas and the
// validation algorithm that checks candidate arguments against them before
// any network activity.
//
// Schemas describe what the server's handlers actually parse, which is not
// always what the server's tools/list advertises — see [Default] for the
// known discrepancies. The registry is advisory: a tool name without a
// schema passes through unvalidated.
package schema

import "reflect"

// Kind is the closed enumeration of parameter kinds a schema can declare.
type Kind string

const (
	KindNumber  Kind = "number"
	KindString  Kind = "string"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"

	// KindAny matches every value. Used for parameters the server accepts
	// in several shapes, such as addresses given as numbers or "$c000".
	KindAny Kind = "any"
)

// Matches reports whether v is compatible with the declared kind.
//
// The check is a pure function over the value's dynamic type. KindNumber
// deliberately excludes booleans: some runtimes treat bools as integers and
// the server does not, so letting one through would defer the failure to
// the wire.
func (k Kind) Matches(v any) bool {
	switch k {
	case KindAny:
		return true
	case KindNumber:
		switch reflect.ValueOf(v).Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return true
		}
		return false
	case KindString:
		_, ok := v.(string)
		return ok
	case KindBoolean:
		_, ok := v.(bool)
		return ok
	case KindArray:
		rk := reflect.ValueOf(v).Kind()
		return rk == reflect.Slice || rk == reflect.Array
	case KindObject:
		return reflect.ValueOf(v).Kind() == reflect.Map
	}
	return true
}

// jsonTypeName returns the JSON-ish name of v's type for violation messages.
func jsonTypeName(v any) string {
	if v == nil {
		return "null"
	}
	switch v.(type) {
	case bool:
		return "boolean"
	case string:
		return "string"
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map:
		return "object"
	}
	return reflect.TypeOf(v).String()
}
