package vice

// Address identifies a memory location: either a number or a string the
// server resolves, such as "$c000" or a loaded symbol name.
type Address = any

// Argument maps are built fresh per call; the setters skip nil pointers so
// unset options never reach the wire.

func setInt(m map[string]any, key string, v *int) {
	if v != nil {
		m[key] = *v
	}
}

func setBool(m map[string]any, key string, v *bool) {
	if v != nil {
		m[key] = *v
	}
}

func setString(m map[string]any, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

func setAddr(m map[string]any, key string, v Address) {
	if v != nil {
		m[key] = v
	}
}

func setInts(m map[string]any, key string, v []int) {
	if v != nil {
		m[key] = v
	}
}

func setStrings(m map[string]any, key string, v []string) {
	if v != nil {
		m[key] = v
	}
}

// Int returns a pointer to v, for filling option structs inline.
func Int(v int) *int { return &v }

// Bool returns a pointer to v, for filling option structs inline.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v, for filling option structs inline.
func String(v string) *string { return &v }
