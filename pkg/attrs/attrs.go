// Package attrs reads values back out of slog-style key/value slices.
package attrs

// String returns the string value paired with key in a [k1, v1, k2, v2, ...]
// slice. The last pairing wins. ok is false when the key is absent or its value
// is not a string.
func String(kv []any, key string) (value string, ok bool) {
	for i := 0; i+1 < len(kv); i += 2 {
		if k, isString := kv[i].(string); !isString || k != key {
			continue
		}
		if v, isString := kv[i+1].(string); isString {
			value, ok = v, true
		}
	}
	return value, ok
}

// ExtractString is String without the presence flag.
func ExtractString(kv []any, key string) string {
	v, _ := String(kv, key)
	return v
}
