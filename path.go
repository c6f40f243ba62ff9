package paranoia

import "strconv"

// RootKey is the key of the value handed to Validate.
const RootKey = "$"

// joinPath appends key to path. Bracketed index keys attach without a dot.
func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	if len(key) > 0 && key[0] == '[' {
		return path + key
	}
	return path + "." + key
}

func indexKey(i int) string { return "[" + strconv.Itoa(i) + "]" }
