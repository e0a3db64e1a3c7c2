package protocol

import "encoding/json"

// marshalPair renders (name, count) as a two-element JSON array, the
// compact inventory shape clients parse instead of a keyed object.
func marshalPair(name string, count int) ([]byte, error) {
	return json.Marshal([2]any{name, count})
}
