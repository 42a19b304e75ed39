package output

import (
	"encoding/json"
	"io"
)

// FprintJSON outputs any value as formatted JSON to w.
func FprintJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
