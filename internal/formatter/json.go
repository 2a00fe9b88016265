package formatter

import (
	"encoding/json"
	"io"
)

// WriteJSON writes v as indented JSON. HTML escaping is disabled so paths
// and descriptions survive round-trips through agent tooling unmangled.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
