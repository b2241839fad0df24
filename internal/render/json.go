package render

import (
	"encoding/json"
	"io"

	"github.com/spacelens/spacelens/internal/schema"
)

// JSON writes the structural serialization of m: top-level tables,
// structs, and enums mappings with members in declaration order. The
// output round-trips through schema.DecodeModel losslessly. An empty
// model serializes as three empty mappings, never as an error.
func JSON(w io.Writer, m *schema.Model) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// Raw writes the fetched schema document verbatim, for piping into other
// tools without any model normalization.
func Raw(w io.Writer, payload []byte) error {
	if _, err := w.Write(payload); err != nil {
		return err
	}
	if len(payload) > 0 && payload[len(payload)-1] != '\n' {
		_, err := w.Write([]byte{'\n'})
		return err
	}
	return nil
}
