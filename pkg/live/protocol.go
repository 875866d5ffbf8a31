package live

import (
	"encoding/json"

	"github.com/statekit-dev/statekit/internal/errors"
)

// Operations accepted from clients.
const (
	OpSet      = "set"      // write one field
	OpGet      = "get"      // read one field
	OpSnapshot = "snapshot" // read all fields
)

// Frame is a client request: an operation, the field it targets, and for
// writes the new value.
type Frame struct {
	Op    string          `json:"op"`
	Field string          `json:"field,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

// Patch is a server response. Op mirrors the request for reads and writes;
// "error" carries a protocol failure without closing the connection.
type Patch struct {
	Op     string         `json:"op"`
	Field  string         `json:"field,omitempty"`
	Value  any            `json:"value"`
	Fields map[string]any `json:"fields,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// DecodeFrame parses a client frame.
func DecodeFrame(data []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, errors.CategoryProtocol, "decoding frame")
	}
	if f.Op == "" {
		return nil, errors.Newf(errors.CategoryProtocol, "frame missing op")
	}
	return &f, nil
}

// EncodePatch serializes a server patch.
func EncodePatch(p Patch) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryProtocol, "encoding patch")
	}
	return data, nil
}
