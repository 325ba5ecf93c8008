package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/voltmarket/market-client/internal/core/ports"
)

var emptyObject = []byte("{}")

// Response is a parsed response body. The gateway hands it back verbatim;
// envelope conventions such as {success, data} are read by callers through
// Get and Decode.
type Response struct {
	raw []byte
}

var _ ports.Body = (*Response)(nil)

// parseBody keeps b when it is valid JSON and substitutes an empty object
// otherwise.
func parseBody(b []byte) *Response {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || !gjson.ValidBytes(b) {
		return &Response{raw: emptyObject}
	}
	return &Response{raw: b}
}

// Raw returns the JSON text of the body.
func (r *Response) Raw() []byte { return r.raw }

// Get reads a gjson path, e.g. "data.token" or "data.products.#".
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.raw, path)
}

// Decode unmarshals the value at path into v. An empty path decodes the
// whole body.
func (r *Response) Decode(path string, v any) error {
	src := r.raw
	if path != "" {
		res := r.Get(path)
		if !res.Exists() {
			return fmt.Errorf("response has no %q", path)
		}
		src = []byte(res.Raw)
	}
	return json.Unmarshal(src, v)
}

// Map returns the body as a generic object; non-object bodies yield an
// empty map.
func (r *Response) Map() map[string]any {
	m := map[string]any{}
	_ = json.Unmarshal(r.raw, &m)
	if m == nil {
		m = map[string]any{}
	}
	return m
}

// Value returns the body as a generic JSON value: an object, an array or a
// scalar, whichever the backend sent.
func (r *Response) Value() any {
	var v any
	if err := json.Unmarshal(r.raw, &v); err != nil {
		return map[string]any{}
	}
	return v
}

// message returns the body's "message" field as display text. Validation
// errors often send a list of strings, which are joined.
func (r *Response) message() string {
	res := r.Get("message")
	switch res.Type {
	case gjson.String:
		return res.Str
	case gjson.Number:
		return res.Raw
	}
	if !res.IsArray() {
		return ""
	}
	var parts []string
	for _, item := range res.Array() {
		if item.IsObject() || item.IsArray() || item.Type == gjson.Null {
			continue
		}
		if s := strings.TrimSpace(item.String()); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
