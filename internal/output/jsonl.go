package output

import (
	"bytes"
	"encoding/json"
	"io"

	contextutils "hinglishgen/internal/utils"
)

// JSONLEncoder writes one JSON document per line. HTML escaping is off so
// non-ASCII text and <, >, & are written literally.
type JSONLEncoder struct {
	w     io.Writer
	buf   bytes.Buffer
	enc   *json.Encoder
	lines int
}

// NewJSONLEncoder creates an encoder writing to w
func NewJSONLEncoder(w io.Writer) *JSONLEncoder {
	e := &JSONLEncoder{w: w}
	e.enc = json.NewEncoder(&e.buf)
	e.enc.SetEscapeHTML(false)
	return e
}

// Encode serializes v and writes it as a single line. Nothing is written when
// serialization fails.
func (e *JSONLEncoder) Encode(v interface{}) error {
	e.buf.Reset()
	// json.Encoder terminates every value with '\n'
	if err := e.enc.Encode(v); err != nil {
		return contextutils.WrapError(contextutils.NewAppErrorWithCause(contextutils.ErrorCodeEncodingFailed,
			contextutils.SeverityError, "Record encoding failed", err.Error(), err), "failed to encode record")
	}
	if _, err := e.w.Write(e.buf.Bytes()); err != nil {
		return err
	}
	e.lines++
	return nil
}

// Lines reports how many records have been written
func (e *JSONLEncoder) Lines() int {
	return e.lines
}
