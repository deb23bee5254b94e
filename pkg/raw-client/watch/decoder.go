// file: pkg/raw-client/watch/decoder.go

package watch

import (
	"encoding/json"
	"fmt"
	"io"
)

// Decoder reads newline-delimited JSON watch frames from a response
// body, one Event per line.
type Decoder struct {
	dec    *json.Decoder
	closer io.Closer
}

// NewDecoder wraps a watch response body. Close releases the underlying
// stream.
func NewDecoder(body io.ReadCloser) *Decoder {
	return &Decoder{
		dec:    json.NewDecoder(body),
		closer: body,
	}
}

// Decode returns the next event. io.EOF signals a cleanly finished
// stream (the server closes watches after the requested timeout).
func (d *Decoder) Decode() (*Event, error) {
	var event Event
	if err := d.dec.Decode(&event); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to decode watch event: %w", err)
	}
	switch event.Type {
	case Added, Modified, Deleted, Bookmark, Error:
		return &event, nil
	default:
		return nil, fmt.Errorf("unknown watch event type %q", event.Type)
	}
}

func (d *Decoder) Close() error {
	return d.closer.Close()
}
