// file: pkg/raw-client/watch/decoder_test.go

package watch

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoder(t *testing.T) {
	stream := strings.Join([]string{
		`{"type":"ADDED","object":{"kind":"Foo","metadata":{"name":"a","resourceVersion":"1"}}}`,
		`{"type":"MODIFIED","object":{"kind":"Foo","metadata":{"name":"a","resourceVersion":"2"}}}`,
		`{"type":"DELETED","object":{"kind":"Foo","metadata":{"name":"a","resourceVersion":"3"}}}`,
	}, "\n")

	d := NewDecoder(io.NopCloser(strings.NewReader(stream)))
	defer d.Close()

	event, err := d.Decode()
	require.NoError(t, err)
	assert.Equal(t, Added, event.Type)
	assert.Contains(t, string(event.Object), `"name":"a"`)

	event, err = d.Decode()
	require.NoError(t, err)
	assert.Equal(t, Modified, event.Type)

	event, err = d.Decode()
	require.NoError(t, err)
	assert.Equal(t, Deleted, event.Type)

	_, err = d.Decode()
	assert.Equal(t, io.EOF, err, "a drained stream must end with io.EOF")
}

func TestDecoder_UnknownEventType(t *testing.T) {
	d := NewDecoder(io.NopCloser(strings.NewReader(`{"type":"EXPLODED","object":{}}`)))
	defer d.Close()

	_, err := d.Decode()
	assert.Error(t, err)
}

func TestDecoder_Garbage(t *testing.T) {
	d := NewDecoder(io.NopCloser(strings.NewReader(`not json at all`)))
	defer d.Close()

	_, err := d.Decode()
	require.Error(t, err)
	assert.NotEqual(t, io.EOF, err)
}
