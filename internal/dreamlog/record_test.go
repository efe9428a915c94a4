package dreamlog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	entry, err := ParseLine(`img/000001.png: "a cat" -S 42 -W 512 -H 512 -X foo`)
	require.NoError(t, err)

	r := NewRecord(entry)
	assert.Equal(t, []string{"image", "prompt", "seed", "width", "height", "X"}, r.Keys())

	seed, ok := r.Get("seed")
	require.True(t, ok)
	assert.Equal(t, "42", seed)
}

func TestRecordMarshalJSONKeepsOrder(t *testing.T) {
	entry, err := ParseLine(`img/000001.png: "a cat" -W 512 -S 1 -H 512 -S 2`)
	require.NoError(t, err)

	data, err := json.Marshal(NewRecord(entry))
	require.NoError(t, err)
	assert.Equal(t,
		`{"image":"img/000001.png","prompt":"a cat","width":"512","seed":"2","height":"512"}`,
		string(data))
}

func TestRecordMarshalJSONNoHTMLEscape(t *testing.T) {
	entry, err := ParseLine(`img/1.png: "cats & dogs <3" -S 7`)
	require.NoError(t, err)

	// json.Marshal re-escapes; the encoder used for output does not.
	data, err := NewRecord(entry).MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"prompt":"cats & dogs <3"`)
}

func TestRecordMarshalJSONEscapesNonASCII(t *testing.T) {
	entry, err := ParseLine(`img/1.png: "café 🐱" -S 7`)
	require.NoError(t, err)

	data, err := NewRecord(entry).MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"prompt":"caf\u00e9 \ud83d\udc31"`)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "café 🐱", decoded["prompt"])
}

func TestRecordProgressImages(t *testing.T) {
	entry, err := ParseLine(`img/1.png: "x" -S 7`)
	require.NoError(t, err)

	r := NewRecord(entry)
	r.SetProgressImages(nil)
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"image":"img/1.png","prompt":"x","seed":"7","progress_images":[]}`, string(data))

	r.SetProgressImages([]string{"out/intermediates/1.0.png"})
	data, err = json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"image":"img/1.png","prompt":"x","seed":"7","progress_images":["out/intermediates/1.0.png"]}`, string(data))
}
