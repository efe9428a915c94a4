package dreamlogs

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameters(t *testing.T) {
	entry, err := ParseLine(`img/000001.png: "a cat" -S 42 -W 512 -H512 -Q 3`)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"seed":   "42",
		"width":  "512",
		"height": "512",
		"Q":      "3",
	}, Parameters(entry))
}

func TestNewRecord(t *testing.T) {
	entry, err := ParseLine(`img/000001.png: "a cat" -S 42`)
	require.NoError(t, err)

	data, err := json.Marshal(NewRecord(entry))
	require.NoError(t, err)
	assert.Equal(t, `{"image":"img/000001.png","prompt":"a cat","seed":"42"}`, string(data))
}

func TestParseLineMalformed(t *testing.T) {
	_, err := ParseLine("nope")
	assert.True(t, errors.Is(err, ErrMalformedLine))
}
