package dreamlog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record keys that are always present or appended by enrichment.
const (
	KeyImage          = "image"
	KeyPrompt         = "prompt"
	KeyProgressImages = "progress_images"
)

// Record is the structured form of a matching log line. Keys keep the order
// in which they were first set.
type Record struct {
	fields *orderedmap.OrderedMap[string, any]
}

// NewRecord builds a record for entry with its args translated to long names.
func NewRecord(entry Entry) *Record {
	r := &Record{fields: orderedmap.New[string, any]()}
	r.Set(KeyImage, entry.ImagePath)
	r.Set(KeyPrompt, entry.Prompt)

	args := ParseArgs(entry.RawArgs)
	for pair := args.Oldest(); pair != nil; pair = pair.Next() {
		r.Set(LongName(pair.Key), pair.Value)
	}
	return r
}

// Set stores value under key, replacing any previous value in place.
func (r *Record) Set(key string, value any) {
	r.fields.Set(key, value)
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	return r.fields.Get(key)
}

// Keys returns the record keys in output order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, r.fields.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// SetProgressImages attaches the discovered progress image paths.
func (r *Record) SetProgressImages(paths []string) {
	if paths == nil {
		paths = []string{}
	}
	r.Set(KeyProgressImages, paths)
}

// MarshalJSON writes the record as an object in key order. The output is
// pure ASCII: HTML characters are left alone and everything outside
// printable ASCII is written as a \uXXXX escape.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := marshalRaw(pair.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := marshalRaw(pair.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return escapeNonASCII(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// escapeNonASCII rewrites DEL and every non-ASCII rune in encoded JSON as a
// \uXXXX escape, using surrogate pairs above the BMP. Such bytes can only
// occur inside strings, so the result is still valid JSON.
func escapeNonASCII(data []byte) []byte {
	i := bytes.IndexFunc(data, func(r rune) bool { return r >= utf8.RuneSelf-1 })
	if i < 0 {
		return data
	}
	out := make([]byte, 0, len(data)+16)
	out = append(out, data[:i]...)
	for _, r := range string(data[i:]) {
		switch {
		case r < utf8.RuneSelf-1:
			out = append(out, byte(r))
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			out = fmt.Appendf(out, `\u%04x\u%04x`, hi, lo)
		default:
			out = fmt.Appendf(out, `\u%04x`, r)
		}
	}
	return out
}
