// Package dreamlogs exposes dream log parsing to other programs.
package dreamlogs

import (
	"github.com/grovetools/dreamsearch/internal/dreamlog"
)

// Entry is one parsed dream log line.
type Entry = dreamlog.Entry

// Record is the structured, JSON-serializable form of an entry.
type Record = dreamlog.Record

// ErrMalformedLine is returned for lines that are not dream log records.
var ErrMalformedLine = dreamlog.ErrMalformedLine

// ParseLine parses a single dream log line.
func ParseLine(line string) (Entry, error) {
	return dreamlog.ParseLine(line)
}

// Parameters returns the generation parameters of a line keyed by long name,
// e.g. "seed" or "width". Unknown flags are keyed by their letter.
func Parameters(entry Entry) map[string]string {
	args := dreamlog.ParseArgs(entry.RawArgs)
	params := make(map[string]string, args.Len())
	for pair := args.Oldest(); pair != nil; pair = pair.Next() {
		params[dreamlog.LongName(pair.Key)] = pair.Value
	}
	return params
}

// NewRecord builds the record the search command emits for entry.
func NewRecord(entry Entry) *Record {
	return dreamlog.NewRecord(entry)
}
