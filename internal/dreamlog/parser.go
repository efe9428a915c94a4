package dreamlog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrMalformedLine is returned when a line does not have the
// `<image>: "<prompt>" <args>` shape.
var ErrMalformedLine = errors.New("malformed log line")

var (
	// recordPattern splits a dream log line into image path, prompt and raw args.
	recordPattern = regexp.MustCompile(`^([^:]+): "([^"]+)" (.*)`)
	// argPattern matches one `-<letter>[ ]<value>` token in the args segment.
	argPattern = regexp.MustCompile(`-([a-zA-Z]) ?([^ ]+)`)
)

// Entry is one parsed line of the dream log.
type Entry struct {
	ImagePath string
	Prompt    string
	RawArgs   string
}

// PromptOffset returns the byte offset of the prompt within the original line.
func (e Entry) PromptOffset() int {
	return len(e.ImagePath) + len(`: "`)
}

// ArgMap holds flag letters and their values in order of first appearance.
type ArgMap = orderedmap.OrderedMap[string, string]

// ParseLine applies the record pattern to a single log line. A trailing LF
// or CRLF terminator is ignored.
func ParseLine(line string) (Entry, error) {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	m := recordPattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, fmt.Errorf("%w: %q", ErrMalformedLine, truncate(line, 80))
	}
	return Entry{ImagePath: m[1], Prompt: m[2], RawArgs: m[3]}, nil
}

// ParseArgs extracts every flag token from raw. A letter that appears more
// than once keeps the last value.
func ParseArgs(raw string) *ArgMap {
	args := orderedmap.New[string, string]()
	for _, m := range argPattern.FindAllStringSubmatch(raw, -1) {
		args.Set(m[1], m[2])
	}
	return args
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
