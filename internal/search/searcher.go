// Package search scans a dream log for prompts matching a pattern.
package search

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	grovelogging "github.com/grovetools/core/logging"

	"github.com/grovetools/dreamsearch/internal/display"
	"github.com/grovetools/dreamsearch/internal/dreamlog"
	"github.com/grovetools/dreamsearch/internal/progress"
)

// LogComponent names this package's logger.
const LogComponent = "dreamsearch.search"

var ulog = grovelogging.NewUnifiedLogger(LogComponent)

// LogFileName is the dream log's name inside the output directory.
const LogFileName = "dream_log.txt"

// DefaultOutDir is used when no output directory is configured.
const DefaultOutDir = "outputs/img-samples"

// Options controls a single search.
type Options struct {
	Pattern *regexp.Regexp

	// OutDir holds the dream log and the intermediates directory. Relative
	// paths are resolved against Root.
	OutDir string
	Root   string

	JSON           bool
	ProgressImages bool

	// Strict aborts on the first malformed line instead of skipping it.
	Strict    bool
	Highlight bool
}

// Validate checks the options without touching the filesystem.
func (o Options) Validate() error {
	if o.ProgressImages && !o.JSON {
		return &UsageError{Err: ErrProgressRequiresJSON}
	}
	if o.Pattern == nil {
		return Usagef("a prompt pattern is required")
	}
	if o.OutDir == "" {
		return Usagef("output directory must not be empty")
	}
	return nil
}

func (o Options) resolvedOutDir() string {
	if filepath.IsAbs(o.OutDir) || o.Root == "" {
		return o.OutDir
	}
	return filepath.Join(o.Root, o.OutDir)
}

// LogPath returns the path of the dream log the search reads.
func (o Options) LogPath() string {
	return filepath.Join(o.resolvedOutDir(), LogFileName)
}

// Summary describes a completed pass.
type Summary struct {
	Lines     int
	Matches   int
	Malformed int
}

// Searcher runs the search described by its options.
type Searcher struct {
	opts     Options
	out      io.Writer
	progress *progress.Scanner
	hl       *display.Highlighter
}

// New creates a searcher writing results to out.
func New(opts Options, out io.Writer) (*Searcher, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	s := &Searcher{
		opts: opts,
		out:  out,
		hl:   display.NewHighlighter(out, opts.Highlight && !opts.JSON),
	}
	if opts.ProgressImages {
		s.progress = progress.NewScanner(
			filepath.Join(opts.resolvedOutDir(), progress.DirName),
			progress.JoinPath(opts.OutDir, progress.DirName),
		)
	}
	return s, nil
}

// Run performs the pass. In text mode matching lines are written as they are
// found; in JSON mode nothing is written unless the whole pass succeeds.
func (s *Searcher) Run() (*Summary, error) {
	logPath := s.opts.LogPath()
	ulog.Debug("Opening dream log").
		Field("path", logPath).
		StructuredOnly().
		Emit()

	file, err := os.Open(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dream log: %w", err)
	}
	defer file.Close()

	summary := &Summary{}
	records := []*dreamlog.Record{}

	reader := bufio.NewReader(file)
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("failed to read dream log: %w", readErr)
		}
		if line == "" {
			break
		}
		summary.Lines++
		line = normalizeNewline(line)

		record, matched, err := s.processLine(line, summary)
		if err != nil {
			return nil, err
		}
		if matched {
			summary.Matches++
			if record != nil {
				records = append(records, record)
			}
		}

		if readErr != nil {
			break
		}
	}

	if s.opts.JSON {
		if err := s.writeJSON(records); err != nil {
			return nil, err
		}
	}

	ulog.Debug("Search complete").
		Field("path", logPath).
		Field("lines", summary.Lines).
		Field("matches", summary.Matches).
		Field("malformed", summary.Malformed).
		StructuredOnly().
		Emit()
	return summary, nil
}

func (s *Searcher) processLine(line string, summary *Summary) (*dreamlog.Record, bool, error) {
	entry, err := dreamlog.ParseLine(line)
	if err != nil {
		if s.opts.Strict {
			return nil, false, fmt.Errorf("line %d: %w", summary.Lines, err)
		}
		summary.Malformed++
		ulog.Warn("Skipping malformed log line").
			Field("line", summary.Lines).
			Emit()
		return nil, false, nil
	}

	loc := s.opts.Pattern.FindStringIndex(entry.Prompt)
	if loc == nil {
		return nil, false, nil
	}

	if !s.opts.JSON {
		off := entry.PromptOffset()
		if _, err := io.WriteString(s.out, s.hl.Line(line, off+loc[0], off+loc[1])); err != nil {
			return nil, false, fmt.Errorf("failed to write match: %w", err)
		}
		return nil, true, nil
	}

	record := dreamlog.NewRecord(entry)
	if s.progress != nil {
		paths, err := s.progress.Find(entry.ImagePath)
		if err != nil {
			return nil, false, err
		}
		record.SetProgressImages(paths)
	}
	return record, true, nil
}

// normalizeNewline turns a CRLF terminator into LF, as a text-mode read would.
func normalizeNewline(line string) string {
	if strings.HasSuffix(line, "\r\n") {
		return line[:len(line)-2] + "\n"
	}
	return line
}

func (s *Searcher) writeJSON(records []*dreamlog.Record) error {
	enc := json.NewEncoder(s.out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}
