// Package progress finds the intermediate images written while a dream
// image was being generated.
package progress

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	grovelogging "github.com/grovetools/core/logging"
)

// DirName is the directory under the output dir holding progress images.
const DirName = "intermediates"

// LogComponent names this package's logger.
const LogComponent = "dreamsearch.progress"

var ulog = grovelogging.NewUnifiedLogger(LogComponent)

// Scanner indexes an intermediates directory by image stem. The directory is
// listed once, on the first lookup.
type Scanner struct {
	dir        string
	displayDir string

	index  map[string][]string
	loaded bool
}

// NewScanner creates a scanner reading from dir. Returned paths are built
// under displayDir, so results read as `<outdir>/intermediates/<file>`
// regardless of the project root dir was resolved against.
func NewScanner(dir, displayDir string) *Scanner {
	return &Scanner{
		dir:        dir,
		displayDir: displayDir,
	}
}

// Stem returns the base name of imagePath up to its first dot.
func Stem(imagePath string) string {
	base := filepath.Base(imagePath)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}

// JoinPath appends elem to dir the way the paths were typed: dir is not
// cleaned, so "./out/" stays "./out/". A separator is only added when dir
// does not already end in one.
func JoinPath(dir, elem string) string {
	if dir == "" {
		return elem
	}
	if os.IsPathSeparator(dir[len(dir)-1]) {
		return dir + elem
	}
	return dir + string(filepath.Separator) + elem
}

// Find returns the progress images sharing imagePath's stem, sorted by file
// name. The result is never nil.
func (s *Scanner) Find(imagePath string) ([]string, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	matches := s.index[Stem(imagePath)]
	paths := make([]string, 0, len(matches))
	for _, name := range matches {
		paths = append(paths, JoinPath(s.displayDir, name))
	}
	return paths, nil
}

func (s *Scanner) load() error {
	if s.loaded {
		return nil
	}
	s.index = make(map[string][]string)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			ulog.Debug("No intermediates directory").
				Field("dir", s.dir).
				StructuredOnly().
				Emit()
			s.loaded = true
			return nil
		}
		return fmt.Errorf("failed to list progress images: %w", err)
	}

	// os.ReadDir sorts by name, so each stem's list is already ordered.
	for _, e := range entries {
		name := e.Name()
		i := strings.IndexByte(name, '.')
		if i < 0 {
			continue
		}
		stem := name[:i]
		s.index[stem] = append(s.index[stem], name)
	}
	s.loaded = true

	ulog.Debug("Indexed progress images").
		Field("dir", s.dir).
		Field("files", len(entries)).
		Field("stems", len(s.index)).
		StructuredOnly().
		Emit()
	return nil
}
