// Package logio provides the audit log of an import run: a plain text file
// with one timestamped line per message.
package logio

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gnames/gnsys"
)

// Sink is an open audit log file.
type Sink struct {
	path string
	f    *os.File
	log  *slog.Logger
	once sync.Once
	err  error
}

// Open creates or appends to the log file at path.
func Open(path string) (*Sink, error) {
	if err := gnsys.MakeDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	res := Sink{
		path: path,
		f:    f,
		log:  slog.New(NewHandler(f, slog.LevelInfo)),
	}
	return &res, nil
}

// Logger returns the logger writing to the file.
func (s *Sink) Logger() *slog.Logger {
	return s.log
}

// Path returns the path of the log file.
func (s *Sink) Path() string {
	return s.path
}

// Close flushes and closes the file. Calling Close again returns the result
// of the first call.
func (s *Sink) Close() error {
	s.once.Do(func() {
		if err := s.f.Sync(); err != nil {
			s.err = err
		}
		if err := s.f.Close(); err != nil && s.err == nil {
			s.err = err
		}
	})
	return s.err
}

// DefaultPath derives the log file path for a source file:
// import_<basename>_<YYYYMMDD_HHMMSS>.log next to the source.
func DefaultPath(src string, now time.Time) string {
	abs, err := filepath.Abs(src)
	if err != nil {
		abs = src
	}
	base := filepath.Base(abs)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	name := fmt.Sprintf("import_%s_%s.log", base, now.Format("20060102_150405"))
	return filepath.Join(filepath.Dir(abs), name)
}
