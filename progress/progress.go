// Package progress defines the event surface the installer reports through.
// Callers plug in their own sink (a GUI, a TUI, a log); when none is
// configured the installer uses the no-op sink.
package progress

import (
	"github.com/charmbracelet/log"
)

// Sink receives install progress events. Implementations must be safe for
// concurrent use; download workers emit from multiple goroutines.
type Sink interface {
	// FileProgress reports bytes written so far for one file. Total is 0
	// when the server did not announce a length.
	FileProgress(path string, downloaded int64, total int64)

	// BatchProgress reports aggregate completion of a download batch.
	BatchProgress(path string, completed int, total int, category string)

	// Console reports a free-text output line. Reserved for the launch
	// collaborator; the install core does not produce these.
	Console(line string)
}

// Nop discards all events.
type Nop struct{}

func (Nop) FileProgress(string, int64, int64)      {}
func (Nop) BatchProgress(string, int, int, string) {}
func (Nop) Console(string)                         {}

// LogSink writes aggregate progress and console lines to a logger.
// Per-chunk file progress is too chatty for logs and is dropped.
type LogSink struct {
	Logger *log.Logger
}

func (s *LogSink) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}

func (s *LogSink) FileProgress(string, int64, int64) {}

func (s *LogSink) BatchProgress(path string, completed int, total int, category string) {
	s.logger().Info("downloaded", "file", path, "done", completed, "total", total, "category", category)
}

func (s *LogSink) Console(line string) {
	s.logger().Print(line)
}
