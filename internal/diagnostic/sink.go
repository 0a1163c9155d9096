// Package diagnostic is the production toc.ErrorSink: every diagnostic is
// logged through commonlog and also aggregated into a single multierr error
// a caller can inspect once loading finishes.
package diagnostic

import (
	"sync"

	"github.com/doctoolkit/tocloader/internal/toc"
	"github.com/tliron/commonlog"
	"go.uber.org/multierr"
)

var log = commonlog.GetLogger("tocloader.diagnostic")

// Sink collects diagnostics safely across the loader's parallel fan-out.
type Sink struct {
	mu          sync.Mutex
	diagnostics []toc.Diagnostic
	err         error
}

// New returns an empty Sink.
func New() *Sink {
	return &Sink{}
}

// Emit implements toc.ErrorSink.
func (s *Sink) Emit(d toc.Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.diagnostics = append(s.diagnostics, d)
	s.err = multierr.Append(s.err, d)

	switch d.Kind {
	case toc.DiagCircularReference:
		log.Errorf("%s", d.Error())
	case toc.DiagFileNotFound, toc.DiagCollaboratorError:
		log.Warningf("%s", d.Error())
	default:
		log.Debugf("%s", d.Error())
	}
}

// Diagnostics returns a snapshot of every diagnostic recorded so far.
func (s *Sink) Diagnostics() []toc.Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]toc.Diagnostic, len(s.diagnostics))
	copy(out, s.diagnostics)
	return out
}

// Err returns every diagnostic combined via multierr, or nil if none were
// recorded.
func (s *Sink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
