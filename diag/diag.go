// Package diag carries non-fatal generation diagnostics. A Sink is threaded
// through the symbol chain and decorator merge explicitly, replacing any
// notion of global logging state, and rides on the run result alongside the
// artifacts.
package diag

import (
	"context"
	"fmt"
	"sync"

	"goa.design/clue/log"

	"github.com/oxidegen/oxidegen/model"
)

type (
	// Severity grades a diagnostic.
	Severity string

	// Diagnostic is one structured, non-fatal anomaly observed during a run,
	// attributed to the shape and pipeline stage that produced it.
	Diagnostic struct {
		// Severity grades the anomaly.
		Severity Severity
		// Stage names the pipeline stage that reported it.
		Stage string
		// Shape is the offending shape or member id, when applicable.
		Shape model.ShapeID
		// Message is the human-readable description.
		Message string
	}

	// Sink receives diagnostics as they are produced.
	Sink interface {
		Report(ctx context.Context, d Diagnostic)
	}

	// ListSink accumulates diagnostics in memory. Safe for concurrent use.
	ListSink struct {
		mu   sync.Mutex
		list []Diagnostic
	}

	// LogSink forwards diagnostics to the context logger and then to an
	// optional next sink.
	LogSink struct {
		// Next receives each diagnostic after logging, when non-nil.
		Next Sink
	}

	nopSink struct{}
)

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// String renders the diagnostic in "severity stage shape: message" form.
func (d Diagnostic) String() string {
	if d.Shape != "" {
		return fmt.Sprintf("%s [%s] %s: %s", d.Severity, d.Stage, d.Shape, d.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", d.Severity, d.Stage, d.Message)
}

// Report appends d to the list.
func (s *ListSink) Report(_ context.Context, d Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = append(s.list, d)
}

// Diagnostics returns a copy of the accumulated diagnostics in report order.
func (s *ListSink) Diagnostics() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Diagnostic, len(s.list))
	copy(out, s.list)
	return out
}

// Report logs d and forwards it to Next.
func (s LogSink) Report(ctx context.Context, d Diagnostic) {
	fields := []log.Fielder{
		log.KV{K: "msg", V: d.Message},
		log.KV{K: "stage", V: d.Stage},
		log.KV{K: "shape", V: string(d.Shape)},
	}
	switch d.Severity {
	case SeverityWarning:
		log.Warn(ctx, fields...)
	default:
		log.Info(ctx, fields...)
	}
	if s.Next != nil {
		s.Next.Report(ctx, d)
	}
}

// Multi fans each diagnostic out to every sink in order.
func Multi(sinks ...Sink) Sink { return multiSink(sinks) }

type multiSink []Sink

func (m multiSink) Report(ctx context.Context, d Diagnostic) {
	for _, s := range m {
		if s != nil {
			s.Report(ctx, d)
		}
	}
}

// Nop returns a sink that discards every diagnostic.
func Nop() Sink { return nopSink{} }

func (nopSink) Report(context.Context, Diagnostic) {}

// Bound couples a sink with the run context so pure pipeline stages (symbol
// transforms, decorator merge) can report without threading a context through
// every resolution call.
type Bound struct {
	ctx  context.Context
	sink Sink
}

// Bind returns a Bound reporter for the given run context. A nil sink binds
// to Nop.
func Bind(ctx context.Context, sink Sink) *Bound {
	if sink == nil {
		sink = Nop()
	}
	return &Bound{ctx: ctx, sink: sink}
}

// Report forwards d to the underlying sink with the bound context.
func (b *Bound) Report(d Diagnostic) { b.sink.Report(b.ctx, d) }
