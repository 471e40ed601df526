package codegen

import (
	"fmt"

	"github.com/oxidegen/oxidegen/model"
)

type (
	// ConfigurationError is a fatal error in the run configuration or
	// decorator/protocol wiring, surfaced before traversal starts: duplicate
	// decorator names, missing or ambiguous protocol selection, malformed
	// reserved-word lists.
	ConfigurationError struct {
		// Reason describes what is wrong.
		Reason string
		// Err is the underlying cause, when any.
		Err error
	}

	// UnsupportedShapeError is a fatal error for a shape/trait combination
	// with no symbol or protocol mapping. It names the offending shape and
	// the stage that rejected it; the whole run's output is discarded since
	// code that compiles with silently wrong semantics is worse than a hard
	// stop.
	UnsupportedShapeError struct {
		// Shape is the offending shape id.
		Shape model.ShapeID
		// Stage names the pipeline stage that rejected the shape.
		Stage string
		// Reason describes why the shape is unsupported.
		Reason string
	}
)

// Error implements error.
func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %s", e.Reason, e.Err)
	}
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// Unwrap exposes the underlying cause.
func (e *ConfigurationError) Unwrap() error { return e.Err }

// Error implements error.
func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("unsupported shape %s (stage %s): %s", e.Shape, e.Stage, e.Reason)
}

func configErr(err error, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...), Err: err}
}
