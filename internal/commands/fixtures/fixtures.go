// Package fixtures provides recording doubles for command wiring tests.
package fixtures

import "errors"

// ErrRegistryClosed is returned by a RecordingRegistry after Fail is called
// without an explicit error.
var ErrRegistryClosed = errors.New("fixtures: registry closed")

// RecordingRegistry captures command handlers passed to RegisterCommand.
type RecordingRegistry struct {
	Handlers []any
	err      error
}

// NewRecordingRegistry constructs an empty registry recorder.
func NewRecordingRegistry() *RecordingRegistry {
	return &RecordingRegistry{Handlers: make([]any, 0)}
}

// RegisterCommand records handler, or fails when Fail was called.
func (r *RecordingRegistry) RegisterCommand(handler any) error {
	if r.err != nil {
		return r.err
	}
	r.Handlers = append(r.Handlers, handler)
	return nil
}

// Fail makes subsequent registrations return err.
func (r *RecordingRegistry) Fail(err error) {
	if err == nil {
		err = ErrRegistryClosed
	}
	r.err = err
}
