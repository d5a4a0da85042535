package launches

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTarget is matched by every *UnknownTargetError.
	ErrUnknownTarget = errors.New("no matching planet was found")

	// ErrMissingField is returned when a schedule request lacks a required property.
	ErrMissingField = errors.New("missing required launch property")

	// ErrImportTransport is matched by every *ImportTransportError.
	ErrImportTransport = errors.New("launch data download failed")
)

// UnknownTargetError reports a schedule request for a planet that is not in
// the catalog.
type UnknownTargetError struct {
	Target string
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownTarget, e.Target)
}

func (e *UnknownTargetError) Is(target error) bool {
	return target == ErrUnknownTarget
}

// ImportTransportError reports a failed download from the launch data
// provider. StatusCode is 0 when no response was received.
type ImportTransportError struct {
	StatusCode int
	Err        error
}

func (e *ImportTransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: provider returned status %d", ErrImportTransport, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", ErrImportTransport, e.Err)
}

func (e *ImportTransportError) Is(target error) bool {
	return target == ErrImportTransport
}

func (e *ImportTransportError) Unwrap() error {
	return e.Err
}
