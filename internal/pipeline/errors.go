package pipeline

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure by whose problem it is: the
// input document, the deployment configuration, or the code.
type Kind string

const (
	// KindUserData marks failures caused by the document itself:
	// unreadable files, missing statements, malformed tables.
	KindUserData Kind = "user-data"
	// KindConfiguration marks failures caused by deployment gaps,
	// such as scanned input with no OCR service configured.
	KindConfiguration Kind = "configuration"
	// KindUnexpected marks everything else.
	KindUnexpected Kind = "unexpected"
)

// Error wraps a failure with its kind and the stage that produced it.
type Error struct {
	Kind  Kind
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func userDataErr(stage, format string, args ...any) *Error {
	return &Error{Kind: KindUserData, Stage: stage, Err: fmt.Errorf(format, args...)}
}

func configErr(stage, format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Stage: stage, Err: fmt.Errorf(format, args...)}
}

func unexpectedErr(stage string, err error) *Error {
	return &Error{Kind: KindUnexpected, Stage: stage, Err: err}
}

// KindOf extracts the kind from any error, defaulting to unexpected.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnexpected
}
