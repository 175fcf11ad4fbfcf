package engine

import (
	"errors"
	"fmt"
)

// ArgError reports a request that is malformed or refers to something that
// does not exist. It is always a caller defect and maps to BUG.
type ArgError struct {
	// Code identifies the error category.
	Code ArgErrorCode

	// Action is the wire name of the request.
	Action string

	// Message is a human-readable description.
	Message string

	// Arg is the offending argument, when there is one.
	Arg string

	// Err is the underlying parse error, if any.
	Err error
}

// ArgErrorCode categorizes argument errors.
type ArgErrorCode string

const (
	// ErrCodeUnknownAction indicates an action name outside the closed set.
	ErrCodeUnknownAction ArgErrorCode = "UNKNOWN_ACTION"

	// ErrCodeMissingArg indicates a required argument was not supplied.
	ErrCodeMissingArg ArgErrorCode = "MISSING_ARG"

	// ErrCodeBadID indicates an argument that is not a valid shortcut ID.
	ErrCodeBadID ArgErrorCode = "BAD_ID"

	// ErrCodeUnknownID indicates a well-formed ID that is not in the store.
	ErrCodeUnknownID ArgErrorCode = "UNKNOWN_ID"

	// ErrCodeBadPayload indicates a shortcut JSON argument that does not decode.
	ErrCodeBadPayload ArgErrorCode = "BAD_PAYLOAD"

	// ErrCodeBadValue indicates any other argument outside its allowed values.
	ErrCodeBadValue ArgErrorCode = "BAD_VALUE"
)

// Error implements the error interface.
func (e *ArgError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Arg != "" {
		msg += fmt.Sprintf(" (%q)", e.Arg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ArgError) Unwrap() error {
	return e.Err
}

// IsArgError reports whether err wraps an *ArgError.
func IsArgError(err error) bool {
	var ae *ArgError
	return errors.As(err, &ae)
}

func missingArg(action, what string) *ArgError {
	return &ArgError{
		Code:    ErrCodeMissingArg,
		Action:  action,
		Message: fmt.Sprintf("%s expects %s", action, what),
	}
}

func badID(action, arg string, err error) *ArgError {
	return &ArgError{
		Code:    ErrCodeBadID,
		Action:  action,
		Message: "not a shortcut id",
		Arg:     arg,
		Err:     err,
	}
}

func unknownID(action, arg string) *ArgError {
	return &ArgError{
		Code:    ErrCodeUnknownID,
		Action:  action,
		Message: "no shortcut with this id",
		Arg:     arg,
	}
}
