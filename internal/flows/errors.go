package flows

import (
	"errors"
	"fmt"

	"agrisentry/internal/llm"
)

// Kind classifies a flow failure for the caller-facing boundary.
type Kind int

const (
	// KindValidation: malformed caller input; no external call was made.
	KindValidation Kind = iota + 1
	// KindService: the model service was unreachable or errored.
	KindService
	// KindMalformedOutput: the service responded but the output failed
	// schema validation. Treated like KindService by callers.
	KindMalformedOutput
	// KindTimeout: the model call exceeded its deadline.
	KindTimeout
)

// FlowError is the single error type crossing the workflow boundary.
// UserMsg is safe to show to callers; Cause carries the internal detail.
type FlowError struct {
	Kind    Kind
	UserMsg string
	Cause   error
}

func (e *FlowError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("flows: %s (kind=%d)", e.Cause.Error(), e.Kind)
	}
	return fmt.Sprintf("flows: %s (kind=%d)", e.UserMsg, e.Kind)
}

func (e *FlowError) Unwrap() error { return e.Cause }

func validationError(reason string) *FlowError {
	return &FlowError{Kind: KindValidation, UserMsg: reason}
}

// invocationError classifies a model-call failure and attaches the flow's
// generic user-facing message; internal detail never leaks to callers.
func invocationError(userMsg string, err error) *FlowError {
	kind := KindService
	switch {
	case errors.Is(err, llm.ErrTimeout):
		kind = KindTimeout
	case errors.Is(err, llm.ErrInvalidJSON):
		kind = KindMalformedOutput
	}
	return &FlowError{Kind: kind, UserMsg: userMsg, Cause: err}
}

func malformedOutput(userMsg string, err error) *FlowError {
	return &FlowError{Kind: KindMalformedOutput, UserMsg: userMsg, Cause: err}
}

// UserMessage extracts the caller-safe message from any flow error.
func UserMessage(err error) string {
	var fe *FlowError
	if errors.As(err, &fe) && fe.UserMsg != "" {
		return fe.UserMsg
	}
	return "An unexpected error occurred. Please try again later."
}

// KindOf returns the failure kind, or 0 for non-flow errors.
func KindOf(err error) Kind {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
