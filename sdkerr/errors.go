package sdkerr

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error the SDK returns matches exactly one of these
// via errors.Is, so callers can branch on the failure class without
// inspecting strings.
var (
	// ErrValidation indicates the caller supplied invalid parameters;
	// no request was sent.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration indicates the client was misconfigured (missing
	// appkey, unusable base URL).
	ErrConfiguration = errors.New("configuration error")
	// ErrNetwork indicates the request never completed: connection
	// refused, DNS failure, timeout, or a malformed URL. The service may
	// or may not have seen the request.
	ErrNetwork = errors.New("network error")
	// ErrAPIError indicates the service answered with a non-success
	// status. Status and the parsed error body travel with the error.
	ErrAPIError = errors.New("api error")
	// ErrDecodeError indicates the response body was not valid JSON or
	// XML where a structured body was expected. The raw body is attached
	// for diagnosis.
	ErrDecodeError = errors.New("decode error")
	// ErrLocalIO indicates a local file could not be read (upload) or
	// written (download).
	ErrLocalIO = errors.New("local i/o error")
)

// SDKError is the error type returned by every SDK operation.
type SDKError struct {
	kind    error
	message string
	cause   error
	op      string
	subsys  string
	status  int
	rawBody []byte
}

// Error returns the error message.
func (e *SDKError) Error() string {
	var parts []string

	if e.subsys != "" {
		parts = append(parts, fmt.Sprintf("subsys: %s", e.subsys))
	}
	if e.op != "" {
		parts = append(parts, fmt.Sprintf("op: %s", e.op))
	}
	if e.kind != nil {
		parts = append(parts, fmt.Sprintf("kind: %s", e.kind))
	}
	if e.status != 0 {
		parts = append(parts, fmt.Sprintf("status: %d", e.status))
	}
	if e.message != "" {
		parts = append(parts, fmt.Sprintf("msg: %s", e.message))
	}
	if e.cause != nil {
		parts = append(parts, fmt.Sprintf("cause: %s", e.cause))
	}

	return strings.Join(parts, " | ")
}

// Is reports whether any error in the chain matches target.
func (e *SDKError) Is(target error) bool {
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	if e.cause != nil && errors.Is(e.cause, target) {
		return true
	}
	return false
}

// As finds the first error in the chain matching target.
func (e *SDKError) As(target any) bool {
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}
	if e.cause != nil && errors.As(e.cause, target) {
		return true
	}
	return false
}

// Unwrap returns the cause of the error.
func (e *SDKError) Unwrap() error {
	return e.cause
}

// Kind returns the kind of the error.
func (e *SDKError) Kind() error {
	return e.kind
}

// Message returns the message of the error.
func (e *SDKError) Message() string {
	return e.message
}

// Cause returns the cause of the error.
func (e *SDKError) Cause() error {
	return e.cause
}

// Op returns the operation that raised the error.
func (e *SDKError) Op() string {
	return e.op
}

// Subsys returns the subsystem the error belongs to.
func (e *SDKError) Subsys() string {
	return e.subsys
}

// Status returns the remote HTTP status, or 0 when the error is not a
// remote one.
func (e *SDKError) Status() int {
	return e.status
}

// RawBody returns the undecoded response body, set for decode errors.
func (e *SDKError) RawBody() []byte {
	return e.rawBody
}

// NewSDKError creates an empty SDKError to be filled by the With chain.
func NewSDKError() *SDKError {
	return &SDKError{}
}

// WithKind sets the kind of the error.
func (e *SDKError) WithKind(kind error) *SDKError {
	e.kind = kind
	return e
}

// WithMessage sets the message of the error.
func (e *SDKError) WithMessage(msg string) *SDKError {
	e.message = msg
	return e
}

// WithCause sets the cause of the error.
func (e *SDKError) WithCause(err error) *SDKError {
	e.cause = err
	return e
}

// WithOp sets the operation of the error.
func (e *SDKError) WithOp(op string) *SDKError {
	e.op = op
	return e
}

// WithSubsys sets the subsystem of the error.
func (e *SDKError) WithSubsys(subsys string) *SDKError {
	e.subsys = subsys
	return e
}

// WithStatus records the remote HTTP status.
func (e *SDKError) WithStatus(status int) *SDKError {
	e.status = status
	return e
}

// WithRawBody attaches the undecoded response body.
func (e *SDKError) WithRawBody(body []byte) *SDKError {
	e.rawBody = body
	return e
}
