package consumer

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies why an operation degraded to its failure value.
type Kind string

const (
	// KindTransport covers connection refused, DNS and timeout failures.
	KindTransport Kind = "transport"
	// KindStatus is a non-2xx answer without a usable body.
	KindStatus Kind = "status"
	// KindDecode is a body that is not valid JSON for the endpoint schema.
	KindDecode Kind = "decode"
	// KindMissingField is valid JSON lacking a required field.
	KindMissingField Kind = "missing_field"
	// KindRejected is an explicit application-level refusal (success false or absent).
	KindRejected Kind = "rejected"
)

// Error is the failure variant returned next to every failure value.
type Error struct {
	Op         string
	Kind       Kind
	Reason     string
	Field      string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(string(e.Kind))
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind carried by err, or "" when err is nil or foreign.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

func transportError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindTransport, Reason: err.Error(), Err: err}
}

func decodeError(op string, status int, err error) *Error {
	return &Error{Op: op, Kind: KindDecode, Reason: err.Error(), StatusCode: status, Err: err}
}

func statusError(op string, status int, body []byte) *Error {
	return &Error{
		Op:         op,
		Kind:       KindStatus,
		Reason:     describeBody(body),
		StatusCode: status,
		Err:        fmt.Errorf("unexpected status %d", status),
	}
}

func missingField(op, field string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindMissingField,
		Reason: "missing field " + field,
		Field:  field,
		Err:    fmt.Errorf("response has no %q", field),
	}
}

func rejectedError(op string, status int, message string) *Error {
	return &Error{
		Op:         op,
		Kind:       KindRejected,
		Reason:     message,
		StatusCode: status,
		Err:        errors.New("service reported failure"),
	}
}
