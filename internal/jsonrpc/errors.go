package jsonrpc

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrTransport marks failures to reach the endpoint or read its answer.
	ErrTransport = errors.New("rpc transport error")
	// ErrProtocol marks answers that are not a usable JSON-RPC response.
	ErrProtocol = errors.New("rpc protocol error")
)

// Reason refines ErrTransport and ErrProtocol.
type Reason string

const (
	ReasonTimeout       Reason = "timeout"
	ReasonCanceled      Reason = "canceled"
	ReasonConnection    Reason = "connection"
	ReasonHTTPStatus    Reason = "http_status"
	ReasonMalformed     Reason = "malformed_response"
	ReasonMissingResult Reason = "missing_result"
	ReasonIDMismatch    Reason = "id_mismatch"
)

// Error is a transport or protocol failure of a single call.
type Error struct {
	Kind   error
	Reason Reason
	Method string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%s): %v", e.Method, e.Kind, e.Reason, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// ReasonOf returns the reason carried by a transport or protocol error.
func ReasonOf(err error) (Reason, bool) {
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr.Reason, true
	}
	return "", false
}

func transportError(method string, reason Reason, err error) error {
	return &Error{Kind: ErrTransport, Reason: reason, Method: method, Err: err}
}

// ProtocolError reports a response that does not carry the expected result.
func ProtocolError(method string, reason Reason, err error) error {
	return &Error{Kind: ErrProtocol, Reason: reason, Method: method, Err: err}
}

func transportReason(ctx context.Context, err error) Reason {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ReasonCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}
	if errors.Is(err, context.Canceled) {
		return ReasonCanceled
	}
	return ReasonConnection
}
