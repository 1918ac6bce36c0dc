package txbuilder

import (
	"context"
	"errors"
	"strings"

	"github.com/btcsuite/btcd/btcjson"

	"github.com/goodnatureofminers/txsubmitter/internal/jsonrpc"
)

var (
	ErrNoFundsAvailable       = errors.New("no funds available")
	ErrSigningFailed          = errors.New("signing failed")
	ErrBroadcastFailed        = errors.New("broadcast failed")
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrInvalidTransaction     = errors.New("invalid transaction")
	ErrInsufficientInputValue = errors.New("outputs exceed input value")
)

// Stage names a step of the submission pipeline.
type Stage string

const (
	StageSelectInput       Stage = "select_input"
	StageBuildTransaction  Stage = "build_transaction"
	StageSignTransaction   Stage = "sign_transaction"
	StageSubmitTransaction Stage = "submit_transaction"
)

// Reason is a stable code describing why a stage failed.
type Reason string

const (
	ReasonTimeout         Reason = "timeout"
	ReasonCanceled        Reason = "canceled"
	ReasonTransport       Reason = "transport"
	ReasonProtocol        Reason = "protocol"
	ReasonRemoteError     Reason = "remote_error"
	ReasonRejected        Reason = "rejected"
	ReasonNoFunds         Reason = "no_funds"
	ReasonInvalidArgument Reason = "invalid_argument"
)

// StageError reports the stage that halted the pipeline. It matches Kind and
// everything wrapped by Err under errors.Is and errors.As.
type StageError struct {
	Stage  Stage
	Reason Reason
	Kind   error
	Err    error
}

func (e *StageError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Stage))
	if e.Kind != nil {
		b.WriteString(": ")
		b.WriteString(e.Kind.Error())
	}
	if e.Reason != "" {
		b.WriteString(" (")
		b.WriteString(string(e.Reason))
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *StageError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// StageOf returns the stage and reason of a pipeline failure.
func StageOf(err error) (Stage, Reason, bool) {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage, stageErr.Reason, true
	}
	return "", "", false
}

func remoteFailure(stage Stage, kind, err error) error {
	return &StageError{Stage: stage, Reason: classify(err), Kind: kind, Err: err}
}

func invalid(stage Stage, kind, err error) error {
	return &StageError{Stage: stage, Reason: ReasonInvalidArgument, Kind: kind, Err: err}
}

func classify(err error) Reason {
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		return ReasonRemoteError
	}
	if reason, ok := jsonrpc.ReasonOf(err); ok {
		switch {
		case reason == jsonrpc.ReasonTimeout:
			return ReasonTimeout
		case reason == jsonrpc.ReasonCanceled:
			return ReasonCanceled
		case errors.Is(err, jsonrpc.ErrProtocol):
			return ReasonProtocol
		}
		return ReasonTransport
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.Is(err, context.Canceled):
		return ReasonCanceled
	}
	return ReasonTransport
}
