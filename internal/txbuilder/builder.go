// Package txbuilder selects spendable outputs, assembles unsigned transactions and
// delegates signing and broadcast to the wallet node.
package txbuilder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/txsubmitter/internal/model"
)

var unixEpoch = time.Unix(0, 0)

// Credentials authorize signing on the node. They are never printed.
type Credentials struct {
	Password string
}

func (Credentials) String() string   { return "Credentials{Password:<redacted>}" }
func (Credentials) GoString() string { return "txbuilder.Credentials{Password:<redacted>}" }

// Builder is safe for concurrent use when its Node is.
type Builder struct {
	node      Node
	selection Selection
}

// Option configures a Builder.
type Option func(*Builder)

// WithSelection sets the policy used by SelectInput.
func WithSelection(s Selection) Option {
	return func(b *Builder) {
		b.selection = s
	}
}

// NewBuilder returns a Builder over node. It selects FirstAvailable unless
// WithSelection says otherwise.
func NewBuilder(node Node, opts ...Option) (*Builder, error) {
	if node == nil {
		return nil, errors.New("node is required")
	}
	b := &Builder{node: node, selection: FirstAvailable}
	for _, opt := range opts {
		opt(b)
	}
	if _, err := ParseSelection(string(b.selection)); err != nil {
		return nil, err
	}
	return b, nil
}

// SelectInput lists the unspent outputs of account and returns the one chosen by
// the configured selection policy. It fails with ErrNoFundsAvailable when the
// account has nothing to spend.
func (b *Builder) SelectInput(ctx context.Context, account string) (model.UnspentOutput, error) {
	if account == "" {
		return model.UnspentOutput{}, invalid(StageSelectInput, ErrInvalidArgument, errors.New("account is empty"))
	}

	outputs, err := b.node.ListUnspentOutputs(ctx, account)
	if err != nil {
		return model.UnspentOutput{}, remoteFailure(StageSelectInput, nil, fmt.Errorf("list unspent outputs: %w", err))
	}
	if len(outputs) == 0 {
		return model.UnspentOutput{}, &StageError{
			Stage:  StageSelectInput,
			Reason: ReasonNoFunds,
			Kind:   ErrNoFundsAvailable,
			Err:    fmt.Errorf("account %q has no unspent outputs", account),
		}
	}
	return outputs[b.selection.pick(outputs)], nil
}

// InputFrom spends u with empty auxiliary data.
func InputFrom(u model.UnspentOutput) model.TransactionInput {
	return model.TransactionInput{OutputID: u.ID, Data: model.Data{}}
}

// BuildTransaction assembles an unsigned transaction. Inputs and outputs are
// copied, nil data becomes empty and ts is truncated to whole seconds in UTC.
// It performs no balance arithmetic, see CheckBalance.
func (b *Builder) BuildTransaction(inputs []model.TransactionInput, outputs []model.TransactionOutput, ts time.Time) (model.UnsignedTransaction, error) {
	tx := model.UnsignedTransaction{
		Inputs:    make([]model.TransactionInput, len(inputs)),
		Outputs:   make([]model.TransactionOutput, len(outputs)),
		Timestamp: ts.Truncate(time.Second).UTC(),
	}
	for i, in := range inputs {
		tx.Inputs[i] = model.TransactionInput{OutputID: in.OutputID, Data: in.Data.Clone()}
	}
	for i, out := range outputs {
		tx.Outputs[i] = model.TransactionOutput{Value: out.Value, Nonce: out.Nonce, Data: out.Data.Clone()}
	}

	if err := validate(tx); err != nil {
		return model.UnsignedTransaction{}, invalid(StageBuildTransaction, ErrInvalidTransaction, err)
	}
	return tx, nil
}

func validate(tx model.UnsignedTransaction) error {
	if len(tx.Inputs) == 0 {
		return errors.New("transaction has no inputs")
	}
	if len(tx.Outputs) == 0 {
		return errors.New("transaction has no outputs")
	}
	seen := make(map[string]struct{}, len(tx.Inputs))
	for i, in := range tx.Inputs {
		if in.OutputID == "" {
			return fmt.Errorf("input %d has no output id", i)
		}
		if _, ok := seen[in.OutputID]; ok {
			return fmt.Errorf("output %q spent twice", in.OutputID)
		}
		seen[in.OutputID] = struct{}{}
	}
	if tx.Timestamp.Before(unixEpoch) {
		return fmt.Errorf("timestamp %s is before the unix epoch", tx.Timestamp)
	}
	return nil
}

// SignTransaction asks the node to sign tx. Every remote failure is reported as
// ErrSigningFailed with a reason code.
func (b *Builder) SignTransaction(ctx context.Context, tx model.UnsignedTransaction, creds Credentials) (model.SignedTransaction, error) {
	if err := validate(tx); err != nil {
		return model.SignedTransaction{}, invalid(StageSignTransaction, ErrInvalidTransaction, err)
	}

	signed, err := b.node.SignTransaction(ctx, tx, creds.Password)
	if err != nil {
		return model.SignedTransaction{}, remoteFailure(StageSignTransaction, ErrSigningFailed, fmt.Errorf("sign transaction: %w", err))
	}
	return signed, nil
}

// SubmitTransaction broadcasts signed once. The call is not idempotent: a
// transport failure leaves the outcome unknown. A rejection by the node is
// returned as ErrBroadcastFailed together with the result.
func (b *Builder) SubmitTransaction(ctx context.Context, signed model.SignedTransaction) (model.SubmissionResult, error) {
	if signed.IsZero() {
		return model.SubmissionResult{}, invalid(StageSubmitTransaction, ErrInvalidArgument, errors.New("signed transaction is empty"))
	}

	reply, err := b.node.SendRawTransaction(ctx, signed)
	if err != nil {
		return model.SubmissionResult{}, remoteFailure(StageSubmitTransaction, ErrBroadcastFailed, fmt.Errorf("send raw transaction: %w", err))
	}

	result := model.SubmissionResult{Accepted: reply.Accepted, TxID: reply.TxID}
	if !reply.Accepted {
		return result, &StageError{
			Stage:  StageSubmitTransaction,
			Reason: ReasonRejected,
			Kind:   ErrBroadcastFailed,
			Err:    fmt.Errorf("node rejected transaction %s", signed.Digest()),
		}
	}
	return result, nil
}
