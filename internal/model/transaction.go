// Package model defines the value objects exchanged with the wallet node.
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/txsubmitter/pkg/safe"
)

// UnspentOutput is a previously created value record owned by an account.
type UnspentOutput struct {
	ID      string `json:"id"`
	Account string `json:"-"`
	Value   uint64 `json:"value"`
	Nonce   uint64 `json:"nonce,omitempty"`
	Data    Data   `json:"data,omitempty"`
}

// TransactionInput spends an unspent output.
type TransactionInput struct {
	OutputID string `json:"outputId"`
	Data     Data   `json:"data"`
}

// TransactionOutput creates a new value record.
type TransactionOutput struct {
	Value uint64 `json:"value"`
	Nonce uint64 `json:"nonce"`
	Data  Data   `json:"data"`
}

// UnsignedTransaction is the request handed to the signer.
type UnsignedTransaction struct {
	Inputs    []TransactionInput
	Outputs   []TransactionOutput
	Timestamp time.Time
}

type unsignedTransactionJSON struct {
	Inputs    []TransactionInput  `json:"inputs"`
	Outputs   []TransactionOutput `json:"outputs"`
	Timestamp uint64              `json:"timestamp"`
}

// MarshalJSON encodes the timestamp as unix seconds, the form the node parses.
func (t UnsignedTransaction) MarshalJSON() ([]byte, error) {
	ts, err := safe.Uint64(t.Timestamp.Unix())
	if err != nil {
		return nil, fmt.Errorf("transaction timestamp: %w", err)
	}
	return json.Marshal(unsignedTransactionJSON{
		Inputs:    t.Inputs,
		Outputs:   t.Outputs,
		Timestamp: ts,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *UnsignedTransaction) UnmarshalJSON(b []byte) error {
	var raw unsignedTransactionJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	sec, err := safe.Int64(raw.Timestamp)
	if err != nil {
		return fmt.Errorf("transaction timestamp: %w", err)
	}
	*t = UnsignedTransaction{
		Inputs:    raw.Inputs,
		Outputs:   raw.Outputs,
		Timestamp: time.Unix(sec, 0).UTC(),
	}
	return nil
}

// TotalOutputValue sums output values, failing on overflow.
func (t UnsignedTransaction) TotalOutputValue() (uint64, error) {
	return SumOutputs(t.Outputs)
}

// SumOutputs sums output values, failing on overflow.
func SumOutputs(outputs []TransactionOutput) (uint64, error) {
	var total uint64
	for i, out := range outputs {
		next := total + out.Value
		if next < total {
			return 0, fmt.Errorf("output %d: value overflow", i)
		}
		total = next
	}
	return total, nil
}

// SignedTransaction is the signer's opaque result. Its bytes are forwarded unmodified.
type SignedTransaction struct {
	raw json.RawMessage
}

// NewSignedTransaction wraps a signer result, which must be a JSON object.
func NewSignedTransaction(raw []byte) (SignedTransaction, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return SignedTransaction{}, errors.New("signed transaction must be a JSON object")
	}
	if !json.Valid(trimmed) {
		return SignedTransaction{}, errors.New("signed transaction is not valid JSON")
	}
	return SignedTransaction{raw: append(json.RawMessage(nil), trimmed...)}, nil
}

// Raw returns a copy of the signed bytes.
func (s SignedTransaction) Raw() json.RawMessage {
	return append(json.RawMessage(nil), s.raw...)
}

// IsZero reports whether s holds no transaction.
func (s SignedTransaction) IsZero() bool { return len(s.raw) == 0 }

// Digest is the double SHA-256 of the compacted signed bytes.
func (s SignedTransaction) Digest() chainhash.Hash {
	var buf bytes.Buffer
	if err := json.Compact(&buf, s.raw); err != nil {
		return chainhash.DoubleHashH(s.raw)
	}
	return chainhash.DoubleHashH(buf.Bytes())
}

// ID returns the "id" field the node embeds in signed transactions, if any.
func (s SignedTransaction) ID() string {
	var envelope struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(s.raw, &envelope); err != nil || len(envelope.ID) == 0 {
		return ""
	}
	var id string
	if err := json.Unmarshal(envelope.ID, &id); err == nil {
		return id
	}
	return string(envelope.ID)
}

// MarshalJSON implements json.Marshaler.
func (s SignedTransaction) MarshalJSON() ([]byte, error) {
	if len(s.raw) == 0 {
		return []byte("null"), nil
	}
	return s.Raw(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *SignedTransaction) UnmarshalJSON(b []byte) error {
	parsed, err := NewSignedTransaction(b)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// BroadcastReply is the node's answer to sendrawtransaction.
type BroadcastReply struct {
	Accepted bool
	TxID     string
}

// SubmissionResult reports the outcome of a submission. TxID is set only when
// the node reports an id, either in an object broadcast reply or as an "id"
// field of the signed transaction. CryptoKernel nodes do neither, so for them
// TxID stays empty and the journaled digest identifies the transaction.
type SubmissionResult struct {
	Accepted       bool   `json:"accepted"`
	TxID           string `json:"txid,omitempty"`
	InputID        string `json:"inputId,omitempty"`
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
	Replayed       bool   `json:"replayed,omitempty"`
}
