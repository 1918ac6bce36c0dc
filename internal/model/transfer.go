package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Regtest Network = "regtest"
)

// Transfer is a caller's request to pay outputs from one account.
type Transfer struct {
	Account string              `json:"account"`
	Outputs []TransactionOutput `json:"outputs"`
}

// IdempotencyKey identifies the transfer intent. Output nonces make it unique per payment.
func (t Transfer) IdempotencyKey() (string, error) {
	payload, err := json.Marshal(struct {
		Account string              `json:"account"`
		Outputs []TransactionOutput `json:"outputs"`
	}{t.Account, t.Outputs})
	if err != nil {
		return "", fmt.Errorf("encode transfer: %w", err)
	}
	return chainhash.DoubleHashH(payload).String(), nil
}

// SubmissionStatus is the journaled outcome of a broadcast.
type SubmissionStatus string

var (
	// SubmissionAccepted marks a transaction the node accepted.
	SubmissionAccepted SubmissionStatus = "accepted"
	// SubmissionRejected marks a transaction the node refused.
	SubmissionRejected SubmissionStatus = "rejected"
	// SubmissionPending marks a broadcast that started and has not reported back.
	SubmissionPending SubmissionStatus = "pending"
	// SubmissionFailed marks a broadcast whose outcome is unknown.
	SubmissionFailed SubmissionStatus = "failed"
)

// Unresolved reports whether the node may hold the journaled transaction even
// though no acceptance was observed.
func (s SubmissionStatus) Unresolved() bool {
	return s == SubmissionPending || s == SubmissionFailed
}

// Submission is a journal record. SignedTx holds the exact signed bytes so an
// unresolved broadcast can be repeated instead of paying again.
type Submission struct {
	IdempotencyKey string           `json:"idempotencyKey"`
	Account        string           `json:"account"`
	InputID        string           `json:"inputId"`
	TxID           string           `json:"txid"`
	Digest         string           `json:"digest"`
	SignedTx       string           `json:"signedTx,omitempty"`
	Status         SubmissionStatus `json:"status"`
	Detail         string           `json:"detail,omitempty"`
	RecordedAt     time.Time        `json:"recordedAt"`
}

// NodeInfo is the getinfo result.
type NodeInfo struct {
	Version     string `json:"version"`
	Connections uint64 `json:"connections"`
	Balance     string `json:"balance"`
	Height      uint64 `json:"height"`
}
