package txbuilder

import (
	"context"

	"github.com/goodnatureofminers/txsubmitter/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Node is the subset of the wallet node API the builder delegates to.
	Node interface {
		ListUnspentOutputs(ctx context.Context, account string) ([]model.UnspentOutput, error)
		SignTransaction(ctx context.Context, tx model.UnsignedTransaction, password string) (model.SignedTransaction, error)
		SendRawTransaction(ctx context.Context, signed model.SignedTransaction) (model.BroadcastReply, error)
	}
)
