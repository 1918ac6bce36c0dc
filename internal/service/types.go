package service

import (
	"context"
	"time"

	"github.com/goodnatureofminers/txsubmitter/internal/model"
	"github.com/goodnatureofminers/txsubmitter/internal/txbuilder"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Builder interface {
		SelectInput(ctx context.Context, account string) (model.UnspentOutput, error)
		BuildTransaction(inputs []model.TransactionInput, outputs []model.TransactionOutput, ts time.Time) (model.UnsignedTransaction, error)
		SignTransaction(ctx context.Context, tx model.UnsignedTransaction, creds txbuilder.Credentials) (model.SignedTransaction, error)
		SubmitTransaction(ctx context.Context, signed model.SignedTransaction) (model.SubmissionResult, error)
	}
	Journal interface {
		Lookup(ctx context.Context, key string) (model.Submission, bool, error)
		Record(ctx context.Context, s model.Submission) error
	}
	TransferMetrics interface {
		ObserveStage(stage txbuilder.Stage, err error, started time.Time)
		ObserveTransfer(outcome string, started time.Time)
	}
)
