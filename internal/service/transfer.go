package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/txsubmitter/internal/model"
	"github.com/goodnatureofminers/txsubmitter/internal/txbuilder"
	"github.com/goodnatureofminers/txsubmitter/pkg/safe"
)

const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
	OutcomeReplayed = "replayed"
)

const defaultWorkers = 4

// Config tunes a TransferService.
type Config struct {
	Credentials txbuilder.Credentials
	// CheckBalance refuses transfers paying more than the selected output holds.
	CheckBalance bool
	// Workers bounds the number of accounts processed concurrently by TransferBatch.
	Workers int
	// FailFast stops TransferBatch at the first failed transfer.
	FailFast bool
}

// TransferService runs the select, build, sign and submit pipeline for one
// transfer at a time and journals broadcast outcomes by idempotency key.
type TransferService struct {
	builder      Builder
	journal      Journal
	metrics      TransferMetrics
	creds        txbuilder.Credentials
	checkBalance bool
	workers      int
	failFast     bool
	now          func() time.Time
	logger       *zap.Logger
}

// NewTransferService wires the pipeline. A nil logger discards output and a
// non-positive cfg.Workers falls back to four workers.
func NewTransferService(
	builder Builder,
	journal Journal,
	metrics TransferMetrics,
	cfg Config,
	logger *zap.Logger,
) (*TransferService, error) {
	if builder == nil {
		return nil, errors.New("transaction builder is required")
	}
	if journal == nil {
		return nil, errors.New("submission journal is required")
	}
	if metrics == nil {
		return nil, errors.New("transfer metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	return &TransferService{
		builder:      builder,
		journal:      journal,
		metrics:      metrics,
		creds:        cfg.Credentials,
		checkBalance: cfg.CheckBalance,
		workers:      workers,
		failFast:     cfg.FailFast,
		now:          time.Now,
		logger:       logger.Named("transfer"),
	}, nil
}

// ErrOutcomeUnknown is returned when a journaled transaction may already be on
// the ledger and repeating its broadcast did not settle the outcome. The transfer
// stays blocked until an operator resolves the journal record.
var ErrOutcomeUnknown = errors.New("broadcast outcome unknown")

// Transfer pays t.Outputs from one output of t.Account. A transfer already
// accepted by the node is answered from the journal without any remote call.
// A transfer whose earlier broadcast never reported back is resolved by sending
// the journaled signed bytes again, never by signing a second transaction.
// The pipeline halts at the first failing stage and returns its *txbuilder.StageError.
func (s *TransferService) Transfer(ctx context.Context, t model.Transfer) (model.SubmissionResult, error) {
	started := time.Now()
	outcome := OutcomeFailed
	defer func() {
		s.metrics.ObserveTransfer(outcome, started)
	}()

	key, err := t.IdempotencyKey()
	if err != nil {
		return model.SubmissionResult{}, fmt.Errorf("derive idempotency key: %w", err)
	}
	logger := s.logger.With(zap.String("account", t.Account), zap.String("idempotency_key", key))

	prev, found, err := s.journal.Lookup(ctx, key)
	if err != nil {
		return model.SubmissionResult{IdempotencyKey: key}, fmt.Errorf("lookup submission: %w", err)
	}
	switch {
	case found && prev.Status == model.SubmissionAccepted:
		outcome = OutcomeReplayed
		logger.Info("transfer already accepted, skipping broadcast", zap.String("txid", prev.TxID))
		return model.SubmissionResult{
			Accepted:       true,
			TxID:           prev.TxID,
			InputID:        prev.InputID,
			IdempotencyKey: key,
			Replayed:       true,
		}, nil
	case found && prev.Status.Unresolved():
		res, err := s.rebroadcast(ctx, logger, prev)
		outcome = outcomeOf(err)
		return res, err
	case found:
		logger.Info("retrying transfer", zap.String("previous_status", string(prev.Status)))
	}

	failed := model.SubmissionResult{IdempotencyKey: key}

	stageStarted := time.Now()
	input, err := s.builder.SelectInput(ctx, t.Account)
	s.metrics.ObserveStage(txbuilder.StageSelectInput, err, stageStarted)
	if err != nil {
		logger.Warn("select input failed", zap.Error(err))
		return failed, err
	}
	failed.InputID = input.ID
	logger = logger.With(zap.String("input_id", input.ID))

	stageStarted = time.Now()
	tx, err := s.build(logger, input, t.Outputs)
	s.metrics.ObserveStage(txbuilder.StageBuildTransaction, err, stageStarted)
	if err != nil {
		logger.Warn("build transaction failed", zap.Error(err))
		return failed, err
	}

	stageStarted = time.Now()
	signed, err := s.builder.SignTransaction(ctx, tx, s.creds)
	s.metrics.ObserveStage(txbuilder.StageSignTransaction, err, stageStarted)
	if err != nil {
		logger.Warn("sign transaction failed", zap.Error(err))
		return failed, err
	}
	if err := ctx.Err(); err != nil {
		return failed, fmt.Errorf("transfer stopped before broadcast: %w", err)
	}

	sub := model.Submission{
		IdempotencyKey: key,
		Account:        t.Account,
		InputID:        input.ID,
		Digest:         signed.Digest().String(),
		SignedTx:       string(signed.Raw()),
		Status:         model.SubmissionPending,
		RecordedAt:     s.now().UTC(),
	}
	// Nothing is broadcast unless the signed bytes are journaled first.
	if err := s.journal.Record(ctx, sub); err != nil {
		return failed, fmt.Errorf("record pending submission: %w", err)
	}

	res, err := s.broadcast(ctx, logger, sub, signed, statusOf)
	outcome = outcomeOf(err)
	if err == nil {
		logger.Info("transaction accepted",
			zap.String("txid", res.TxID),
			zap.String("digest", sub.Digest),
			zap.Int("outputs", len(tx.Outputs)),
		)
	}
	return res, err
}

// rebroadcast repeats the journaled broadcast of prev. Acceptance settles the
// transfer. A rejection cannot tell a spent input from an invalid transaction, so
// the record stays unresolved and ErrOutcomeUnknown is returned.
func (s *TransferService) rebroadcast(ctx context.Context, logger *zap.Logger, prev model.Submission) (model.SubmissionResult, error) {
	failed := model.SubmissionResult{IdempotencyKey: prev.IdempotencyKey, InputID: prev.InputID}
	logger = logger.With(zap.String("input_id", prev.InputID), zap.String("digest", prev.Digest))

	signed, err := model.NewSignedTransaction([]byte(prev.SignedTx))
	if err != nil {
		logger.Error("unresolved submission has no usable signed transaction", zap.Error(err))
		return failed, fmt.Errorf("%w: journaled transaction of %s: %w", ErrOutcomeUnknown, prev.IdempotencyKey, err)
	}
	logger.Warn("previous broadcast did not report back, repeating it",
		zap.String("previous_status", string(prev.Status)),
	)

	res, err := s.broadcast(ctx, logger, prev, signed, unresolvedStatusOf)
	if err == nil {
		logger.Info("repeated broadcast accepted", zap.String("txid", res.TxID))
		return res, nil
	}
	if _, reason, _ := txbuilder.StageOf(err); reason == txbuilder.ReasonRejected || reason == txbuilder.ReasonRemoteError {
		return res, fmt.Errorf("%w: node refused the journaled transaction, it may already be on the ledger: %w", ErrOutcomeUnknown, err)
	}
	return res, err
}

// broadcast submits signed and journals the outcome over sub. Once started the
// broadcast is not canceled with ctx, so its outcome is observed whenever the
// node answers within the transport deadline.
func (s *TransferService) broadcast(
	ctx context.Context,
	logger *zap.Logger,
	sub model.Submission,
	signed model.SignedTransaction,
	status func(error) model.SubmissionStatus,
) (model.SubmissionResult, error) {
	ctx = context.WithoutCancel(ctx)

	stageStarted := time.Now()
	res, err := s.builder.SubmitTransaction(ctx, signed)
	s.metrics.ObserveStage(txbuilder.StageSubmitTransaction, err, stageStarted)

	res.InputID = sub.InputID
	res.IdempotencyKey = sub.IdempotencyKey
	if res.TxID != "" {
		sub.TxID = res.TxID
	}
	sub.Status = status(err)
	sub.Detail = ""
	if err != nil {
		sub.Detail = err.Error()
		logger.Warn("submit transaction failed", zap.String("digest", sub.Digest), zap.Error(err))
	}
	sub.RecordedAt = s.now().UTC()
	s.record(ctx, logger, sub)
	return res, err
}

func (s *TransferService) build(logger *zap.Logger, input model.UnspentOutput, outputs []model.TransactionOutput) (model.UnsignedTransaction, error) {
	if s.checkBalance {
		if err := txbuilder.CheckBalance([]model.UnspentOutput{input}, outputs); err != nil {
			return model.UnsignedTransaction{}, err
		}
	}
	tx, err := s.builder.BuildTransaction([]model.TransactionInput{txbuilder.InputFrom(input)}, outputs, s.now())
	if err != nil {
		return model.UnsignedTransaction{}, err
	}
	if total, err := tx.TotalOutputValue(); err == nil {
		logger.Debug("transaction built", amountField("input_value", input.Value), amountField("output_total", total))
	}
	return tx, nil
}

func amountField(key string, v uint64) zap.Field {
	amount, err := safe.Int64(v)
	if err != nil {
		return zap.Uint64(key, v)
	}
	return zap.Stringer(key, btcutil.Amount(amount))
}

func (s *TransferService) record(ctx context.Context, logger *zap.Logger, sub model.Submission) {
	if err := s.journal.Record(ctx, sub); err != nil {
		logger.Error("record submission failed",
			zap.String("status", string(sub.Status)),
			zap.String("txid", sub.TxID),
			zap.Error(err),
		)
	}
}

// statusOf maps a broadcast error onto a journal status. Remote rejections are
// final, everything else leaves the outcome unknown.
func statusOf(err error) model.SubmissionStatus {
	if err == nil {
		return model.SubmissionAccepted
	}
	switch _, reason, _ := txbuilder.StageOf(err); reason {
	case txbuilder.ReasonRejected, txbuilder.ReasonRemoteError:
		return model.SubmissionRejected
	default:
		return model.SubmissionFailed
	}
}

// unresolvedStatusOf keeps a repeated broadcast unresolved unless it is accepted.
func unresolvedStatusOf(err error) model.SubmissionStatus {
	if err == nil {
		return model.SubmissionAccepted
	}
	return model.SubmissionFailed
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeAccepted
	case statusOf(err) == model.SubmissionRejected && !errors.Is(err, ErrOutcomeUnknown):
		return OutcomeRejected
	default:
		return OutcomeFailed
	}
}
