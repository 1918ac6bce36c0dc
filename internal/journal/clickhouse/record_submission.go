package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/txsubmitter/internal/journal"
	"github.com/goodnatureofminers/txsubmitter/internal/model"
)

const recordSubmissionQuery = `
INSERT INTO tx_submissions (
	idempotency_key,
	account,
	input_id,
	txid,
	digest,
	signed_tx,
	status,
	detail,
	recorded_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Record appends s. Later records for the same key replace earlier ones on merge.
func (j *Journal) Record(ctx context.Context, s model.Submission) error {
	start := time.Now()
	var err error
	defer func() {
		j.metrics.Observe("record_submission", err, start)
	}()

	if s.IdempotencyKey == "" {
		err = journal.ErrMissingKey
		return err
	}

	err = j.conn.Exec(ctx, recordSubmissionQuery,
		s.IdempotencyKey,
		s.Account,
		s.InputID,
		s.TxID,
		s.Digest,
		s.SignedTx,
		string(s.Status),
		s.Detail,
		s.RecordedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}
