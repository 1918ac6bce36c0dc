package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/txsubmitter/internal/model"
)

const lookupSubmissionQuery = `
SELECT
	idempotency_key,
	account,
	input_id,
	txid,
	digest,
	signed_tx,
	status,
	detail,
	recorded_at
FROM tx_submissions FINAL
WHERE idempotency_key = ?
ORDER BY recorded_at DESC
LIMIT 1`

// Lookup returns the latest submission recorded under key.
func (j *Journal) Lookup(ctx context.Context, key string) (_ model.Submission, _ bool, err error) {
	start := time.Now()
	defer func() {
		j.metrics.Observe("lookup_submission", err, start)
	}()

	rows, err := j.conn.Query(ctx, lookupSubmissionQuery, key)
	if err != nil {
		return model.Submission{}, false, fmt.Errorf("query submission: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.Submission{}, false, fmt.Errorf("iterate submission: %w", err)
		}
		return model.Submission{}, false, nil
	}

	var (
		s      model.Submission
		status string
	)
	if err = rows.Scan(
		&s.IdempotencyKey,
		&s.Account,
		&s.InputID,
		&s.TxID,
		&s.Digest,
		&s.SignedTx,
		&status,
		&s.Detail,
		&s.RecordedAt,
	); err != nil {
		return model.Submission{}, false, fmt.Errorf("scan submission: %w", err)
	}
	if err = rows.Err(); err != nil {
		return model.Submission{}, false, fmt.Errorf("iterate submission: %w", err)
	}

	s.Status = model.SubmissionStatus(status)
	s.RecordedAt = s.RecordedAt.UTC()
	return s, true, nil
}
