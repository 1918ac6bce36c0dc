package service

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/txsubmitter/internal/model"
	"github.com/goodnatureofminers/txsubmitter/pkg/workerpool"
)

// ErrSkipped marks batch transfers that never ran because the batch stopped early.
var ErrSkipped = errors.New("transfer skipped")

// BatchResult is the outcome of one transfer of a batch.
type BatchResult struct {
	Transfer model.Transfer
	Result   model.SubmissionResult
	Err      error
}

// TransferBatch runs transfers grouped by account. Transfers of one account run
// in input order because they compete for the same outputs; different accounts
// run concurrently. Results are returned in input order together with the
// joined errors.
func (s *TransferService) TransferBatch(ctx context.Context, transfers []model.Transfer) ([]BatchResult, error) {
	results := make([]BatchResult, len(transfers))
	for i, t := range transfers {
		results[i] = BatchResult{Transfer: t, Err: ErrSkipped}
	}

	groups := groupByAccount(transfers)
	s.logger.Info("running transfer batch",
		zap.Int("transfers", len(transfers)),
		zap.Int("accounts", len(groups)),
		zap.Int("workers", s.workers),
		zap.Bool("fail_fast", s.failFast),
	)

	// A failure under fail fast stops new transfers in every group. Transfers
	// already running are left alone so no started broadcast is cut short.
	var stopped atomic.Bool
	err := workerpool.Process(ctx, s.workers, groups, s.failFast, func(ctx context.Context, idxs []int) error {
		var errs []error
		for _, i := range idxs {
			if err := ctx.Err(); err != nil {
				return errors.Join(append(errs, err)...)
			}
			if stopped.Load() {
				break
			}
			res, err := s.Transfer(ctx, transfers[i])
			results[i].Result = res
			results[i].Err = err
			if err != nil {
				errs = append(errs, err)
				if s.failFast {
					stopped.Store(true)
					break
				}
			}
		}
		return errors.Join(errs...)
	})
	return results, err
}

func groupByAccount(transfers []model.Transfer) [][]int {
	pos := make(map[string]int)
	var groups [][]int
	for i, t := range transfers {
		g, ok := pos[t.Account]
		if !ok {
			g = len(groups)
			pos[t.Account] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}
