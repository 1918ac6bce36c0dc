package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/goodnatureofminers/txsubmitter/internal/model"
	"github.com/goodnatureofminers/txsubmitter/internal/service"
	"github.com/goodnatureofminers/txsubmitter/internal/txbuilder"
	"github.com/goodnatureofminers/txsubmitter/pkg/safe"
)

func loadTransfers(cfg config) ([]model.Transfer, error) {
	if cfg.BatchFile != "" {
		if cfg.Recipient != "" {
			return nil, errors.New("--batch-file and --recipient are mutually exclusive")
		}
		return readBatchFile(cfg.BatchFile)
	}

	if cfg.Account == "" || cfg.Recipient == "" {
		return nil, errors.New("--account and --recipient are required without --batch-file")
	}
	if cfg.Nonce == 0 {
		return nil, errors.New("--nonce is required for a single transfer")
	}
	value, err := parseAmount(cfg.Amount)
	if err != nil {
		return nil, err
	}
	out, err := txbuilder.RecipientOutput(value, cfg.Nonce, cfg.Recipient)
	if err != nil {
		return nil, err
	}
	return []model.Transfer{{Account: cfg.Account, Outputs: []model.TransactionOutput{out}}}, nil
}

func parseAmount(coins float64) (uint64, error) {
	amount, err := btcutil.NewAmount(coins)
	if err != nil {
		return 0, fmt.Errorf("parse amount: %w", err)
	}
	value, err := safe.Uint64(amount)
	if err != nil {
		return 0, fmt.Errorf("parse amount: %w", err)
	}
	if value == 0 {
		return 0, errors.New("--amount must be positive")
	}
	return value, nil
}

func readBatchFile(path string) ([]model.Transfer, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}
	var transfers []model.Transfer
	if err := json.Unmarshal(payload, &transfers); err != nil {
		return nil, fmt.Errorf("decode batch file %s: %w", path, err)
	}
	if len(transfers) == 0 {
		return nil, fmt.Errorf("batch file %s has no transfers", path)
	}
	for i, t := range transfers {
		if t.Account == "" {
			return nil, fmt.Errorf("batch transfer %d has no account", i)
		}
		if len(t.Outputs) == 0 {
			return nil, fmt.Errorf("batch transfer %d has no outputs", i)
		}
	}
	return transfers, nil
}

type batchLine struct {
	Account string                  `json:"account"`
	Result  *model.SubmissionResult `json:"result,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

func reportOf(results []service.BatchResult) []batchLine {
	lines := make([]batchLine, 0, len(results))
	for _, r := range results {
		line := batchLine{Account: r.Transfer.Account}
		if r.Err != nil {
			line.Error = r.Err.Error()
		} else {
			res := r.Result
			line.Result = &res
		}
		lines = append(lines, line)
	}
	return lines
}
