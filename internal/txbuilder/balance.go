package txbuilder

import (
	"fmt"

	"github.com/goodnatureofminers/txsubmitter/internal/model"
)

// CheckBalance fails with ErrInsufficientInputValue when outputs pay more than
// the spent outputs hold.
func CheckBalance(spent []model.UnspentOutput, outputs []model.TransactionOutput) error {
	var in uint64
	for _, u := range spent {
		next := in + u.Value
		if next < in {
			return invalid(StageBuildTransaction, ErrInvalidTransaction, fmt.Errorf("input %q: value overflow", u.ID))
		}
		in = next
	}
	out, err := model.SumOutputs(outputs)
	if err != nil {
		return invalid(StageBuildTransaction, ErrInvalidTransaction, err)
	}
	if out > in {
		return invalid(StageBuildTransaction, ErrInsufficientInputValue, fmt.Errorf("outputs total %d, inputs total %d", out, in))
	}
	return nil
}
