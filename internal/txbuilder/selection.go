package txbuilder

import (
	"fmt"

	"github.com/goodnatureofminers/txsubmitter/internal/model"
)

// Selection is the policy used to pick one spendable output.
type Selection string

const (
	// FirstAvailable picks the first output in node order.
	FirstAvailable Selection = "first"
	// LastListed picks the last output in node order.
	LastListed Selection = "last"
	// LargestValue picks the output with the highest value, the earliest one on ties.
	LargestValue Selection = "largest"
)

// ParseSelection maps a configuration value onto a Selection.
func ParseSelection(s string) (Selection, error) {
	switch sel := Selection(s); sel {
	case FirstAvailable, LastListed, LargestValue:
		return sel, nil
	case "":
		return FirstAvailable, nil
	default:
		return "", fmt.Errorf("%w: unknown selection policy %q", ErrInvalidArgument, s)
	}
}

// pick returns the index of the chosen output. outputs must not be empty.
func (s Selection) pick(outputs []model.UnspentOutput) int {
	switch s {
	case LastListed:
		return len(outputs) - 1
	case LargestValue:
		best := 0
		for i := 1; i < len(outputs); i++ {
			if outputs[i].Value > outputs[best].Value {
				best = i
			}
		}
		return best
	default:
		return 0
	}
}
