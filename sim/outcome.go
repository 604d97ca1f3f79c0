// Package sim replays sequences of take-profit / stop-loss outcomes through
// position sizing rules. Everything here is a pure function of its inputs.
package sim

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidConfig = errors.New("invalid simulation config")

type Outcome int

const (
	TakeProfit Outcome = iota + 1
	StopLoss
)

func (o Outcome) String() string {
	switch o {
	case TakeProfit:
		return "TP"
	case StopLoss:
		return "SL"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

func (o Outcome) Win() bool { return o == TakeProfit }

// ParseOutcome accepts TP/SL and WIN/LOSS in any case.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TP", "WIN", "W":
		return TakeProfit, nil
	case "SL", "LOSS", "L":
		return StopLoss, nil
	}
	return 0, fmt.Errorf("unknown outcome %q", s)
}

// ParseOutcomes splits on commas and whitespace.
func ParseOutcomes(s string) ([]Outcome, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make([]Outcome, 0, len(fields))
	for _, f := range fields {
		o, err := ParseOutcome(f)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func winRate(tp, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(tp) / float64(total) * 100
}
