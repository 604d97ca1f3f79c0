package sim

import (
	"slices"
)

// RotationConfig spreads consecutive trades over several accounts in turn.
type RotationConfig struct {
	NumberOfAccounts int       `json:"number_of_accounts" yaml:"number_of_accounts"`
	InitialBalances  []float64 `json:"initial_balances" yaml:"initial_balances"`
	RiskPerTrade     float64   `json:"risk_per_trade" yaml:"risk_per_trade"`
	RiskRewardRatio  float64   `json:"risk_reward_ratio" yaml:"risk_reward_ratio"`
}

func DefaultRotationConfig() RotationConfig {
	return RotationConfig{
		NumberOfAccounts: 3,
		InitialBalances:  []float64{100, 100, 100},
		RiskPerTrade:     10,
		RiskRewardRatio:  1,
	}
}

func (c RotationConfig) Validate() error {
	if c.NumberOfAccounts < 2 {
		return invalid("need at least 2 accounts, got %d", c.NumberOfAccounts)
	}
	if len(c.InitialBalances) != c.NumberOfAccounts {
		return invalid("%d initial balances for %d accounts", len(c.InitialBalances), c.NumberOfAccounts)
	}
	for i, b := range c.InitialBalances {
		if b < 0 {
			return invalid("account %d initial balance is negative", i)
		}
	}
	if c.RiskPerTrade <= 0 {
		return invalid("risk per trade must be positive")
	}
	if c.RiskRewardRatio <= 0 {
		return invalid("risk reward ratio must be positive")
	}
	return nil
}

// RotationTrade is one ledger entry. Entries are never modified.
type RotationTrade struct {
	Seq           int // 1-based
	Account       int // 0-based
	Outcome       Outcome
	Risk          float64
	PnL           float64
	BalanceBefore float64
	BalanceAfter  float64
}

// RotationState is an immutable snapshot. Apply, Undo and ApplyBatch return
// new states and leave the receiver untouched, so callers can keep old
// states around freely. The ledger doubles as the undo stack.
type RotationState struct {
	Config   RotationConfig
	Accounts []float64
	Turn     int
	Trades   []RotationTrade

	TotalTP      int
	TotalSL      int
	WinRate      float64
	TotalBalance float64
}

// NewRotation returns the starting state: balances copied from the config,
// turn 0 and an empty ledger.
func NewRotation(cfg RotationConfig) (RotationState, error) {
	if err := cfg.Validate(); err != nil {
		return RotationState{}, err
	}
	cfg.InitialBalances = slices.Clone(cfg.InitialBalances)

	s := RotationState{
		Config:   cfg,
		Accounts: slices.Clone(cfg.InitialBalances),
		Trades:   []RotationTrade{},
	}
	s.recount()
	return s, nil
}

// Apply books o on the account whose turn it is and passes the turn on.
// Balances do not affect the rotation; an account below zero still trades.
func (s RotationState) Apply(o Outcome) RotationState {
	acct := s.Turn
	before := s.Accounts[acct]
	p := pnl(o, s.Config.RiskPerTrade, s.Config.RiskRewardRatio)

	next := s
	next.Accounts = slices.Clone(s.Accounts)
	next.Accounts[acct] = before + p
	next.Turn = (acct + 1) % len(s.Accounts)
	// Clip forces append to copy, so states never share a writable tail.
	next.Trades = append(slices.Clip(s.Trades), RotationTrade{
		Seq:           len(s.Trades) + 1,
		Account:       acct,
		Outcome:       o,
		Risk:          s.Config.RiskPerTrade,
		PnL:           p,
		BalanceBefore: before,
		BalanceAfter:  before + p,
	})
	next.recount()
	return next
}

// Undo removes the latest ledger entry, restores that account's balance and
// gives it the turn again. With an empty ledger it returns s unchanged.
func (s RotationState) Undo() RotationState {
	if len(s.Trades) == 0 {
		return s
	}
	last := s.Trades[len(s.Trades)-1]

	prev := s
	prev.Accounts = slices.Clone(s.Accounts)
	prev.Accounts[last.Account] = last.BalanceBefore
	prev.Turn = last.Account
	prev.Trades = slices.Clip(s.Trades[:len(s.Trades)-1])
	prev.recount()
	return prev
}

// ApplyBatch folds Apply over outcomes in order.
func (s RotationState) ApplyBatch(outcomes []Outcome) RotationState {
	for _, o := range outcomes {
		s = s.Apply(o)
	}
	return s
}

// recount derives the aggregates from the ledger and balances.
func (s *RotationState) recount() {
	s.TotalTP, s.TotalSL = 0, 0
	for _, t := range s.Trades {
		if t.Outcome.Win() {
			s.TotalTP++
		} else {
			s.TotalSL++
		}
	}
	s.WinRate = winRate(s.TotalTP, len(s.Trades))

	s.TotalBalance = 0
	for _, b := range s.Accounts {
		s.TotalBalance += b
	}
}

// AccountStats summarises the ledger for one account.
type AccountStats struct {
	Account int
	Initial float64
	Balance float64
	Trades  int
	TP      int
	SL      int
	PnL     float64
}

func (s RotationState) AccountStats() []AccountStats {
	out := make([]AccountStats, len(s.Accounts))
	for i := range out {
		out[i] = AccountStats{
			Account: i,
			Initial: s.Config.InitialBalances[i],
			Balance: s.Accounts[i],
		}
	}
	for _, t := range s.Trades {
		st := &out[t.Account]
		st.Trades++
		st.PnL += t.PnL
		if t.Outcome.Win() {
			st.TP++
		} else {
			st.SL++
		}
	}
	return out
}
