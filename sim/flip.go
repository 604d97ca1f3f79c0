package sim

// FlipConfig drives the FlipX5 comparison between flat and compounded sizing.
type FlipConfig struct {
	AccountSize  float64 `json:"account_size" yaml:"account_size"`
	CycleSize    int     `json:"cycle_size" yaml:"cycle_size"`
	RiskPerCycle float64 `json:"risk_per_cycle" yaml:"risk_per_cycle"`
	// RiskIsPercent reads RiskPerCycle as a percentage of AccountSize.
	RiskIsPercent   bool    `json:"risk_is_percent,omitempty" yaml:"risk_is_percent,omitempty"`
	RRRatio         float64 `json:"rr_ratio" yaml:"rr_ratio"`
	ReinvestPercent float64 `json:"reinvest_percent" yaml:"reinvest_percent"`
}

func DefaultFlipConfig() FlipConfig {
	return FlipConfig{
		AccountSize:     1000,
		CycleSize:       2,
		RiskPerCycle:    200,
		RRRatio:         2,
		ReinvestPercent: 80,
	}
}

func (c FlipConfig) Validate() error {
	if c.AccountSize <= 0 {
		return invalid("account size must be positive")
	}
	if c.CycleSize <= 0 {
		return invalid("cycle size must be positive")
	}
	if c.RiskPerCycle <= 0 {
		return invalid("risk per cycle must be positive")
	}
	if c.RiskIsPercent && c.RiskPerCycle > 100 {
		return invalid("risk per cycle must be at most 100%%")
	}
	if c.RRRatio <= 0 {
		return invalid("rr ratio must be positive")
	}
	if c.ReinvestPercent < 0 || c.ReinvestPercent > 100 {
		return invalid("reinvest percent must be between 0 and 100")
	}
	return nil
}

// CycleRisk is the configured risk per cycle in currency.
func (c FlipConfig) CycleRisk() float64 {
	if c.RiskIsPercent {
		return c.AccountSize * c.RiskPerCycle / 100
	}
	return c.RiskPerCycle
}

// FlipRow is one replayed trade with both sizing strategies side by side.
type FlipRow struct {
	Trade   int // 1-based
	Cycle   int // 1-based
	Outcome Outcome

	TradRisk    float64
	TradPnL     float64
	TradBalance float64

	LevRisk    float64
	LevPnL     float64
	LevBalance float64
	Boosted    bool // leveraged risk includes reinvested profit
}

type StrategySummary struct {
	FinalBalance float64
	TotalProfit  float64
	ROI          float64 // percent of AccountSize
}

type FlipResult struct {
	Config FlipConfig
	Rows   []FlipRow

	Traditional StrategySummary
	Leveraged   StrategySummary

	TotalTP int
	TotalSL int
	WinRate float64
}

// SimulateFlip replays outcomes in cycles of CycleSize trades.
//
// The traditional balance risks CycleRisk/CycleSize on every trade. The
// leveraged balance does the same, except that when the previous cycle made
// a strictly positive profit, ReinvestPercent of that profit is added to the
// cycle risk before splitting it across the cycle's trades. A losing or flat
// cycle resets sizing to the base; reinvestment is never negative.
func SimulateFlip(cfg FlipConfig, outcomes []Outcome) (FlipResult, error) {
	if err := cfg.Validate(); err != nil {
		return FlipResult{}, err
	}

	cycleRisk := cfg.CycleRisk()
	n := float64(cfg.CycleSize)
	base := cycleRisk / n

	res := FlipResult{
		Config: cfg,
		Rows:   make([]FlipRow, 0, len(outcomes)),
	}

	trad, lev := cfg.AccountSize, cfg.AccountSize
	var prevProfit, cycleProfit float64
	levRisk, boosted := base, false

	for i, o := range outcomes {
		cycle := i/cfg.CycleSize + 1
		if i%cfg.CycleSize == 0 && cycle > 1 {
			prevProfit, cycleProfit = cycleProfit, 0
			levRisk, boosted = base, false
			if prevProfit > 0 {
				levRisk = (cycleRisk + prevProfit*cfg.ReinvestPercent/100) / n
				boosted = true
			}
		}

		tradPnL := pnl(o, base, cfg.RRRatio)
		levPnL := pnl(o, levRisk, cfg.RRRatio)
		trad += tradPnL
		lev += levPnL
		cycleProfit += levPnL

		if o.Win() {
			res.TotalTP++
		} else {
			res.TotalSL++
		}

		res.Rows = append(res.Rows, FlipRow{
			Trade:       i + 1,
			Cycle:       cycle,
			Outcome:     o,
			TradRisk:    base,
			TradPnL:     tradPnL,
			TradBalance: trad,
			LevRisk:     levRisk,
			LevPnL:      levPnL,
			LevBalance:  lev,
			Boosted:     boosted,
		})
	}

	res.Traditional = summarize(cfg.AccountSize, trad)
	res.Leveraged = summarize(cfg.AccountSize, lev)
	res.WinRate = winRate(res.TotalTP, len(outcomes))
	return res, nil
}

func pnl(o Outcome, risk, rr float64) float64 {
	if o.Win() {
		return risk * rr
	}
	return -risk
}

func summarize(start, final float64) StrategySummary {
	profit := final - start
	return StrategySummary{
		FinalBalance: final,
		TotalProfit:  profit,
		ROI:          profit / start * 100,
	}
}
