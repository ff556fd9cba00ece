package risk

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// sizing resolves capital and risk and range-checks the inputs that feed the
// position size.
func sizing(req Request) (capital, riskPct float64, err error) {
	if capital, err = need(KeyCapital, req.Capital); err != nil {
		return 0, 0, err
	}
	if err = CheckCapital(capital); err != nil {
		return 0, 0, err
	}
	if err = CheckLeverage(req.Leverage); err != nil {
		return 0, 0, err
	}
	if err = CheckFee(req.FeeBps); err != nil {
		return 0, 0, err
	}
	if riskPct, err = need(KeyRisk, req.RiskPercent); err != nil {
		return 0, 0, err
	}
	return capital, riskPct, nil
}

// Calc sizes a position from a stop-loss distance. Entry is optional; without
// it no notional, margin, fee or take-profit figures are produced.
func Calc(req Request) (*Result, error) {
	capital, riskPct, err := sizing(req)
	if err != nil {
		return nil, err
	}
	dist, err := need(KeySL, req.SL)
	if err != nil {
		return nil, err
	}

	res, err := Size(Inputs{
		Capital:      capital,
		RiskPercent:  riskPct,
		StopDistance: dist,
		Entry:        req.Entry,
		Leverage:     req.Leverage,
		FeeBps:       req.FeeBps,
	})
	if err != nil {
		return nil, err
	}
	res.Side = req.Side

	if req.Entry != nil && req.TP != nil {
		res.applyTarget(*req.TP)
	}
	return &res, nil
}

// CalcPrice sizes a position from entry and stop prices. The stop distance is
// |entry - sl|.
func CalcPrice(req Request) (*Result, error) {
	capital, riskPct, err := sizing(req)
	if err != nil {
		return nil, err
	}
	entry, err := need(KeyEntry, req.Entry)
	if err != nil {
		return nil, err
	}
	slPrice, err := need(KeySL, req.SL)
	if err != nil {
		return nil, err
	}

	res, err := Size(Inputs{
		Capital:      capital,
		RiskPercent:  riskPct,
		StopDistance: abs(entry - slPrice),
		Entry:        &entry,
		Leverage:     req.Leverage,
		FeeBps:       req.FeeBps,
	})
	if err != nil {
		return nil, err
	}
	res.SLPrice = &slPrice
	res.Side = req.Side

	if req.TP != nil {
		res.applyTarget(*req.TP)
	}
	if req.Side != SideNone {
		ok := req.Side.Consistent(entry, slPrice, req.TP)
		res.SideConsistent = &ok
	}
	return &res, nil
}

// Ratio is the outcome of a reward:risk check.
type Ratio struct {
	Entry      float64
	SLPrice    float64
	TP         float64
	SLDistance float64
	TPDistance float64
	RewardRisk float64

	Side           Side
	SideConsistent *bool // nil unless a side was declared
}

// RR returns |tp-entry| / |entry-stop|, or 0 when the stop equals entry.
func RR(entry, stop, takeProfit float64) float64 {
	risk := abs(entry - stop)
	reward := abs(takeProfit - entry)
	if risk == 0 {
		return 0
	}
	return reward / risk
}

// RewardRisk measures the distances from entry to stop and target and checks
// them against the declared side. An inconsistent side is reported, not
// returned as an error.
func RewardRisk(req Request) (*Ratio, error) {
	entry, err := need(KeyEntry, req.Entry)
	if err != nil {
		return nil, err
	}
	slPrice, err := need(KeySL, req.SL)
	if err != nil {
		return nil, err
	}
	tp, err := need(KeyTP, req.TP)
	if err != nil {
		return nil, err
	}

	slDist := abs(entry - slPrice)
	if slDist <= 0 {
		return nil, &FieldError{Field: KeySL, Err: ErrInvalidDistance}
	}

	r := &Ratio{
		Entry:      entry,
		SLPrice:    slPrice,
		TP:         tp,
		SLDistance: slDist,
		TPDistance: abs(tp - entry),
		RewardRisk: RR(entry, slPrice, tp),
		Side:       req.Side,
	}
	if req.Side != SideNone {
		ok := req.Side.Consistent(entry, slPrice, &tp)
		r.SideConsistent = &ok
	}
	return r, nil
}
