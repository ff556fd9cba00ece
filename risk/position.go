package risk

// Inputs are the resolved values needed to size a position.
type Inputs struct {
	Capital      float64
	RiskPercent  float64 // 1 means 1% of capital
	StopDistance float64 // price distance between entry and stop, > 0

	Entry    *float64
	Leverage *float64
	FeeBps   *float64 // one-way, charged on both legs
}

// Result holds every metric that could be derived from the inputs. Pointer
// fields are nil when their prerequisites were not supplied.
type Result struct {
	Capital      float64
	RiskPercent  float64
	RiskAmount   float64
	SLDistance   float64
	PositionSize float64

	// StopLoss is the gross loss if the stop is hit. It always equals
	// RiskAmount. StopLossNet adds fees when they are known.
	StopLoss    float64
	StopLossNet *float64

	Entry    *float64
	SLPrice  *float64
	TP       *float64
	Leverage *float64
	FeeBps   *float64

	Notional *float64
	Margin   *float64
	Fees     *float64

	TPDistance *float64
	RewardRisk *float64
	GainGross  *float64
	GainNet    *float64

	Side           Side
	SideConsistent *bool // nil unless a side was declared
}

// Size computes risk amount, position size and, when entry is known, the
// notional with the margin and round-trip fees that follow from it.
func Size(in Inputs) (Result, error) {
	if in.StopDistance <= 0 {
		return Result{}, &FieldError{Field: KeySL, Err: ErrInvalidDistance}
	}

	riskAmt := in.Capital * (in.RiskPercent / 100)
	res := Result{
		Capital:      in.Capital,
		RiskPercent:  in.RiskPercent,
		RiskAmount:   riskAmt,
		SLDistance:   in.StopDistance,
		PositionSize: riskAmt / in.StopDistance,
		StopLoss:     riskAmt,
		Entry:        in.Entry,
		Leverage:     in.Leverage,
		FeeBps:       in.FeeBps,
	}

	if in.Entry == nil {
		return res, nil
	}

	notional := res.PositionSize * *in.Entry
	res.Notional = &notional

	if in.Leverage != nil {
		margin := notional / *in.Leverage
		res.Margin = &margin
	}
	if in.FeeBps != nil {
		fees := RoundTripFees(notional, *in.FeeBps)
		res.Fees = &fees
		lossNet := riskAmt + fees
		res.StopLossNet = &lossNet
	}

	return res, nil
}

// RoundTripFees charges feeBps on the notional twice, once to open and once
// to close.
func RoundTripFees(notional, feeBps float64) float64 {
	return notional * (feeBps / 10000) * 2
}

// applyTarget fills the take-profit metrics. delta is tp-entry, inverted for
// shorts so a winning short reports a positive gain.
func (r *Result) applyTarget(tp float64) {
	entry := *r.Entry
	r.TP = &tp

	tpDist := abs(tp - entry)
	r.TPDistance = &tpDist
	rr := tpDist / r.SLDistance
	r.RewardRisk = &rr

	delta := tp - entry
	if r.Side == SideShort {
		delta = -delta
	}
	gain := r.PositionSize * delta
	r.GainGross = &gain
	if r.Fees != nil {
		net := gain - *r.Fees
		r.GainNet = &net
	}
}
