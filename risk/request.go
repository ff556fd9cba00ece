package risk

import (
	"fmt"
	"strings"
)

// Side is the declared trade direction.
type Side string

const (
	SideNone  Side = ""
	SideLong  Side = "long"
	SideShort Side = "short"
)

// ParseSide accepts "long", "short" or "" in any case.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToLower(strings.TrimSpace(s))) {
	case SideNone:
		return SideNone, nil
	case SideLong:
		return SideLong, nil
	case SideShort:
		return SideShort, nil
	}
	return SideNone, constraint(KeySide, fmt.Sprintf("%q is not long or short", s))
}

// Consistent reports whether the stop and target sit on the correct side of
// entry for s. A nil tp skips the target leg. SideNone is always consistent.
func (s Side) Consistent(entry, sl float64, tp *float64) bool {
	switch s {
	case SideLong:
		return sl < entry && (tp == nil || *tp > entry)
	case SideShort:
		return sl > entry && (tp == nil || *tp < entry)
	}
	return true
}

// Defaults are stored per-user values used when a request omits a field.
type Defaults struct {
	Capital     *float64
	RiskPercent *float64
	Leverage    *float64
	FeeBps      *float64
}

// Request is a parsed and validated calculation request. Nil fields were not
// supplied.
type Request struct {
	Capital     *float64
	RiskPercent *float64 // percent, 1 means 1%
	SL          *float64 // distance for Calc, price for CalcPrice and RewardRisk
	Entry       *float64
	TP          *float64
	Leverage    *float64
	FeeBps      *float64 // one-way fee in basis points
	Side        Side
}

// NewRequest converts parsed arguments into a Request. Numbers are normalized
// here; capital, leverage and fee are range-checked by the sizing path, so rr
// ignores them like any other key it does not read.
func NewRequest(params map[string]string) (Request, error) {
	var (
		req Request
		err error
	)

	fields := []struct {
		key string
		dst **float64
	}{
		{KeyCapital, &req.Capital},
		{KeyRisk, &req.RiskPercent},
		{KeySL, &req.SL},
		{KeyEntry, &req.Entry},
		{KeyTP, &req.TP},
		{KeyLev, &req.Leverage},
		{KeyFee, &req.FeeBps},
	}
	for _, f := range fields {
		raw, ok := params[f.key]
		if !ok {
			continue
		}
		v, err := ParseNumber(raw)
		if err != nil {
			return Request{}, &FieldError{Field: f.key, Err: err}
		}
		*f.dst = &v
	}

	if req.Side, err = ParseSide(params[KeySide]); err != nil {
		return Request{}, err
	}

	return req, nil
}

// CheckLeverage fails when lev is set and not strictly positive.
func CheckLeverage(lev *float64) error {
	if lev != nil && *lev <= 0 {
		return constraint(KeyLev, "must be > 0")
	}
	return nil
}

// CheckFee fails when fee is set and negative.
func CheckFee(fee *float64) error {
	if fee != nil && *fee < 0 {
		return constraint(KeyFee, "must be >= 0")
	}
	return nil
}

// CheckCapital fails when capital is negative.
func CheckCapital(capital float64) error {
	if capital < 0 {
		return constraint(KeyCapital, "must be >= 0")
	}
	return nil
}

// WithDefaults fills the fields the request left empty from d. Explicit
// values always win.
func (r Request) WithDefaults(d Defaults) Request {
	if r.Capital == nil {
		r.Capital = d.Capital
	}
	if r.RiskPercent == nil {
		r.RiskPercent = d.RiskPercent
	}
	if r.Leverage == nil {
		r.Leverage = d.Leverage
	}
	if r.FeeBps == nil {
		r.FeeBps = d.FeeBps
	}
	return r
}

func need(key string, v *float64) (float64, error) {
	if v == nil {
		return 0, missing(key)
	}
	return *v, nil
}
