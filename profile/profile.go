package profile

import "github.com/rustyeddy/riskbot/risk"

// Field names a stored default.
type Field string

const (
	FieldCapital     Field = "capital"
	FieldRiskPercent Field = "risk"
	FieldLeverage    Field = "lev"
	FieldFeeBps      Field = "fee"
)

// Profile is a user's stored defaults. Nil fields have never been set.
type Profile struct {
	Capital     *float64 `json:"capital,omitempty" yaml:"capital,omitempty"`
	RiskPercent *float64 `json:"risk_percent,omitempty" yaml:"risk_percent,omitempty"`
	Leverage    *float64 `json:"leverage,omitempty" yaml:"leverage,omitempty"`
	FeeBps      *float64 `json:"fee_bps,omitempty" yaml:"fee_bps,omitempty"`
}

// Clone returns a deep copy so callers never share pointers with the store.
func (p Profile) Clone() Profile {
	return Profile{
		Capital:     clone(p.Capital),
		RiskPercent: clone(p.RiskPercent),
		Leverage:    clone(p.Leverage),
		FeeBps:      clone(p.FeeBps),
	}
}

// Defaults adapts p for request resolution.
func (p Profile) Defaults() risk.Defaults {
	return risk.Defaults{
		Capital:     p.Capital,
		RiskPercent: p.RiskPercent,
		Leverage:    p.Leverage,
		FeeBps:      p.FeeBps,
	}
}

// RiskAmount is capital * risk% / 100, the cash put at risk on one trade.
// It is nil until both capital and risk percent are set.
func (p Profile) RiskAmount() *float64 {
	if p.Capital == nil || p.RiskPercent == nil {
		return nil
	}
	v := *p.Capital * (*p.RiskPercent / 100)
	return &v
}

// Empty reports whether no field has been set.
func (p Profile) Empty() bool {
	return p.Capital == nil && p.RiskPercent == nil && p.Leverage == nil && p.FeeBps == nil
}

func (p *Profile) set(f Field, v float64) {
	switch f {
	case FieldCapital:
		p.Capital = &v
	case FieldRiskPercent:
		p.RiskPercent = &v
	case FieldLeverage:
		p.Leverage = &v
	case FieldFeeBps:
		p.FeeBps = &v
	}
}

func clone(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
