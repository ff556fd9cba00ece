package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/rustyeddy/riskbot/engine"
	"github.com/rustyeddy/riskbot/risk"
)

func money(v float64) string { return fmt.Sprintf("%.2f", v) }
func units(v float64) string { return fmt.Sprintf("%.4f", v) }
func price(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

type rows [][]string

func (r *rows) add(k, v string) { *r = append(*r, []string{k, v}) }

func (r *rows) opt(k string, v *float64, format func(float64) string) {
	if v != nil {
		r.add(k, format(*v))
	}
}

func table(w io.Writer, title string, r rows) error {
	fmt.Fprintln(w, title)
	t := tablewriter.NewTable(w, tablewriter.WithHeader([]string{"Metric", "Value"}))
	for _, row := range r {
		if err := t.Append(row); err != nil {
			return err
		}
	}
	return t.Render()
}

func sideLine(s risk.Side, ok *bool) string {
	if ok == nil {
		return ""
	}
	if *ok {
		return string(s) + " (consistent)"
	}
	return string(s) + " (INCONSISTENT)"
}

func renderOutcome(w io.Writer, out engine.Outcome) error {
	if out.Ratio != nil {
		return renderRatio(w, out.Ratio)
	}

	res := out.Result
	title := "Position size from stop distance"
	if out.Command == engine.CmdCalcPrice {
		title = "Position size from prices"
	}

	var r rows
	r.add("Capital", money(res.Capital))
	r.opt("Entry", res.Entry, price)
	r.opt("Stop-loss", res.SLPrice, price)
	r.add("SL distance", price(res.SLDistance))
	r.add("Risk", fmt.Sprintf("%s%% (%s)", money(res.RiskPercent), money(res.RiskAmount)))
	r.add("Max position size", units(res.PositionSize)+" units")
	r.opt("Notional", res.Notional, money)
	r.opt("Leverage", res.Leverage, price)
	r.opt("Margin", res.Margin, money)
	r.opt("Fees (round trip)", res.Fees, money)
	r.add("Loss at SL", money(res.StopLoss))
	r.opt("Loss at SL, net of fees", res.StopLossNet, money)
	r.opt("Take-profit", res.TP, price)
	r.opt("TP distance", res.TPDistance, price)
	r.opt("Reward:risk", res.RewardRisk, money)
	r.opt("Gain at TP", res.GainGross, money)
	r.opt("Gain at TP, net of fees", res.GainNet, money)
	if s := sideLine(res.Side, res.SideConsistent); s != "" {
		r.add("Side", s)
	}

	return table(w, title, r)
}

func renderRatio(w io.Writer, rr *risk.Ratio) error {
	var r rows
	r.add("Entry", price(rr.Entry))
	r.add("Stop-loss", fmt.Sprintf("%s (dist %s)", price(rr.SLPrice), price(rr.SLDistance)))
	r.add("Take-profit", fmt.Sprintf("%s (dist %s)", price(rr.TP), price(rr.TPDistance)))
	r.add("Reward:risk", money(rr.RewardRisk))
	if s := sideLine(rr.Side, rr.SideConsistent); s != "" {
		r.add("Side", s)
	}
	return table(w, "Reward:risk", r)
}

func renderSnapshot(w io.Writer, c engine.Command, snap engine.Snapshot) error {
	unset := func(v *float64, format func(float64) string) string {
		if v == nil {
			return "not set"
		}
		return format(*v)
	}

	p := snap.Profile
	var r rows
	r.add("Capital", unset(p.Capital, money))
	r.opt("Previous capital", snap.Previous, money)
	r.opt("Change", snap.Delta, money)
	r.add("Risk %", unset(p.RiskPercent, money))
	r.opt("Risk per trade", snap.RiskAmount, money)
	r.add("Leverage", unset(p.Leverage, price))
	r.add("Fee (bps, one way)", unset(p.FeeBps, price))

	title := "Profile of " + snap.UserID
	if c != engine.CmdProfile {
		title = "Saved (" + string(c) + ") for " + snap.UserID
	}
	return table(w, title, r)
}
