// Package engine is the boundary between a transport (CLI, chat bot) and the
// risk calculations. It resolves user defaults, runs the calculation or
// profile change, and records what happened.
package engine

import (
	"strings"
	"time"

	"github.com/rustyeddy/riskbot/journal"
	"github.com/rustyeddy/riskbot/logging"
	"github.com/rustyeddy/riskbot/metrics"
	"github.com/rustyeddy/riskbot/pkg/id"
	"github.com/rustyeddy/riskbot/profile"
	"github.com/rustyeddy/riskbot/risk"
	"go.uber.org/zap"
)

// Outcome is the result of a compute command. Exactly one of Result and
// Ratio is set.
type Outcome struct {
	Command Command
	Result  *risk.Result // calc, calcprice
	Ratio   *risk.Ratio  // rr
}

// Snapshot is a user's profile as shown back to them.
type Snapshot struct {
	UserID  string
	Profile profile.Profile

	// RiskAmount is capital * risk% / 100 when both are set.
	RiskAmount *float64

	// Previous and Delta describe the capital change made by updatecapital
	// and pnl. Delta is the applied change after clamping at zero.
	Previous *float64
	Delta    *float64
}

func snapshot(userID string, p profile.Profile) Snapshot {
	return Snapshot{UserID: userID, Profile: p, RiskAmount: p.RiskAmount()}
}

type Engine struct {
	store   profile.Store
	journal journal.Journal
	log     *zap.Logger
	metrics *metrics.Metrics
	ids     *id.Generator
	now     func() time.Time
}

type Option func(*Engine)

func WithJournal(j journal.Journal) Option  { return func(e *Engine) { e.journal = j } }
func WithLogger(l *zap.Logger) Option       { return func(e *Engine) { e.log = l } }
func WithMetrics(m *metrics.Metrics) Option { return func(e *Engine) { e.metrics = m } }
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// New returns an engine over store. Without options nothing is journaled,
// logged or measured.
func New(store profile.Store, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		journal: journal.Nop{},
		log:     zap.NewNop(),
		ids:     id.NewGenerator(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute runs calc, calcprice or rr for userID. Stored defaults fill in
// capital, risk, leverage and fee when the tokens omit them.
func (e *Engine) Compute(cmd Command, tokens []string, userID string) (Outcome, error) {
	out, err := e.compute(cmd, tokens, userID)

	ent := journal.Entry{}
	if err == nil {
		switch {
		case out.Result != nil:
			r := out.Result
			ent.Capital, ent.PositionSize = &r.Capital, &r.PositionSize
			ent.Notional, ent.RewardRisk = r.Notional, r.RewardRisk
			e.metrics.Size(r.PositionSize, r.RewardRisk)
		case out.Ratio != nil:
			ent.RewardRisk = &out.Ratio.RewardRisk
			e.metrics.Ratio(out.Ratio.RewardRisk)
		}
	}

	if err = e.finish(cmd, tokens, userID, ent, err); err != nil {
		return Outcome{}, err
	}
	return out, nil
}

func (e *Engine) compute(cmd Command, tokens []string, userID string) (Outcome, error) {
	if !cmd.IsCompute() {
		return Outcome{}, ErrUnknownCommand
	}

	req, err := risk.NewRequest(risk.ParseArgs(tokens))
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Command: cmd}
	switch cmd {
	case CmdCalc:
		out.Result, err = risk.Calc(req.WithDefaults(e.store.Get(userID).Defaults()))
	case CmdCalcPrice:
		out.Result, err = risk.CalcPrice(req.WithDefaults(e.store.Get(userID).Defaults()))
	case CmdRR:
		out.Ratio, err = risk.RewardRisk(req)
	}
	if err != nil {
		return Outcome{}, err
	}
	return out, nil
}

// Mutate applies one of the profile commands. The value is the first token,
// either bare ("1000") or as key=value ("capital=1000"). A rejected value
// leaves the stored profile untouched.
func (e *Engine) Mutate(cmd Command, tokens []string, userID string) (Snapshot, error) {
	snap, err := e.mutate(cmd, tokens, userID)

	ent := journal.Entry{}
	if err == nil {
		ent.Capital = snap.Profile.Capital
		if s, ok := e.store.(interface{ Len() int }); ok {
			e.metrics.SetProfiles(s.Len())
		}
	}

	if err = e.finish(cmd, tokens, userID, ent, err); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (e *Engine) mutate(cmd Command, tokens []string, userID string) (Snapshot, error) {
	m, ok := mutators[cmd]
	if !ok {
		return Snapshot{}, ErrUnknownCommand
	}
	if len(tokens) == 0 {
		return Snapshot{}, &risk.FieldError{Field: m.key, Err: risk.ErrMissingField}
	}

	raw := tokens[0]
	if _, v, found := strings.Cut(raw, "="); found {
		raw = v
	}
	v, err := risk.ParseNumber(raw)
	if err != nil {
		return Snapshot{}, &risk.FieldError{Field: m.key, Err: err}
	}
	if m.check != nil {
		if err := m.check(v); err != nil {
			return Snapshot{}, err
		}
	}

	var c profile.Change
	if cmd == CmdPnL {
		c, err = e.store.ApplyCapitalDelta(userID, v)
	} else {
		c, err = e.store.Set(userID, m.field, v)
	}
	if err != nil {
		return Snapshot{}, err
	}

	snap := snapshot(userID, c.After)
	if cmd == CmdPnL || cmd == CmdUpdateCapital {
		snap.Previous = c.Before.Capital
		if c.Before.Capital != nil {
			d := *c.After.Capital - *c.Before.Capital
			snap.Delta = &d
		}
	}
	return snap, nil
}

// Profile returns the user's stored defaults. It never fails; unset fields
// are nil.
func (e *Engine) Profile(userID string) Snapshot {
	return snapshot(userID, e.store.Get(userID))
}

// finish journals, logs and counts one command, and turns a failure into
// the UsageError shown to the user.
func (e *Engine) finish(cmd Command, tokens []string, userID string, ent journal.Entry, err error) error {
	ent.ID = e.ids.New()
	ent.Time = e.now()
	ent.UserID = userID
	ent.Command = string(cmd)
	ent.Args = tokens
	ent.OK = err == nil
	if err != nil {
		ent.Error = err.Error()
	}

	log := logging.WithUser(e.log, userID).With(zap.String("command", string(cmd)))
	if jerr := e.journal.Record(ent); jerr != nil {
		log.Warn("journal write failed", zap.Error(jerr))
	}

	kind := Kind(err)
	e.metrics.Observe(string(cmd), err, kind)

	if err != nil {
		log.Info("command rejected", zap.Strings("args", tokens), zap.String("kind", kind), zap.Error(err))
		return &UsageError{Command: cmd, Err: err}
	}
	log.Debug("command handled", zap.Strings("args", tokens))
	return nil
}
