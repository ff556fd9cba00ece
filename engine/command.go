package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rustyeddy/riskbot/profile"
	"github.com/rustyeddy/riskbot/risk"
)

// Command names a user-facing operation.
type Command string

const (
	CmdCalc      Command = "calc"
	CmdCalcPrice Command = "calcprice"
	CmdRR        Command = "rr"

	CmdSetCapital    Command = "setcapital"
	CmdSetRisk       Command = "setrisk"
	CmdSetLev        Command = "setlev"
	CmdSetFee        Command = "setfee"
	CmdUpdateCapital Command = "updatecapital"
	CmdPnL           Command = "pnl"

	CmdProfile Command = "profile"
)

var ErrUnknownCommand = errors.New("unknown command")

var aliases = map[string]Command{
	"size":      CmdCalc,
	"sizeprice": CmdCalcPrice,
}

var usage = map[Command]string{
	CmdCalc:          "calc sl=35.42 [capital=1000] [risk=1] [entry=3600] [tp=3659.54] [side=long|short] [lev=10] [fee=5]",
	CmdCalcPrice:     "calcprice entry=3600 sl=3564,58 [tp=3659,54] [side=long|short] [capital=1000] [risk=1] [lev=10] [fee=5]",
	CmdRR:            "rr entry=3600 sl=3564,58 tp=3659,54 [side=long|short]",
	CmdSetCapital:    "setcapital 1000",
	CmdSetRisk:       "setrisk 1",
	CmdSetLev:        "setlev 10",
	CmdSetFee:        "setfee 5",
	CmdUpdateCapital: "updatecapital 1250",
	CmdPnL:           "pnl -35,50",
	CmdProfile:       "profile",
}

// Commands lists every command in display order.
var Commands = []Command{
	CmdCalc, CmdCalcPrice, CmdRR,
	CmdSetCapital, CmdSetRisk, CmdSetLev, CmdSetFee, CmdUpdateCapital, CmdPnL,
	CmdProfile,
}

// ParseCommand accepts a command name with or without a leading slash, in
// any case, including the size/sizeprice aliases.
func ParseCommand(s string) (Command, error) {
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "/"))
	if c, ok := aliases[name]; ok {
		return c, nil
	}
	if _, ok := usage[Command(name)]; ok {
		return Command(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}

// Usage is the one-line example shown when a command is rejected.
func (c Command) Usage() string {
	return usage[c]
}

// IsCompute reports whether c runs the risk engine.
func (c Command) IsCompute() bool {
	return c == CmdCalc || c == CmdCalcPrice || c == CmdRR
}

// IsMutator reports whether c writes the user's profile.
func (c Command) IsMutator() bool {
	_, ok := mutators[c]
	return ok
}

type mutator struct {
	field profile.Field // zero for pnl
	key   string
	check func(float64) error
}

var mutators = map[Command]mutator{
	CmdSetCapital:    {profile.FieldCapital, risk.KeyCapital, risk.CheckCapital},
	CmdUpdateCapital: {profile.FieldCapital, risk.KeyCapital, risk.CheckCapital},
	CmdSetRisk:       {profile.FieldRiskPercent, risk.KeyRisk, nil},
	CmdSetLev:        {profile.FieldLeverage, risk.KeyLev, func(v float64) error { return risk.CheckLeverage(&v) }},
	CmdSetFee:        {profile.FieldFeeBps, risk.KeyFee, func(v float64) error { return risk.CheckFee(&v) }},
	CmdPnL:           {"", "pnl", nil},
}

// UsageError is what every failed command returns: a short "invalid format"
// message with the expected usage. Unwrap exposes the underlying kind.
type UsageError struct {
	Command Command
	Err     error
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("invalid format (%v). usage: %s", e.Err, e.Command.Usage())
}

func (e *UsageError) Unwrap() error { return e.Err }

// Kind maps err to a short label for metrics and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, risk.ErrInvalidNumber):
		return "invalid_number"
	case errors.Is(err, risk.ErrMissingField):
		return "missing_field"
	case errors.Is(err, risk.ErrInvalidDistance):
		return "invalid_distance"
	case errors.Is(err, risk.ErrInvalidConstraint):
		return "invalid_constraint"
	case errors.Is(err, risk.ErrNoCapitalDefined):
		return "no_capital"
	case errors.Is(err, ErrUnknownCommand):
		return "unknown_command"
	}
	return "other"
}
