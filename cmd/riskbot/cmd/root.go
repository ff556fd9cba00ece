package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rustyeddy/riskbot/config"
	"github.com/rustyeddy/riskbot/engine"
	"github.com/rustyeddy/riskbot/journal"
	"github.com/rustyeddy/riskbot/logging"
	"github.com/rustyeddy/riskbot/metrics"
	"github.com/rustyeddy/riskbot/profile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "riskbot",
	Short: "Position sizing and trade risk calculator",
	Long: `Riskbot computes the maximum position size for a trade from your capital,
the percent you are willing to risk and your stop-loss, plus notional, margin,
round-trip fees, potential gain/loss and reward:risk.

Arguments may be written key=value or key value, in any order, and accept a
comma as decimal separator:

  riskbot calc capital=1000 risk=1 sl=35.42
  riskbot calcprice entry 3600 sl 3564,58 tp 3659,54 risk 1 capital 1000
  riskbot rr entry=3600 sl=3564,58 tp=3659,54 side=long

Stored defaults (setcapital, setrisk, setlev, setfee, pnl) live for the
lifetime of the process, so they are most useful inside "riskbot shell".`,
	SilenceUsage: true,
}

var (
	cfgPath string
	userID  string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "local", "user id the profile belongs to")

	for _, c := range engine.Commands {
		rootCmd.AddCommand(newEngineCmd(c))
	}
}

// app is everything one process needs to serve commands.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	journal journal.Journal
	metrics *metrics.Metrics
	reg     *prometheus.Registry
	store   *profile.MemoryStore
	engine  *engine.Engine
}

func newApp(path string) (*app, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logging.New(cfg.Log)

	j, err := journal.Open(cfg.Journal.Type, cfg.Journal.Path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	store := profile.NewMemoryStore(cfg.Defaults)

	return &app{
		cfg:     cfg,
		log:     log,
		journal: j,
		metrics: m,
		reg:     reg,
		store:   store,
		engine: engine.New(store,
			engine.WithJournal(j),
			engine.WithLogger(log),
			engine.WithMetrics(m),
		),
	}, nil
}

func (a *app) Close() error {
	_ = a.log.Sync()
	return a.journal.Close()
}

// dispatch runs one command line for user and renders the outcome to w.
func (a *app) dispatch(w io.Writer, name string, args []string, user string) error {
	c, err := engine.ParseCommand(name)
	if err != nil {
		return err
	}

	switch {
	case c.IsCompute():
		out, err := a.engine.Compute(c, args, user)
		if err != nil {
			return err
		}
		return renderOutcome(w, out)
	case c.IsMutator():
		snap, err := a.engine.Mutate(c, args, user)
		if err != nil {
			return err
		}
		return renderSnapshot(w, c, snap)
	}
	return renderSnapshot(w, c, a.engine.Profile(user))
}

// newEngineCmd wraps one engine command. Flag parsing is left off so that
// values such as "pnl -50" are not taken for flags; --user and --config are
// picked out by hand instead.
func newEngineCmd(c engine.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:                string(c) + " [args]",
		Short:              "e.g. " + c.Usage(),
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, user, rest, help := splitFlags(args, cfgPath, userID)
			if help {
				return cmd.Help()
			}

			a, err := newApp(path)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.dispatch(cmd.OutOrStdout(), string(c), rest, user)
		},
	}
	switch c {
	case engine.CmdCalc:
		cmd.Aliases = []string{"size"}
	case engine.CmdCalcPrice:
		cmd.Aliases = []string{"sizeprice"}
	}
	return cmd
}

func splitFlags(args []string, path, user string) (string, string, []string, bool) {
	var rest []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "-h" || a == "--help":
			return path, user, nil, true
		case (a == "--config" || a == "-c") && i+1 < len(args):
			path = args[i+1]
			i++
		case (a == "--user" || a == "-u") && i+1 < len(args):
			user = args[i+1]
			i++
		case strings.HasPrefix(a, "--config="):
			path = strings.TrimPrefix(a, "--config=")
		case strings.HasPrefix(a, "--user="):
			user = strings.TrimPrefix(a, "--user=")
		default:
			rest = append(rest, a)
		}
	}
	return path, user, rest, false
}
