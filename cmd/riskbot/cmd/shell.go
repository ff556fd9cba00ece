package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rustyeddy/riskbot/engine"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive session, one command per line",
	Long: `Read commands from stdin, one per line, and answer each one. Profiles set
with setcapital, setrisk, setlev, setfee, updatecapital and pnl are kept for
the whole session.

  > setcapital 1000
  > setrisk 1
  > calc sl=35.42

Type "help" for the command list and "quit" or "exit" to leave. When a
metrics address is configured, prometheus metrics are served on /metrics.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

var shellMetricsAddr string

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.Flags().StringVar(&shellMetricsAddr, "metrics-addr", "", "serve /metrics on this address (e.g. :9090)")
}

func runShell(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfgPath)
	if err != nil {
		return err
	}
	defer a.Close()

	addr := a.cfg.Metrics.Addr
	if shellMetricsAddr != "" {
		addr = shellMetricsAddr
	}
	if addr != "" {
		srv := a.serveMetrics(addr)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	return a.shell(cmd.InOrStdin(), cmd.OutOrStdout(), userID)
}

func (a *app) serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("metrics server", zap.String("addr", addr), zap.Error(err))
		}
	}()
	a.log.Info("serving metrics", zap.String("addr", addr))
	return srv
}

// shell answers each line of in. A failed command prints its error and the
// session goes on.
func (a *app) shell(in io.Reader, out io.Writer, user string) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}

		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "quit", "exit":
			return nil
		case "help":
			shellHelp(out)
			continue
		}

		if err := a.dispatch(out, fields[0], fields[1:], user); err != nil {
			fmt.Fprintln(out, "error:", err)
		}
	}
}

func shellHelp(out io.Writer) {
	fmt.Fprintln(out, "commands:")
	for _, c := range engine.Commands {
		fmt.Fprintf(out, "  %s\n", c.Usage())
	}
	fmt.Fprintln(out, "  help | quit | exit")
}
