package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/rustyeddy/riskbot/config"
	"github.com/rustyeddy/riskbot/journal"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List journaled commands",
	Long: `Show the most recent commands a user ran, read from the sqlite journal.

The journal path comes from --db, or from the journal section of the config
file when it is of type sqlite.

Examples:
  riskbot history -u alice -n 20
  riskbot history --db riskbot.sqlite --summary`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var (
	historyDBPath  string
	historyLimit   int
	historySummary bool
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVarP(&historyDBPath, "db", "d", "", "path to SQLite journal DB")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of entries to show")
	historyCmd.Flags().BoolVar(&historySummary, "summary", false, "show per-command totals instead")
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := historyDBPath
	if path == "" {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if !strings.EqualFold(cfg.Journal.Type, "sqlite") {
			return fmt.Errorf("journal type is %q; history needs sqlite (set --db)", cfg.Journal.Type)
		}
		path = cfg.Journal.Path
	}

	j, err := journal.NewSQLite(path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	if historySummary {
		counts, err := j.CountByCommand()
		if err != nil {
			return fmt.Errorf("query journal: %w", err)
		}
		return renderSummary(cmd.OutOrStdout(), counts)
	}

	entries, err := j.ListByUser(userID, historyLimit)
	if err != nil {
		return fmt.Errorf("query journal: %w", err)
	}
	return renderHistory(cmd.OutOrStdout(), entries)
}

func renderHistory(w io.Writer, entries []journal.Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "no entries")
		return nil
	}

	opt := func(v *float64, format func(float64) string) string {
		if v == nil {
			return ""
		}
		return format(*v)
	}

	t := tablewriter.NewTable(w, tablewriter.WithHeader([]string{"Time", "Command", "Args", "OK", "Size", "R:R", "Error"}))
	for _, e := range entries {
		err := t.Append([]string{
			e.Time.Format("2006-01-02 15:04:05"),
			e.Command,
			strings.Join(e.Args, " "),
			strconv.FormatBool(e.OK),
			opt(e.PositionSize, units),
			opt(e.RewardRisk, money),
			e.Error,
		})
		if err != nil {
			return err
		}
	}
	return t.Render()
}

func renderSummary(w io.Writer, counts map[string][2]int) error {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	t := tablewriter.NewTable(w, tablewriter.WithHeader([]string{"Command", "OK", "Failed"}))
	for _, name := range names {
		c := counts[name]
		if err := t.Append([]string{name, strconv.Itoa(c[0]), strconv.Itoa(c[1])}); err != nil {
			return err
		}
	}
	return t.Render()
}
