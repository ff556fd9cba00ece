package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var csvHeader = []string{
	"id", "time", "user_id", "command", "args", "ok", "error",
	"capital", "position_size", "notional", "reward_risk",
}

type CSVJournal struct {
	mu sync.Mutex
	w  *csv.Writer
	f  *os.File
}

// NewCSV appends to path, writing the header only when the file is new.
func NewCSV(path string) (*CSVJournal, error) {
	fh, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	st, err := fh.Stat()
	if err != nil {
		_ = fh.Close()
		return nil, err
	}

	w := csv.NewWriter(fh)
	if st.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			_ = fh.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			_ = fh.Close()
			return nil, err
		}
	}

	return &CSVJournal{w: w, f: fh}, nil
}

func (j *CSVJournal) Record(e Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	err := j.w.Write([]string{
		e.ID,
		e.Time.UTC().Format(time.RFC3339Nano),
		e.UserID,
		e.Command,
		strings.Join(e.Args, " "),
		strconv.FormatBool(e.OK),
		e.Error,
		f(e.Capital),
		f(e.PositionSize),
		f(e.Notional),
		f(e.RewardRisk),
	})
	if err != nil {
		return err
	}

	j.w.Flush()
	return j.w.Error()
}

func (j *CSVJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return err
	}
	return j.f.Close()
}

func f(x *float64) string {
	if x == nil {
		return ""
	}
	return strconv.FormatFloat(*x, 'f', 6, 64)
}
