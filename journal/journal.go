package journal

import (
	"fmt"
	"strings"
	"time"
)

// Entry is one handled command: who asked, what they typed and the key
// figures that came back. Failed commands carry Error and no figures.
type Entry struct {
	ID      string
	Time    time.Time
	UserID  string
	Command string
	Args    []string
	OK      bool
	Error   string

	Capital      *float64
	PositionSize *float64
	Notional     *float64
	RewardRisk   *float64
}

// Journal records entries. Implementations are safe for concurrent use.
type Journal interface {
	Record(Entry) error
	Close() error
}

// Nop discards everything.
type Nop struct{}

func (Nop) Record(Entry) error { return nil }
func (Nop) Close() error       { return nil }

// Open returns the journal named by kind: "none" (or empty), "csv" or
// "sqlite".
func Open(kind, path string) (Journal, error) {
	switch strings.ToLower(kind) {
	case "", "none":
		return Nop{}, nil
	case "csv":
		return NewCSV(path)
	case "sqlite":
		return NewSQLite(path)
	}
	return nil, fmt.Errorf("unknown journal type %q", kind)
}
