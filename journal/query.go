package journal

import (
	"database/sql"
	"fmt"
	"strings"
)

const selectEntry = `
	SELECT id, time, user_id, command, args, ok, error, capital, position_size, notional, reward_risk
	FROM entries`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var (
		e                     Entry
		args                  string
		capital, size, notion sql.NullFloat64
		rr                    sql.NullFloat64
	)
	err := s.Scan(&e.ID, &e.Time, &e.UserID, &e.Command, &args, &e.OK, &e.Error,
		&capital, &size, &notion, &rr)
	if err != nil {
		return Entry{}, err
	}
	if args != "" {
		e.Args = strings.Fields(args)
	}
	e.Capital = ptr(capital)
	e.PositionSize = ptr(size)
	e.Notional = ptr(notion)
	e.RewardRisk = ptr(rr)
	return e, nil
}

// Get returns a single entry by ID.
func (j *SQLite) Get(id string) (Entry, error) {
	row := j.db.QueryRow(selectEntry+` WHERE id = ?`, id)
	e, err := scanEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Entry{}, fmt.Errorf("entry %q not found", id)
		}
		return Entry{}, err
	}
	return e, nil
}

// ListByUser returns the user's most recent entries, newest first. A limit
// of zero or less returns all of them.
func (j *SQLite) ListByUser(userID string, limit int) ([]Entry, error) {
	q := selectEntry + ` WHERE user_id = ? ORDER BY time DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := j.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountByCommand tallies entries per command, split into ok and failed.
func (j *SQLite) CountByCommand() (map[string][2]int, error) {
	rows, err := j.db.Query(`
		SELECT command,
			SUM(CASE WHEN ok THEN 1 ELSE 0 END),
			SUM(CASE WHEN ok THEN 0 ELSE 1 END)
		FROM entries
		GROUP BY command`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][2]int{}
	for rows.Next() {
		var (
			cmd      string
			ok, fail int
		)
		if err := rows.Scan(&cmd, &ok, &fail); err != nil {
			return nil, err
		}
		out[cmd] = [2]int{ok, fail}
	}
	return out, rows.Err()
}
