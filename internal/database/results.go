package database

import (
	"database/sql"
)

// GameTable names the backing table for one game's result ledger. The two
// games share every query below; only the table differs.
type GameTable string

const (
	// GameResults is the ledger for the standard game.
	GameResults GameTable = "results"
	// SuperGameResults is the ledger for the "super game" variant.
	SuperGameResults GameTable = "super_game_results"
)

// DBorTx is an interface that allows functions to accept either a `*sql.DB`
// for single queries or a `*sql.Tx` for operations within a transaction.
type DBorTx interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

const resultColumns = `id, result_date, time_slot, number_1, number_2, created_at`

// UpsertResult writes the numbers for a (date, slot) pair. If a row already
// exists for that pair its numbers are replaced in place and its created_at
// is preserved; otherwise a new row is inserted. The conflict resolution is
// a single atomic statement, so concurrent writers for the same pair can
// never produce a duplicate. Returns the resulting row either way.
func (s *Service) UpsertResult(table GameTable, date, slot string, n1, n2 int) (*Result, error) {
	err := s.Write(func(tx *sql.Tx) error {
		query := `INSERT INTO ` + string(table) + ` (result_date, time_slot, number_1, number_2)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(result_date, time_slot)
			DO UPDATE SET number_1 = excluded.number_1, number_2 = excluded.number_2;`
		_, err := tx.Exec(query, date, slot, n1, n2)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.GetResultByDateSlot(s.db, table, date, slot)
}

// GetResultByDateSlot fetches the single row for a (date, slot) pair.
func (s *Service) GetResultByDateSlot(db DBorTx, table GameTable, date, slot string) (*Result, error) {
	query := `SELECT ` + resultColumns + ` FROM ` + string(table) + ` WHERE result_date = ? AND time_slot = ?;`
	result := &Result{}
	err := db.QueryRow(query, date, slot).Scan(
		&result.ID,
		&result.ResultDate,
		&result.TimeSlot,
		&result.Number1,
		&result.Number2,
		&result.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return result, err
}

// ListResultsForDate returns all rows for one calendar date, ordered by
// slot. Handlers pass today's date to serve the "today" view.
func (s *Service) ListResultsForDate(table GameTable, date string) ([]*Result, error) {
	query := `SELECT ` + resultColumns + ` FROM ` + string(table) + `
		WHERE result_date = ? ORDER BY time_slot;`
	return s.queryResults(query, date)
}

// ListPreviousResults returns rows strictly before the given date, newest
// date first, slots ascending within a date, capped at 120 rows.
func (s *Service) ListPreviousResults(table GameTable, before string) ([]*Result, error) {
	query := `SELECT ` + resultColumns + ` FROM ` + string(table) + `
		WHERE result_date < ? ORDER BY result_date DESC, time_slot LIMIT 120;`
	return s.queryResults(query, before)
}

// ListRecentResults returns rows on or after the given cutoff date (the
// caller passes today minus nine days for the ten-day window), newest date
// first, slots ascending within a date. Uncapped.
func (s *Service) ListRecentResults(table GameTable, since string) ([]*Result, error) {
	query := `SELECT ` + resultColumns + ` FROM ` + string(table) + `
		WHERE result_date >= ? ORDER BY result_date DESC, time_slot;`
	return s.queryResults(query, since)
}

// SearchResults filters by exact date and/or by a number appearing in either
// position. Both filters are optional; with neither, it is an unfiltered
// list. Filters combine with AND.
func (s *Service) SearchResults(table GameTable, date string, number *int) ([]*Result, error) {
	query := `SELECT ` + resultColumns + ` FROM ` + string(table) + ` WHERE 1=1`
	var args []interface{}

	if date != "" {
		query += ` AND result_date = ?`
		args = append(args, date)
	}
	if number != nil {
		query += ` AND (number_1 = ? OR number_2 = ?)`
		args = append(args, *number, *number)
	}

	query += ` ORDER BY result_date DESC, time_slot;`
	return s.queryResults(query, args...)
}

// DeleteResult removes one row by id. Returns ErrNotFound if no row had
// that id.
func (s *Service) DeleteResult(table GameTable, id int64) error {
	return s.Write(func(tx *sql.Tx) error {
		res, err := tx.Exec(`DELETE FROM `+string(table)+` WHERE id = ?;`, id)
		if err != nil {
			return err
		}
		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// queryResults runs a SELECT over resultColumns and scans all rows.
func (s *Service) queryResults(query string, args ...interface{}) ([]*Result, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []*Result{}
	for rows.Next() {
		result := &Result{}
		if err := rows.Scan(
			&result.ID,
			&result.ResultDate,
			&result.TimeSlot,
			&result.Number1,
			&result.Number2,
			&result.CreatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
