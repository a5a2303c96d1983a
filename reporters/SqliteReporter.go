package reporters

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/reaandrew/findingsexport/core"
	"github.com/reaandrew/findingsexport/utils"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultSqliteReport = "findings.db"
	findingsTable       = "Findings"
)

// SqliteReporter recreates a database file holding one Findings table whose
// columns follow the header.
type SqliteReporter struct {
	DBPath string
}

func (s SqliteReporter) Destination() string {
	if s.DBPath == "" {
		return DefaultSqliteReport
	}
	return s.DBPath
}

func (s SqliteReporter) Report(ctx context.Context, header []string, rows []core.Row) error {
	path := s.Destination()
	if err := utils.DeleteFileIfExists(path); err != nil {
		return destinationError(path, err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return destinationError(path, fmt.Errorf("failed to open SQLite database: %w", err))
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, createTableStatement(header)); err != nil {
		return destinationError(path, fmt.Errorf("failed to create findings table: %w", err))
	}

	if err := insertRows(ctx, db, header, rows); err != nil {
		return destinationError(path, err)
	}

	log.WithField("rows", len(rows)).Infof("SQLite report generated successfully: %s", path)
	return nil
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func createTableStatement(header []string) string {
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = quoteIdentifier(name) + " TEXT"
	}
	return fmt.Sprintf("CREATE TABLE %s (%s);", findingsTable, strings.Join(columns, ", "))
}

func insertRows(ctx context.Context, db *sql.DB, header []string, rows []core.Row) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	columns := make([]string, len(header))
	placeholders := make([]string, len(header))
	for i, name := range header {
		columns[i] = quoteIdentifier(name)
		placeholders[i] = "?"
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		findingsTable, strings.Join(columns, ", "), strings.Join(placeholders, ", ")))
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if len(row) != len(header) {
			return fmt.Errorf("row %d has %d values, expected %d", i+1, len(row), len(header))
		}
		if _, err := stmt.ExecContext(ctx, row.Values()...); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i+1, err)
		}
	}
	return nil
}
