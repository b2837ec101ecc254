package exporter

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"healthcli/internal/health"
)

// SQLiteWriter persists cleaned tables into a SQLite database so the
// output can be queried directly. Each metric becomes one table with
// TEXT columns, replaced wholesale on every run.
type SQLiteWriter struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path.
func OpenSQLite(path string) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}
	return &SQLiteWriter{db: db}, nil
}

// Close closes the underlying database.
func (w *SQLiteWriter) Close() error {
	return w.db.Close()
}

// WriteTable replaces the named table with the given contents inside one
// transaction.
func (w *SQLiteWriter) WriteTable(name string, table health.Table) error {
	if len(table.Columns) == 0 {
		return nil
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	quoted := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		quoted[i] = quoteIdent(c) + " TEXT"
	}
	if _, err := tx.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(name))); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", name, err)
	}
	if _, err := tx.Exec(fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(name), strings.Join(quoted, ", "))); err != nil {
		return fmt.Errorf("failed to create table %s: %w", name, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(table.Columns)), ",")
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteIdent(name), placeholders))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]interface{}, len(table.Columns))
	for _, row := range table.Rows {
		for i := range args {
			if i < len(row) {
				args[i] = row[i]
			} else {
				args[i] = ""
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("failed to insert row into %s: %w", name, err)
		}
	}

	return tx.Commit()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
