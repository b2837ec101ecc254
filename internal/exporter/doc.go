// Package exporter writes unified metric tables to their destinations:
// CSV files under the cleaned directory, and optionally an Excel summary
// workbook or a SQLite database.
package exporter
