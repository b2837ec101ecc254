// Package importer reads raw Samsung Health export files into tables.
package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"healthcli/internal/health"
)

// ReadFile reads one export file from disk.
func ReadFile(path string) (health.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return health.Table{}, fmt.Errorf("failed to open export file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses an export file. The first line is vendor metadata and is
// always skipped; the second line is the header. Rows shorter or longer
// than the header are padded or truncated rather than rejected, since
// exports from older app versions are frequently ragged.
func Read(r io.Reader) (health.Table, error) {
	br := bufio.NewReader(r)
	if _, err := br.ReadString('\n'); err != nil && err != io.EOF {
		return health.Table{}, fmt.Errorf("failed to skip metadata line: %w", err)
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return health.Table{}, nil
	}
	if err != nil {
		return health.Table{}, fmt.Errorf("failed to read header: %w", err)
	}

	table := health.Table{Columns: trimAll(header)}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return health.Table{}, fmt.Errorf("failed to read row: %w", err)
		}
		table.AppendRow(row)
	}
	return table, nil
}

func trimAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
