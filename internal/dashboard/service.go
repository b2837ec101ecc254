package dashboard

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"healthcli/internal/health"
	"healthcli/internal/importer"
	"healthcli/internal/pipeline"
)

// Upload is one file handed to the dashboard.
type Upload struct {
	Name   string
	Reader io.Reader
}

// Session holds the merged, time-indexed data of one upload batch.
// Sessions live in memory for the duration of the process.
type Session struct {
	ID        string
	CreatedAt time.Time
	Sources   []string
	Table     health.Table
	// Times holds the parsed start_time per row, aligned with Table.Rows
	// and sorted ascending.
	Times []time.Time
}

// Service implements the interactive upload-and-plot workflow.
type Service struct {
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewService creates a dashboard service.
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// CreateSession parses the uploaded files, merges them into one table
// with a per-file source label and indexes it by start_time. Rows whose
// start_time does not parse are dropped.
func (s *Service) CreateSession(uploads []Upload) (*Session, error) {
	if len(uploads) == 0 {
		return nil, fmt.Errorf("no files uploaded")
	}

	var fragments []health.Table
	var sources []string
	for _, up := range uploads {
		frag, err := parseUpload(up)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", up.Name, err)
		}
		fragments = append(fragments, frag)
		sources = append(sources, up.Name)
	}

	merged := pipeline.MergeFragments(fragments)
	table, times := indexByStartTime(merged)

	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Sources:   sources,
		Table:     table,
		Times:     times,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Info("Created dashboard session",
		slog.String("session_id", sess.ID),
		slog.Int("files", len(uploads)),
		slog.Int("rows", len(table.Rows)))
	return sess, nil
}

// Session returns a session by ID.
func (s *Service) Session(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// parseUpload reads one uploaded export file: skip the vendor metadata
// line, strip column prefixes, and label every row with the file name.
func parseUpload(up Upload) (health.Table, error) {
	raw, err := importer.Read(up.Reader)
	if err != nil {
		return health.Table{}, err
	}

	// The upload view keeps all columns; only prefix stripping and the
	// temporal reorder apply.
	frag := pipeline.Normalize(raw, pipeline.DropSet{})

	frag.Columns = append(frag.Columns, "source")
	for i := range frag.Rows {
		frag.Rows[i] = append(frag.Rows[i], up.Name)
	}
	return frag, nil
}

// indexByStartTime drops rows without a parseable start_time and sorts
// the rest chronologically.
func indexByStartTime(t health.Table) (health.Table, []time.Time) {
	idx := t.ColumnIndex("start_time")
	if idx < 0 {
		return health.Table{Columns: t.Columns}, nil
	}

	type indexed struct {
		ts  time.Time
		row []string
	}
	var rows []indexed
	for _, row := range t.Rows {
		if idx >= len(row) {
			continue
		}
		ts, ok := pipeline.ParseExportTime(row[idx])
		if !ok {
			continue
		}
		rows = append(rows, indexed{ts: ts, row: row})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ts.Before(rows[j].ts) })

	out := health.Table{Columns: t.Columns}
	times := make([]time.Time, 0, len(rows))
	for _, r := range rows {
		out.Rows = append(out.Rows, r.row)
		times = append(times, r.ts)
	}
	return out, times
}
