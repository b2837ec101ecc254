// Package dashboard implements the interactive upload-and-plot view:
// parsing uploaded export files into in-memory sessions, filtering by
// date range and wraparound night window, and extracting numeric series
// with an optional polynomial trend overlay.
package dashboard
