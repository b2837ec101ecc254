// Package http contains the chi HTTP handlers of the dashboard server:
// upload sessions, series extraction, metric registry introspection and
// background cleaning runs.
package http
