// Package health defines the domain model shared across the cleaning
// pipeline and the dashboard: the in-memory Table representation of
// export data and the static registry of known metric families.
package health
