// Package files locates Samsung Health export files on disk by metric
// file pattern.
package files
