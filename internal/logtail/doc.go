// Package logtail reads the tail of the beerdex log file for `beerdex logs`.
//
// Read keeps a ring buffer of the last maxLines lines, so memory stays
// bounded by the requested line count regardless of file size. A missing log
// file is treated as empty.
//
// ColorizeLine highlights the level=... field of logrus text lines with
// lipgloss when the output is a terminal. Malformed lines pass through
// unchanged.
package logtail
