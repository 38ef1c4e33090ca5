// Package report renders completed analysis runs.
//
// Three formats exist: a human-readable text summary for terminals, JSON
// for tool integration, and GitHub Flavored Markdown for documentation and
// sharing. All writers implement the same Writer interface; a MultiWriter
// fans one run out to several destinations (typically terminal plus file).
//
// The engine makes no assumption about what consumers do with a run; the
// writers only promise that the serialized structure is stable across calls.
package report
