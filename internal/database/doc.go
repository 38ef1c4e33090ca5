// Package database provides SQLite-based storage for well observations.
//
// The external geographic database stays external: its export is ingested
// once (CSV via the import command) into a local SQLite file, and every
// analysis run loads the full observation set from there up front. Nothing
// reads the database inside the analysis hot loop.
package database
