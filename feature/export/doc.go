// Package export writes the live view of a catalog to other systems.
//
// ToDatabase mirrors it into a SQL table through GORM (SQLite or MySQL).
// ToYAML and ToJSON write flat lists for scripts and spreadsheets. Stale
// records are never exported.
package export
