// Package library exposes the catalog operations used by the command line.
//
// Each mutating call holds the catalog lock for its whole duration, loads the
// document, runs one reconcile operation, and writes the result back
// atomically. Dry runs perform the operation in memory and skip the write.
package library
