// Package scan discovers e-book files below a directory root.
//
// The walk is built on godirwalk. Symbolic links are followed only when
// requested, and directories reached twice through links are visited once,
// so link cycles terminate. Exclusion uses doublestar globs.
package scan
