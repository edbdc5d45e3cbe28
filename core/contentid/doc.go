// Package contentid computes the content identity of catalogued files.
//
// Identity is the 128-bit XXH3 hash of the file bytes. The Hash type
// serializes to JSON as an unsigned decimal integer, the representation used
// by catalogs written by earlier versions of the indexer.
//
// # Usage
//
//	h, size, err := contentid.HashFile("/books/a.epub")
//	if err != nil {
//	    // per-file failure: record the book without a hash
//	}
//	fmt.Println(h, size)
package contentid
