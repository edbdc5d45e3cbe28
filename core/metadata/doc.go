// Package metadata identifies e-book formats and extracts descriptive metadata.
//
// EPUB files are read through their OCF container: META-INF/container.xml
// names the package document, whose Dublin Core elements provide title,
// creator, description, publisher and date. Chapter titles come from the
// EPUB 3 navigation document or, failing that, the NCX.
//
// PDF files contribute their document information dictionary and outline.
//
// Extraction is best effort. Extract always returns usable Metadata and
// reports problems through its error so callers can log and continue.
package metadata
