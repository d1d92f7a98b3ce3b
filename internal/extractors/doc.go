// Package extractors provides implementations of the Extractor interface
// for the document formats found in the archive. Each extractor knows how
// to turn one kind of file into plain text.
//
// Extractors are registered with the ExtractorRegistry at startup.
package extractors
