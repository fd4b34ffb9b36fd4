// Package extractors provides implementations of the Extractor interface
// for the supported upload formats. Each extractor decodes exactly one
// domain.Format into plain text.
//
// Extractors are registered with the Registry at startup. Selection is a
// pure lookup on the format produced by domain.Classify.
package extractors
