// Package connectors provides the sources documents are loaded from.
// The filesystem connector reads local files and watches directories
// for changes so edited files are re-ingested.
package connectors
