// Package filesystem loads uploads from local paths and keeps a watched
// directory in sync with the document store.
package filesystem
