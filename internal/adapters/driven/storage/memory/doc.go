// Package memory provides in-process implementations of the storage and
// configuration ports. They back the "memory" storage backend and the tests.
package memory
