// Package filesystem abstracts read access to input sources so the loader can
// be exercised against in-memory files in tests.
//
// Implementations:
//   - OSFileSystem: the real filesystem
//   - MemoryFileSystem: an in-memory map of paths to contents
package filesystem
