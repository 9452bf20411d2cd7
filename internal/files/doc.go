// Package files groups the input side of catload into sub-packages:
//   - filesystem: file access abstraction (OS and in-memory)
//   - loader: CSV and XLSX parsing, type inference and the id join
//
// # Usage
//
//	fsProvider := filesystem.NewOSFileSystem()
//	l := loader.NewLoader(fsProvider, checksum.New(), catload.DefaultCleanOptions())
//	loaded, err := l.Load(ctx, "messages.csv", "categories.csv")
package files
