// Package checksum fingerprints the input sources of a pipeline run.
//
// Two checksums are available:
//
//   - Raw checksum: hash of the exact file content (detects all changes)
//   - Normalized checksum: hash after stripping a UTF-8 BOM, unifying line
//     endings and dropping trailing blank lines, so a file re-saved by a
//     spreadsheet tool keeps its identity
//
// # Example Usage
//
//	calculator := checksum.New()
//	raw := calculator.CalculateRaw(content)
//	normalized := calculator.CalculateNormalized(content)
package checksum
