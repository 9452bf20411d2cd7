// Package logging provides concrete implementations of the catload.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes plain progress lines to an io.Writer
//   - ZapLogger: Writes JSON entries through go.uber.org/zap, tagged with a run id
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
