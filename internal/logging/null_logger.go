package logging

import "github.com/vvka-141/catload/pkg/catload"

var _ catload.Logger = (*NullLogger)(nil)

// NullLogger drops progress lines and diagnostics alike.
// Pipelines built in tests use it when their output is not asserted.
type NullLogger struct{}

func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Verbose(string, ...interface{}) {}
func (l *NullLogger) Info(string, ...interface{})    {}
func (l *NullLogger) Error(string, ...interface{})   {}
