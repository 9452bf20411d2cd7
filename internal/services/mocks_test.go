package services

import (
	"context"

	"github.com/vvka-141/catload/pkg/catload"
)

type mockLoader struct {
	loaded *catload.Loaded
	err    error
	calls  int
}

func (m *mockLoader) Load(_ context.Context, _, _ string) (*catload.Loaded, error) {
	m.calls++
	return m.loaded, m.err
}

type mockCleaner struct {
	result *catload.CleanResult
	err    error
	calls  int
}

func (m *mockCleaner) Clean(_ *catload.Table) (*catload.CleanResult, error) {
	m.calls++
	return m.result, m.err
}

type mockHandle struct {
	replaceErr error
	closeErr   error
	count      int
	relation   string
	table      *catload.Table
	closed     bool
}

func (m *mockHandle) Replace(_ context.Context, relation string, t *catload.Table) error {
	m.relation = relation
	m.table = t
	return m.replaceErr
}

func (m *mockHandle) Close() error {
	m.closed = true
	return m.closeErr
}

func (m *mockHandle) Count(_ context.Context, _ string) (int, error) {
	return m.count, nil
}

type mockOpener struct {
	handle *mockHandle
	err    error
	dest   string
	calls  int
}

func (m *mockOpener) Open(_ context.Context, destination string) (catload.StoreHandle, error) {
	m.calls++
	m.dest = destination
	if m.err != nil {
		return nil, m.err
	}
	return m.handle, nil
}

type recordingLogger struct {
	info    []string
	verbose []string
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {
	l.verbose = append(l.verbose, sprintf(format, args))
}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.info = append(l.info, sprintf(format, args))
}

func (l *recordingLogger) Error(format string, args ...interface{}) {}
