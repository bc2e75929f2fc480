package service

import (
	"io/fs"
	"os"
	"sync"
	"time"
)

// Mock implementations
type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Warn(msg string, keysAndValues ...interface{})  {}

type fakeFile struct {
	text    string
	modTime time.Time
	readErr error
}

// fakeSource is an in-memory FileSource with explicit modification times.
type fakeSource struct {
	mu    sync.Mutex
	files map[string]*fakeFile
	stats map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		files: make(map[string]*fakeFile),
		stats: make(map[string]int),
	}
}

func (f *fakeSource) write(path, text string, modTime time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = &fakeFile{text: text, modTime: modTime}
}

func (f *fakeSource) failReads(path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if file, ok := f.files[path]; ok {
		file.readErr = err
	}
}

func (f *fakeSource) remove(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, path)
}

func (f *fakeSource) statCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats[path]
}

func (f *fakeSource) ModTime(path string) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats[path]++
	file, ok := f.files[path]
	if !ok {
		return time.Time{}, &os.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return file.modTime, nil
}

func (f *fakeSource) ReadText(path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[path]
	if !ok {
		return "", &os.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if file.readErr != nil {
		return "", file.readErr
	}
	return file.text, nil
}

var baseTime = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
