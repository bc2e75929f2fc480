package service

import (
	"time"

	"github.com/ajkula/livetext/domain/model"
	"github.com/ajkula/livetext/domain/port/outbound"
)

// watchedEntry is the worker-owned state of one registered file.
type watchedEntry struct {
	path    string
	modTime time.Time
	updates *model.Mailbox
}

func newWatchedEntry(path string, modTime time.Time, updates *model.Mailbox) *watchedEntry {
	return &watchedEntry{
		path:    path,
		modTime: modTime,
		updates: updates,
	}
}

// check publishes a new version of the file when its modification time
// moved forward, or the I/O error that prevented the check.
// It reports whether anything was pushed to the mailbox.
func (e *watchedEntry) check(source outbound.FileSource) bool {
	modTime, err := source.ModTime(e.path)
	if err != nil {
		// keep the last good modTime so the next successful stat still compares against it
		e.updates.Push(model.Update{Err: &model.IOError{Path: e.path, Op: "stat", Err: err}})
		return true
	}

	if !modTime.After(e.modTime) {
		return false
	}
	e.modTime = modTime

	text, err := source.ReadText(e.path)
	if err != nil {
		e.updates.Push(model.Update{Err: &model.IOError{Path: e.path, Op: "read", Err: err}})
		return true
	}

	e.updates.Push(model.Update{Text: text})
	return true
}
