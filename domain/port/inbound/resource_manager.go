package inbound

import (
	"time"

	"github.com/ajkula/livetext/domain/model"
)

// ResourceManager routes every watch control request to the single
// background watcher and registers new files with it.
//
// Control calls are fire-and-forget: they return once the request is queued,
// not once the watcher applied it.
type ResourceManager interface {
	// resumes polling
	Start() error

	// pauses polling; registered files stay registered
	Stop() error

	// changes the poll interval
	SetInterval(d time.Duration) error

	// reads path synchronously and starts watching it
	Register(path string) (string, *model.ResourceHandle, error)

	// registers path and wraps it in a TextResource
	Open(path string) (*model.TextResource, error)

	// stops the watcher and waits for it to exit
	Shutdown()
}
