// Package livetext keeps in-memory copies of text files current.
//
// Register a path to get a TextResource holding the file's contents. A single
// background watcher polls the modification time of every registered file and
// hands new contents to the resource, which picks them up on its next read.
//
// The functions in this package drive a process-wide manager created on first
// use. Programs that need several independent watchers, or tests, should build
// their own with service.NewResourceManagerService.
package livetext

import (
	"sync"
	"time"

	"github.com/ajkula/livetext/adapter/outbound/filesource"
	"github.com/ajkula/livetext/adapter/outbound/logging"
	"github.com/ajkula/livetext/config"
	"github.com/ajkula/livetext/domain/model"
	"github.com/ajkula/livetext/domain/port/inbound"
	"github.com/ajkula/livetext/domain/service"
)

// TextResource is a live view of one registered file.
type TextResource = model.TextResource

// ErrDeadWatcher is returned by every call once Shutdown ran.
var ErrDeadWatcher = model.ErrDeadWatcher

var (
	defaultOnce    sync.Once
	defaultManager inbound.ResourceManager
	defaultLogger  model.Logger
)

// Default returns the process-wide manager, starting it on first call.
func Default() inbound.ResourceManager {
	defaultOnce.Do(func() {
		cfg := config.DefaultConfig()
		cfg.General.LogLevel = "warn"
		cfg.Logging.Output = "stderr"

		defaultLogger = logging.NewSlogAdapter(cfg)
		defaultManager = service.NewResourceManagerService(
			filesource.NewOSSource(),
			defaultLogger,
			service.WatchOptions{Interval: cfg.Watch.Interval},
		)
	})
	return defaultManager
}

// Register reads path and keeps the returned resource up to date.
func Register(path string) (*TextResource, error) {
	return Default().Open(path)
}

func StartWatch() error {
	return Default().Start()
}

func StopWatch() error {
	return Default().Stop()
}

func WatchInterval(d time.Duration) error {
	return Default().SetInterval(d)
}

// Shutdown stops the process-wide watcher. It cannot be restarted.
func Shutdown() {
	Default().Shutdown()
	defaultLogger.Shutdown()
}
