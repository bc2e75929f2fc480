package service

import (
	"time"

	"github.com/ajkula/livetext/domain/port/outbound"
)

const defaultWatchInterval = 1 * time.Second

// watcherWorker polls every registered file from a single goroutine.
// All of its fields except control and done are only touched by run.
type watcherWorker struct {
	control  *controlChannel
	source   outbound.FileSource
	logger   outbound.Logger
	interval time.Duration
	enabled  bool
	entries  []*watchedEntry
	done     chan struct{}
}

func newWatcherWorker(
	control *controlChannel,
	source outbound.FileSource,
	logger outbound.Logger,
	interval time.Duration,
	enabled bool,
) *watcherWorker {
	if interval <= 0 {
		interval = defaultWatchInterval
	}

	return &watcherWorker{
		control:  control,
		source:   source,
		logger:   logger,
		interval: interval,
		enabled:  enabled,
		entries:  make([]*watchedEntry, 0),
		done:     make(chan struct{}),
	}
}

// run is the worker loop. The interval is an idle timeout: any control
// message wakes the worker, and the whole queued burst is applied before the
// next poll. The loop ends once the control channel is closed and drained.
func (w *watcherWorker) run() {
	defer close(w.done)
	// senders must observe a dead watcher even if the loop exits on its own
	defer w.control.close()

	w.logger.Info("File watcher started", "interval", w.interval.String(), "enabled", w.enabled)

	for {
		msg, status := w.control.recvTimeout(w.interval)
		for status == recvOK {
			w.apply(msg)
			msg, status = w.control.tryRecv()
		}

		if status == recvDisconnected {
			w.logger.Info("File watcher stopped", "entries", len(w.entries))
			return
		}

		if w.enabled {
			w.poll()
		}
	}
}

func (w *watcherWorker) apply(msg controlMessage) {
	switch msg.kind {
	case controlStart:
		if !w.enabled {
			w.logger.Info("File watching resumed")
		}
		w.enabled = true
	case controlStop:
		if w.enabled {
			w.logger.Info("File watching paused")
		}
		w.enabled = false
	case controlInterval:
		w.logger.Debug("Watch interval updated", "old", w.interval.String(), "new", msg.interval.String())
		w.interval = msg.interval
	case controlRegister:
		w.entries = append(w.entries, msg.entry)
		w.logger.Debug("Watching file", "path", msg.entry.path, "entries", len(w.entries))
	default:
		w.logger.Warn("Ignoring unknown control message", "kind", msg.kind.String())
	}
}

// poll checks every entry once. A failing entry never affects the others.
func (w *watcherWorker) poll() {
	for _, entry := range w.entries {
		if entry.check(w.source) {
			w.logger.Debug("Published file update", "path", entry.path)
		}
	}
}
