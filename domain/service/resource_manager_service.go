package service

import (
	"sync"
	"time"

	"github.com/ajkula/livetext/domain/model"
	"github.com/ajkula/livetext/domain/port/inbound"
	"github.com/ajkula/livetext/domain/port/outbound"
)

// WatchOptions sets the initial state of the watcher.
type WatchOptions struct {
	// Interval between polls; defaults to one second
	Interval time.Duration

	// StartPaused creates the watcher with polling disabled
	StartPaused bool
}

type resourceManagerService struct {
	control      *controlChannel
	worker       *watcherWorker
	source       outbound.FileSource
	logger       outbound.Logger
	shutdownOnce sync.Once
}

// NewResourceManagerService starts the background watcher and returns the
// manager that controls it. Call Shutdown to stop the watcher.
func NewResourceManagerService(
	source outbound.FileSource,
	logger outbound.Logger,
	opts WatchOptions,
) inbound.ResourceManager {
	control := newControlChannel()
	worker := newWatcherWorker(control, source, logger, opts.Interval, !opts.StartPaused)

	go worker.run()

	return &resourceManagerService{
		control: control,
		worker:  worker,
		source:  source,
		logger:  logger,
	}
}

func (s *resourceManagerService) Start() error {
	return s.control.send(controlMessage{kind: controlStart})
}

func (s *resourceManagerService) Stop() error {
	return s.control.send(controlMessage{kind: controlStop})
}

func (s *resourceManagerService) SetInterval(d time.Duration) error {
	if d <= 0 {
		return model.ErrInvalidInterval
	}
	return s.control.send(controlMessage{kind: controlInterval, interval: d})
}

// Register reads path, then hands a new entry to the watcher. The returned
// text is the snapshot taken here; the first change the watcher detects
// afterwards supersedes it.
func (s *resourceManagerService) Register(path string) (string, *model.ResourceHandle, error) {
	if path == "" {
		return "", nil, model.ErrEmptyResourcePath
	}
	if s.control.isClosed() {
		return "", nil, model.ErrDeadWatcher
	}

	modTime, err := s.source.ModTime(path)
	if err != nil {
		s.logger.Debug("Failed to stat file for registration", "path", path, "error", err)
		return "", nil, &model.IOError{Path: path, Op: "stat", Err: err}
	}

	text, err := s.source.ReadText(path)
	if err != nil {
		s.logger.Debug("Failed to read file for registration", "path", path, "error", err)
		return "", nil, &model.IOError{Path: path, Op: "read", Err: err}
	}

	updates := model.NewMailbox()
	entry := newWatchedEntry(path, modTime, updates)
	if err := s.control.send(controlMessage{kind: controlRegister, entry: entry}); err != nil {
		return "", nil, err
	}

	return text, model.NewResourceHandle(path, updates), nil
}

func (s *resourceManagerService) Open(path string) (*model.TextResource, error) {
	text, handle, err := s.Register(path)
	if err != nil {
		return nil, err
	}
	return model.NewTextResource(text, handle, s.logger), nil
}

// Shutdown closes the control channel and waits for the worker to exit.
func (s *resourceManagerService) Shutdown() {
	s.shutdownOnce.Do(func() {
		s.control.close()
		<-s.worker.done
	})
}
