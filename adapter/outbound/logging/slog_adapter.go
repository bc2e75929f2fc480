package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ajkula/livetext/config"
	"github.com/ajkula/livetext/domain/model"
)

type LogLevel int

const (
	LevelError LogLevel = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// represents a single log entry to be processed asynchronously
type LogMessage struct {
	Level LogLevel
	Msg   string
	Args  []any
	Time  time.Time
}

// implements the Logger interface using Go's structured logging (slog)
// with asynchronous processing so the watcher loop never blocks on I/O
type SlogAdapter struct {
	logger       *slog.Logger
	config       *config.Config
	configMu     sync.Mutex
	logChan      chan LogMessage
	ctx          context.Context
	cancel       context.CancelFunc
	slogLevel    *slog.LevelVar
	closer       io.Closer
	done         chan struct{}
	shutdownOnce sync.Once
}

// NewSlogAdapter builds a logger writing to the output selected in the config.
// If the configured log file cannot be opened it falls back to stderr.
func NewSlogAdapter(cfg *config.Config) model.Logger {
	out, closer, err := openOutput(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v, falling back to stderr\n", err)
		out, closer = os.Stderr, nil
	}

	adapter := newSlogAdapter(cfg, out)
	adapter.closer = closer
	return adapter
}

func newSlogAdapter(cfg *config.Config, out io.Writer) *SlogAdapter {
	ctx, cancel := context.WithCancel(context.Background())

	// Create a LevelVar for dynamic level changes
	levelVar := &slog.LevelVar{}
	levelVar.Set(parseSlogLevel(cfg.General.LogLevel))

	handlerOpts := &slog.HandlerOptions{
		Level: levelVar,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Logging.Format) == "text" {
		handler = slog.NewTextHandler(out, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(out, handlerOpts)
	}

	channelSize := cfg.Logging.ChannelSize
	if channelSize <= 0 {
		channelSize = 1000
	}

	adapter := &SlogAdapter{
		logger:    slog.New(handler),
		config:    cfg,
		logChan:   make(chan LogMessage, channelSize),
		ctx:       ctx,
		cancel:    cancel,
		slogLevel: levelVar,
		done:      make(chan struct{}),
	}

	go adapter.processLogs()

	return adapter
}

func openOutput(cfg *config.Config) (io.Writer, io.Closer, error) {
	switch strings.ToLower(cfg.Logging.Output) {
	case "stderr":
		return os.Stderr, nil, nil
	case "file":
		f, err := os.OpenFile(cfg.Logging.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", cfg.Logging.FilePath, err)
		}
		return f, f, nil
	default:
		return os.Stdout, nil, nil
	}
}

// updates both config and slog level dynamically
func (s *SlogAdapter) UpdateLevel(logLvl string) {
	normalizedLevel := strings.ToLower(logLvl)

	s.configMu.Lock()
	s.config.General.LogLevel = normalizedLevel
	s.config.Logging.Level = strings.ToUpper(normalizedLevel)
	s.configMu.Unlock()

	s.slogLevel.Set(parseSlogLevel(normalizedLevel))

	s.Info("Logger level updated dynamically", "new_level", normalizedLevel)
}

// handles messages asynchronously
func (s *SlogAdapter) processLogs() {
	defer close(s.done)

	for {
		select {
		case msg := <-s.logChan:
			s.writeLog(msg)
		case <-s.ctx.Done():
			for {
				select {
				case msg := <-s.logChan:
					s.writeLog(msg)
				default:
					return
				}
			}
		}
	}
}

// converts string level to slog.Level
func parseSlogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func toSlogLevel(level LogLevel) slog.Level {
	switch level {
	case LevelError:
		return slog.LevelError
	case LevelWarn:
		return slog.LevelWarn
	case LevelInfo:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// writes msg stamped with the time it was logged, not the time it was dequeued
func (s *SlogAdapter) writeLog(msg LogMessage) {
	ctx := context.Background()
	level := toSlogLevel(msg.Level)
	if !s.logger.Enabled(ctx, level) {
		return
	}

	record := slog.NewRecord(msg.Time, level, msg.Msg, 0)
	record.Add(msg.Args...)
	if err := s.logger.Handler().Handle(ctx, record); err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
	}
}

func (s *SlogAdapter) sendLog(level LogLevel, msg string, args ...any) {
	if s.ctx.Err() != nil {
		return
	}

	select {
	case s.logChan <- LogMessage{
		Level: level,
		Msg:   msg,
		Args:  args,
		Time:  time.Now(),
	}:
	default:
		// chan full, drop
	}
}

func (s *SlogAdapter) shouldLog(level LogLevel) bool {
	return toSlogLevel(level) >= s.slogLevel.Level()
}

func (s *SlogAdapter) Error(msg string, args ...any) {
	if !s.shouldLog(LevelError) {
		return
	}
	s.sendLog(LevelError, msg, args...)
}

func (s *SlogAdapter) Warn(msg string, args ...any) {
	if !s.shouldLog(LevelWarn) {
		return
	}
	s.sendLog(LevelWarn, msg, args...)
}

func (s *SlogAdapter) Info(msg string, args ...any) {
	if !s.shouldLog(LevelInfo) {
		return
	}
	s.sendLog(LevelInfo, msg, args...)
}

func (s *SlogAdapter) Debug(msg string, args ...any) {
	if !s.shouldLog(LevelDebug) {
		return
	}
	s.sendLog(LevelDebug, msg, args...)
}

// Shutdown flushes queued records and releases the output.
func (s *SlogAdapter) Shutdown() {
	s.shutdownOnce.Do(func() {
		s.cancel()
		<-s.done
		if s.closer != nil {
			s.closer.Close()
		}
	})
}
