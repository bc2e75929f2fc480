package service

import (
	"sync"
	"time"

	"github.com/ajkula/livetext/domain/model"
)

type controlKind int

const (
	controlStart controlKind = iota
	controlStop
	controlInterval
	controlRegister
)

func (k controlKind) String() string {
	switch k {
	case controlStart:
		return "start"
	case controlStop:
		return "stop"
	case controlInterval:
		return "interval"
	case controlRegister:
		return "register"
	default:
		return "unknown"
	}
}

type controlMessage struct {
	kind     controlKind
	interval time.Duration
	entry    *watchedEntry
}

type recvStatus int

const (
	recvOK recvStatus = iota
	recvEmpty
	recvTimeout
	recvDisconnected
)

// controlChannel is an unbounded multi-producer, single-consumer queue.
// Senders never block. Once closed, sends fail with ErrDeadWatcher while
// already queued messages are still delivered to the receiver.
type controlChannel struct {
	mu      sync.Mutex
	pending []controlMessage
	closed  bool
	wake    chan struct{}
}

func newControlChannel() *controlChannel {
	return &controlChannel{
		wake: make(chan struct{}, 1),
	}
}

func (c *controlChannel) send(msg controlMessage) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return model.ErrDeadWatcher
	}
	c.pending = append(c.pending, msg)
	c.mu.Unlock()

	c.notify()
	return nil
}

func (c *controlChannel) close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.notify()
}

func (c *controlChannel) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *controlChannel) notify() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *controlChannel) tryRecv() (controlMessage, recvStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.pending) > 0 {
		msg := c.pending[0]
		c.pending[0] = controlMessage{}
		c.pending = c.pending[1:]
		return msg, recvOK
	}
	if c.closed {
		return controlMessage{}, recvDisconnected
	}
	return controlMessage{}, recvEmpty
}

// recvTimeout waits up to d for a message or for the channel to close.
func (c *controlChannel) recvTimeout(d time.Duration) (controlMessage, recvStatus) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	for {
		if msg, status := c.tryRecv(); status != recvEmpty {
			return msg, status
		}

		select {
		case <-c.wake:
		case <-timer.C:
			return controlMessage{}, recvTimeout
		}
	}
}
