package model

import "sync/atomic"

// Update is the outcome of one refresh attempt: new text or an I/O failure.
type Update struct {
	Text string
	Err  error
}

// Mailbox is a single-slot, last-write-wins cell shared between the watcher
// (sole writer) and one ResourceHandle (sole reader).
type Mailbox struct {
	slot atomic.Pointer[Update]
}

func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// Push stores u, discarding any value that was not read yet.
// It reports whether an unread value was replaced.
func (m *Mailbox) Push(u Update) bool {
	return m.slot.Swap(&u) != nil
}

// Pop returns the pending update and empties the slot.
func (m *Mailbox) Pop() (Update, bool) {
	u := m.slot.Swap(nil)
	if u == nil {
		return Update{}, false
	}
	return *u, true
}
