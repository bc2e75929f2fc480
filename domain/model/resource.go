package model

// ResourceHandle is the reader side of a registered file.
type ResourceHandle struct {
	path    string
	updates *Mailbox
}

func NewResourceHandle(path string, updates *Mailbox) *ResourceHandle {
	return &ResourceHandle{path: path, updates: updates}
}

func (h *ResourceHandle) Path() string {
	return h.path
}

// Update pops the latest pending refresh outcome, if any.
func (h *ResourceHandle) Update() (Update, bool) {
	return h.updates.Pop()
}
