package model

// TextResource is a cached view of a watched text file that refreshes itself
// from its mailbox whenever it is read.
//
// A TextResource belongs to the caller that opened it and is not safe for
// concurrent use.
type TextResource struct {
	text    string
	lastErr error
	handle  *ResourceHandle
	logger  WarnLogger
}

func NewTextResource(text string, handle *ResourceHandle, logger WarnLogger) *TextResource {
	return &TextResource{
		text:   text,
		handle: handle,
		logger: logger,
	}
}

func (r *TextResource) Path() string {
	return r.handle.Path()
}

// Get returns the latest successfully read text. A failed refresh is logged
// and the previous text is returned.
func (r *TextResource) Get() string {
	r.refresh()
	if r.lastErr != nil && r.logger != nil {
		r.logger.Warn("Resource update failed", "path", r.handle.Path(), "error", r.lastErr)
	}
	return r.text
}

// StrictGet returns the latest text, or the pending refresh error.
// The error is consumed: a second call without a new failure succeeds.
func (r *TextResource) StrictGet() (string, error) {
	r.refresh()
	if r.lastErr != nil {
		err := r.lastErr
		r.lastErr = nil
		return "", err
	}
	return r.text, nil
}

func (r *TextResource) refresh() {
	update, ok := r.handle.Update()
	if !ok {
		return
	}
	if update.Err != nil {
		r.lastErr = update.Err
		return
	}
	r.text = update.Text
	r.lastErr = nil
}
