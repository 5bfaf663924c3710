package webapp

import "sync"

// NoticeKind distinguishes success from error notices when rendering.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a one-shot message shown on the next rendered page.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// NoticeBoard queues notices between a handler and the next page render. It
// implements authn.Notifier, so session events (login success, session
// expiry, logout) surface in the UI the same way form errors do.
type NoticeBoard struct {
	mu      sync.Mutex
	pending []Notice
}

func NewNoticeBoard() *NoticeBoard {
	return &NoticeBoard{}
}

func (b *NoticeBoard) Success(message string) {
	b.push(Notice{Kind: NoticeSuccess, Message: message})
}

func (b *NoticeBoard) Error(message string) {
	b.push(Notice{Kind: NoticeError, Message: message})
}

func (b *NoticeBoard) push(n Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, n)
}

// Drain returns the queued notices and clears the queue.
func (b *NoticeBoard) Drain() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	notices := b.pending
	b.pending = nil
	return notices
}
