package lightbox

// ScrollLock suppresses background page scrolling while an overlay is up.
// Acquire and Release must stay balanced across open/close transitions;
// releasing an unheld lock is a no-op so teardown can always release.
type ScrollLock interface {
	Acquire()
	Release()
	Held() bool
}

// PageScrollLock is the in-memory half of the lock; the rendered overlay
// carries the matching data-scroll-lock presentation attribute.
type PageScrollLock struct {
	held bool
}

func NewPageScrollLock() *PageScrollLock {
	return &PageScrollLock{}
}

func (l *PageScrollLock) Acquire() {
	l.held = true
}

func (l *PageScrollLock) Release() {
	l.held = false
}

func (l *PageScrollLock) Held() bool {
	return l.held
}
