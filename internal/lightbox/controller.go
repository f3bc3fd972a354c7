package lightbox

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/VeranoAtelier/verano-web/internal/gallery"
)

// ErrOutOfRange reports an Open call addressing an item outside the
// gallery. Direct addressing never clamps or wraps; wrap-around is the
// semantic of Next/Prev only.
var ErrOutOfRange = errors.New("gallery item index out of range")

// Controller is the single source of truth for which item is shown and
// whether the viewer is visible. Every mutation runs to completion and
// pushes the resulting state into the presenter before returning; the
// presenter never talks back.
//
// A controller is not safe for concurrent use; callers serialize access
// the way a UI event loop would.
type Controller struct {
	index     *gallery.Index
	state     State
	presenter Presenter
	lock      ScrollLock
}

func NewController(index *gallery.Index, presenter Presenter, lock ScrollLock) *Controller {
	return &Controller{
		index:     index,
		presenter: presenter,
		lock:      lock,
	}
}

func (c *Controller) State() State {
	return c.state
}

// ScrollLocked reports whether the page scroll lock is currently held.
func (c *Controller) ScrollLocked() bool {
	return c.lock.Held()
}

// Open shows the item at index. Out-of-range indices are rejected with
// ErrOutOfRange. Opening acquires the scroll lock; every exit path back
// to closed releases it.
func (c *Controller) Open(index int) error {
	if index < 0 || index >= c.index.Len() {
		return fmt.Errorf("open item %d of %d: %w", index, c.index.Len(), ErrOutOfRange)
	}

	c.state.Current = index
	c.state.Open = true
	c.lock.Acquire()

	return c.push()
}

// Close hides the viewer and releases the scroll lock. Closing an
// already-closed viewer is a no-op.
func (c *Controller) Close() error {
	if !c.state.Open {
		return nil
	}

	c.state.Open = false
	c.lock.Release()

	return c.push()
}

// Next advances to the following item, wrapping past the last one back to
// the first. With an empty gallery it does nothing.
func (c *Controller) Next() error {
	n := c.index.Len()
	if n == 0 {
		return nil
	}

	c.state.Current = (c.state.Current + 1) % n
	return c.push()
}

// Prev steps back to the preceding item, wrapping past the first one to
// the last. With an empty gallery it does nothing.
func (c *Controller) Prev() error {
	n := c.index.Len()
	if n == 0 {
		return nil
	}

	c.state.Current = (c.state.Current - 1 + n) % n
	return c.push()
}

// Apply dispatches one command from the closed command set.
func (c *Controller) Apply(cmd Command) error {
	switch cmd := cmd.(type) {
	case OpenCommand:
		return c.Open(cmd.Index)
	case CloseCommand:
		return c.Close()
	case NextCommand:
		return c.Next()
	case PrevCommand:
		return c.Prev()
	}
	return fmt.Errorf("unknown lightbox command %T", cmd)
}

// Shutdown tears the viewer down. The scroll lock is released regardless
// of state so an abrupt teardown cannot leak a locked page.
func (c *Controller) Shutdown() {
	if c.state.Open {
		slog.Debug("lightbox torn down while open", slog.Int("current", c.state.Current))
	}
	c.state.Open = false
	c.lock.Release()
}

func (c *Controller) push() error {
	if err := c.presenter.SetVisible(c.state.Open); err != nil {
		return fmt.Errorf("push visibility to presenter: %w", err)
	}

	item, ok := c.index.At(c.state.Current)
	if !ok {
		return nil
	}

	if err := c.presenter.Render(c.state, item, c.index.Len()); err != nil {
		return fmt.Errorf("push render to presenter: %w", err)
	}
	return nil
}
