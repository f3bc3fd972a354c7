package lightbox

import (
	"log/slog"
	"strconv"
	"strings"
)

type EventKind int

const (
	PointerEvent EventKind = iota
	KeyEvent
)

// Event is one raw input occurrence as delivered by the page: a pointer
// activation on a named target, or a key press.
type Event struct {
	Kind   EventKind
	Target string // pointer events: "item:N", "overlay", "close", "prev", "next"
	Key    string // key events: "ArrowLeft", "ArrowRight", "Escape"
}

// InputRouter translates raw input events into controller commands. It
// carries no business logic: index extraction and target naming are the
// whole of its job. A handled event is one whose default behavior the
// page should suppress.
type InputRouter struct {
	controller *Controller
}

func NewInputRouter(controller *Controller) *InputRouter {
	return &InputRouter{controller: controller}
}

func (r *InputRouter) Route(ev Event) (handled bool, err error) {
	switch ev.Kind {
	case PointerEvent:
		return r.routePointer(ev)
	case KeyEvent:
		return r.routeKey(ev)
	}
	return false, nil
}

func (r *InputRouter) routePointer(ev Event) (bool, error) {
	switch {
	case strings.HasPrefix(ev.Target, "item:"):
		index, err := strconv.Atoi(strings.TrimPrefix(ev.Target, "item:"))
		if err != nil {
			slog.Debug("ignoring pointer event with malformed item target", slog.String("target", ev.Target))
			return false, nil
		}
		return true, r.controller.Apply(OpenCommand{Index: index})

	case ev.Target == "overlay", ev.Target == "close":
		return true, r.controller.Apply(CloseCommand{})

	case ev.Target == "prev":
		return true, r.controller.Apply(PrevCommand{})

	case ev.Target == "next":
		return true, r.controller.Apply(NextCommand{})
	}

	return false, nil
}

// routeKey ignores keyboard input entirely while the viewer is closed.
func (r *InputRouter) routeKey(ev Event) (bool, error) {
	if !r.controller.State().Open {
		return false, nil
	}

	switch ev.Key {
	case "ArrowLeft":
		return true, r.controller.Apply(PrevCommand{})
	case "ArrowRight":
		return true, r.controller.Apply(NextCommand{})
	case "Escape":
		return true, r.controller.Apply(CloseCommand{})
	}

	return false, nil
}
