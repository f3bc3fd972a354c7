package lightbox

import (
	"errors"
	"testing"
)

func TestPointerOnItemOpens(t *testing.T) {
	c, _, _ := newTestController(3)
	router := NewInputRouter(c)

	handled, err := router.Route(Event{Kind: PointerEvent, Target: "item:2"})
	if err != nil {
		t.Fatal(err)
	}
	if !handled {
		t.Error("item activation must suppress default navigation")
	}

	state := c.State()
	if !state.Open || state.Current != 2 {
		t.Fatalf("bad state after item click: %+v", state)
	}
}

func TestPointerOnControls(t *testing.T) {
	c, _, _ := newTestController(3)
	router := NewInputRouter(c)

	router.Route(Event{Kind: PointerEvent, Target: "item:0"})

	if handled, err := router.Route(Event{Kind: PointerEvent, Target: "next"}); !handled || err != nil {
		t.Fatalf("next control: handled=%v err=%v", handled, err)
	}
	if got := c.State().Current; got != 1 {
		t.Errorf("next control did not advance, at %d", got)
	}

	if handled, err := router.Route(Event{Kind: PointerEvent, Target: "prev"}); !handled || err != nil {
		t.Fatalf("prev control: handled=%v err=%v", handled, err)
	}
	if got := c.State().Current; got != 0 {
		t.Errorf("prev control did not step back, at %d", got)
	}

	for _, target := range []string{"overlay", "close"} {
		router.Route(Event{Kind: PointerEvent, Target: "item:0"})
		if handled, err := router.Route(Event{Kind: PointerEvent, Target: target}); !handled || err != nil {
			t.Fatalf("%s: handled=%v err=%v", target, handled, err)
		}
		if c.State().Open {
			t.Errorf("click on %s did not close", target)
		}
	}
}

func TestKeyboardIgnoredWhileClosed(t *testing.T) {
	c, presenter, _ := newTestController(3)
	router := NewInputRouter(c)

	for _, key := range []string{"ArrowLeft", "ArrowRight", "Escape"} {
		handled, err := router.Route(Event{Kind: KeyEvent, Key: key})
		if err != nil {
			t.Fatal(err)
		}
		if handled {
			t.Errorf("key %s handled while closed", key)
		}
	}
	if len(presenter.renders) != 0 {
		t.Error("keyboard while closed pushed a render")
	}
}

func TestKeyboardWhileOpen(t *testing.T) {
	c, _, _ := newTestController(3)
	router := NewInputRouter(c)
	router.Route(Event{Kind: PointerEvent, Target: "item:1"})

	if handled, _ := router.Route(Event{Kind: KeyEvent, Key: "ArrowRight"}); !handled {
		t.Error("ArrowRight not handled while open")
	}
	if got := c.State().Current; got != 2 {
		t.Errorf("ArrowRight did not advance, at %d", got)
	}

	if handled, _ := router.Route(Event{Kind: KeyEvent, Key: "ArrowLeft"}); !handled {
		t.Error("ArrowLeft not handled while open")
	}
	if got := c.State().Current; got != 1 {
		t.Errorf("ArrowLeft did not step back, at %d", got)
	}

	if handled, _ := router.Route(Event{Kind: KeyEvent, Key: "Escape"}); !handled {
		t.Error("Escape not handled while open")
	}
	if c.State().Open {
		t.Error("Escape did not close")
	}

	if handled, _ := router.Route(Event{Kind: KeyEvent, Key: "Enter"}); handled {
		t.Error("unmapped key reported as handled")
	}
}

func TestMalformedTargetsAreUnhandled(t *testing.T) {
	c, _, _ := newTestController(3)
	router := NewInputRouter(c)

	for _, target := range []string{"item:", "item:x", "menu", ""} {
		handled, err := router.Route(Event{Kind: PointerEvent, Target: target})
		if err != nil {
			t.Fatalf("target %q: %v", target, err)
		}
		if handled {
			t.Errorf("target %q should not be handled", target)
		}
	}
}

func TestOutOfRangeItemTargetSurfacesError(t *testing.T) {
	c, _, _ := newTestController(3)
	router := NewInputRouter(c)

	handled, err := router.Route(Event{Kind: PointerEvent, Target: "item:9"})
	if !handled {
		t.Error("well-formed item target is the router's to handle")
	}
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("want ErrOutOfRange, got %v", err)
	}
}
