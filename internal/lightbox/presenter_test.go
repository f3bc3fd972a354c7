package lightbox

import (
	"strings"
	"testing"

	"github.com/VeranoAtelier/verano-web/internal/gallery"
	"github.com/VeranoAtelier/verano-web/internal/templatemanager"
	"github.com/VeranoAtelier/verano-web/locale"
)

const testModalTemplate = `<div class="lightbox-overlay{{if .Visible}} open lightbox-enter{{end}}"{{if .Visible}} data-scroll-lock="held"{{end}}>
<img src="{{.Src}}" alt="{{.Alt}}" />
<figcaption>{{.Caption}}</figcaption>
<span class="lightbox-counter">{{.Position}} {{.L.Lightbox.CounterOf}} {{.Total}}</span>
</div>`

func newTestPresenter(t *testing.T) *ModalPresenter {
	t.Helper()

	tm, err := templatemanager.NewTemplateManager()
	if err != nil {
		t.Fatal(err)
	}
	if err := tm.AddString(ModalTemplate, testModalTemplate); err != nil {
		t.Fatal(err)
	}

	l := &locale.LocaleConfig{}
	l.Lightbox.CounterOf = "/"
	return NewModalPresenter(tm, l)
}

func TestModalRendersCounterOneBased(t *testing.T) {
	p := newTestPresenter(t)

	if err := p.SetVisible(true); err != nil {
		t.Fatal(err)
	}
	item := gallery.Item{SourceURL: "https://img.test/full/b.jpg", AltText: "Portrait B", Caption: "Second"}
	if err := p.Render(State{Current: 1, Open: true}, item, 3); err != nil {
		t.Fatal(err)
	}

	html := string(p.HTML())
	if !strings.Contains(html, "2 / 3") {
		t.Errorf("counter must be 1-based: %s", html)
	}
	if !strings.Contains(html, `src="https://img.test/full/b.jpg"`) {
		t.Errorf("image source missing: %s", html)
	}
	if !strings.Contains(html, `alt="Portrait B"`) {
		t.Errorf("alt text missing: %s", html)
	}
	if !strings.Contains(html, "<figcaption>Second</figcaption>") {
		t.Errorf("caption missing: %s", html)
	}
}

func TestModalVisibilityAndEntranceCue(t *testing.T) {
	p := newTestPresenter(t)
	item := gallery.Item{SourceURL: "a.jpg"}

	p.SetVisible(true)
	if err := p.Render(State{Current: 0, Open: true}, item, 1); err != nil {
		t.Fatal(err)
	}
	open := string(p.HTML())
	if !strings.Contains(open, "lightbox-enter") {
		t.Errorf("open render lacks entrance cue: %s", open)
	}
	if !strings.Contains(open, `data-scroll-lock="held"`) {
		t.Errorf("open render lacks scroll lock presentation: %s", open)
	}

	p.SetVisible(false)
	if err := p.Render(State{Current: 0, Open: false}, item, 1); err != nil {
		t.Fatal(err)
	}
	closed := string(p.HTML())
	if strings.Contains(closed, "lightbox-enter") || strings.Contains(closed, "data-scroll-lock") {
		t.Errorf("closed render still presents as open: %s", closed)
	}
}

func TestModalDrivenByController(t *testing.T) {
	p := newTestPresenter(t)
	index := gallery.NewIndex([]gallery.Item{
		{SourceURL: "a.jpg"}, {SourceURL: "b.jpg"}, {SourceURL: "c.jpg"},
	})
	c := NewController(index, p, NewPageScrollLock())

	if err := c.Open(0); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(p.HTML()), "1 / 3") {
		t.Errorf("want counter 1 / 3, got %s", p.HTML())
	}

	c.Prev()
	if !strings.Contains(string(p.HTML()), "3 / 3") {
		t.Errorf("prev from first item should show 3 / 3, got %s", p.HTML())
	}
	if !strings.Contains(string(p.HTML()), `src="c.jpg"`) {
		t.Errorf("prev from first item should show last item, got %s", p.HTML())
	}

	c.Close()
	if p.Visible() {
		t.Error("presenter still visible after close")
	}
}
