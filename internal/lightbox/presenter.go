package lightbox

import (
	"fmt"

	"github.com/VeranoAtelier/verano-web/internal/gallery"
	"github.com/VeranoAtelier/verano-web/internal/templatemanager"
	"github.com/VeranoAtelier/verano-web/locale"
)

// Presenter projects controller state onto a visible surface. It holds no
// state of its own beyond the last rendered output.
type Presenter interface {
	SetVisible(open bool) error
	Render(state State, item gallery.Item, total int) error
}

// ModalTemplate is the template manager name the modal presenter renders
// through.
const ModalTemplate = "lightbox-modal"

// ModalPresenter renders the overlay surface (background, close control,
// prev/next controls, image, caption, "current / total" counter) as an
// HTML partial. One presenter serves a whole session; it is never
// recreated between open/close/next/prev cycles.
type ModalPresenter struct {
	tm      *templatemanager.TemplateManager
	l       *locale.LocaleConfig
	visible bool
	html    []byte
}

func NewModalPresenter(tm *templatemanager.TemplateManager, l *locale.LocaleConfig) *ModalPresenter {
	return &ModalPresenter{tm: tm, l: l}
}

func (p *ModalPresenter) SetVisible(open bool) error {
	p.visible = open
	return nil
}

// Render projects one state snapshot into the modal partial. The counter
// pair is 1-based for display even though addressing is 0-based.
func (p *ModalPresenter) Render(state State, item gallery.Item, total int) error {
	content, err := p.tm.Render(ModalTemplate, map[string]any{
		"Visible":  p.visible,
		"Src":      item.SourceURL,
		"Alt":      item.AltText,
		"Caption":  item.Caption,
		"Position": state.Current + 1,
		"Total":    total,
		"L":        p.l,
	})
	if err != nil {
		return fmt.Errorf("render lightbox modal: %w", err)
	}

	p.html = content
	return nil
}

// HTML returns the last rendered modal partial; empty until the first
// render push.
func (p *ModalPresenter) HTML() []byte {
	return p.html
}

func (p *ModalPresenter) Visible() bool {
	return p.visible
}
