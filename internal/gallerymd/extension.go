package gallerymd

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Extension that combines parser and renderer
type GalleryExtension struct{}

func NewGalleryExtension() goldmark.Extender {
	return &GalleryExtension{}
}

func (e *GalleryExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(NewGalleryParser(), 500),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(NewGalleryHTMLRenderer(), 500),
		),
	)
}
