package mdstyle

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"
)

type SiteStyleExtension struct{}

func NewSiteStyleExtension() goldmark.Extender {
	return &SiteStyleExtension{}
}

func (e *SiteStyleExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithASTTransformers(
			util.Prioritized(&SiteStyleTransformer{}, 500),
		),
	)
}
