package mdstyle

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// SiteStyleTransformer stamps the site's stylesheet classes onto rendered
// markdown so storage-hosted page bodies match the hand-written templates.
type SiteStyleTransformer struct{}

func (t *SiteStyleTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			classes := map[int]string{
				1: "site-heading site-heading-hero",
				2: "site-heading",
				3: "site-heading site-heading-minor",
			}
			if class, ok := classes[node.Level]; ok {
				node.SetAttribute([]byte("class"), []byte(class))
			}

		case *ast.Paragraph:
			node.SetAttribute([]byte("class"), []byte("site-copy"))

		case *ast.List:
			node.SetAttribute([]byte("class"), []byte("site-copy site-list"))

		case *ast.Blockquote:
			node.SetAttribute([]byte("class"), []byte("site-quote"))
		}

		return ast.WalkContinue, nil
	})
}
