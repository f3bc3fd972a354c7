package gallerymd

import (
	"github.com/yuin/goldmark/ast"
)

// GalleryBlock represents a gallery block in the AST
type GalleryBlock struct {
	ast.BaseBlock
	Images []GalleryImage
}

type GalleryImage struct {
	URL     string
	Alt     string
	Caption string
}

var KindGalleryBlock = ast.NewNodeKind("GalleryBlock")

// Dump implements ast.Node.Dump
func (n *GalleryBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// Kind implements ast.Node.Kind
func (n *GalleryBlock) Kind() ast.NodeKind {
	return KindGalleryBlock
}
