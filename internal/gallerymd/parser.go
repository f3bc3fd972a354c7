package gallerymd

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

type GalleryParser struct{}

func NewGalleryParser() parser.BlockParser {
	return &GalleryParser{}
}

func (p *GalleryParser) Trigger() []byte {
	return []byte{'{'}
}

func (p *GalleryParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, _ := reader.PeekLine()

	if !bytes.Equal(bytes.TrimSpace(line), []byte("{Gallery}")) {
		return nil, parser.NoChildren
	}

	return &GalleryBlock{}, parser.NoChildren
}

func (p *GalleryParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if len(line) == 0 || segment.Len() == 0 {
		return parser.Continue | parser.NoChildren
	}

	trimmed := bytes.TrimSpace(line)
	if bytes.Equal(trimmed, []byte("{/Gallery}")) {
		reader.AdvanceLine()
		return parser.Close
	}
	if len(trimmed) == 0 {
		return parser.Continue | parser.NoChildren
	}

	gallery := node.(*GalleryBlock)

	// Each line declares one image: url | alt | caption, the last two
	// optional.
	parts := bytes.SplitN(trimmed, []byte{'|'}, 3)

	image := GalleryImage{URL: string(bytes.TrimSpace(parts[0]))}
	if len(parts) > 1 {
		image.Alt = string(bytes.TrimSpace(parts[1]))
	}
	if len(parts) > 2 {
		image.Caption = string(bytes.TrimSpace(parts[2]))
	}

	gallery.Images = append(gallery.Images, image)

	return parser.Continue | parser.NoChildren
}

func (p *GalleryParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
}

func (p *GalleryParser) CanInterruptParagraph() bool {
	return true
}

func (p *GalleryParser) CanAcceptIndentedLine() bool {
	return false
}
