package gallery

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
)

const itemMarkerAttr = "data-gallery-item"

// Scan enumerates the gallery items declared in a page. rootSelector picks
// the gallery container ("#id", ".class" or a tag name); every descendant
// carrying the data-gallery-item marker becomes one item, in document
// order. Each item reads data-full, data-alt and data-caption, falling
// back to the first nested <img>'s src and alt when those are absent.
//
// A page without the root container or without any marked items scans to
// an empty index, not an error.
func Scan(r io.Reader, rootSelector string) (*Index, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse gallery page markup: %w", err)
	}

	root := findRoot(doc, rootSelector)
	if root == nil {
		slog.Debug("gallery root not found in page, scanning to empty index", slog.String("selector", rootSelector))
		return NewIndex(nil), nil
	}

	items := make([]Item, 0)
	walk(root, func(n *html.Node) {
		if n == root || !hasAttr(n, itemMarkerAttr) {
			return
		}
		items = append(items, itemFromNode(n))
	})

	return NewIndex(items), nil
}

func itemFromNode(n *html.Node) Item {
	item := Item{
		SourceURL: attrValue(n, "data-full"),
		AltText:   attrValue(n, "data-alt"),
		Caption:   attrValue(n, "data-caption"),
	}

	if item.SourceURL != "" && item.AltText != "" {
		return item
	}

	img := findTag(n, "img")
	if img == nil {
		return item
	}
	if item.SourceURL == "" {
		item.SourceURL = attrValue(img, "src")
	}
	if item.AltText == "" {
		item.AltText = attrValue(img, "alt")
	}
	return item
}

func findRoot(doc *html.Node, selector string) *html.Node {
	var match func(n *html.Node) bool
	switch {
	case strings.HasPrefix(selector, "#"):
		id := strings.TrimPrefix(selector, "#")
		match = func(n *html.Node) bool { return attrValue(n, "id") == id }
	case strings.HasPrefix(selector, "."):
		class := strings.TrimPrefix(selector, ".")
		match = func(n *html.Node) bool {
			for _, c := range strings.Fields(attrValue(n, "class")) {
				if c == class {
					return true
				}
			}
			return false
		}
	default:
		match = func(n *html.Node) bool { return n.Data == selector }
	}

	var found *html.Node
	walk(doc, func(n *html.Node) {
		if found == nil && match(n) {
			found = n
		}
	})
	return found
}

func findTag(root *html.Node, tag string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) {
		if found == nil && n.Data == tag {
			found = n
		}
	})
	return found
}

// walk visits element nodes under root in depth-first document order.
func walk(root *html.Node, visit func(n *html.Node)) {
	if root.Type == html.ElementNode {
		visit(root)
	}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		walk(child, visit)
	}
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
