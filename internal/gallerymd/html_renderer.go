package gallerymd

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

type GalleryHTMLRenderer struct {
	html.Config
}

func NewGalleryHTMLRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &GalleryHTMLRenderer{
		Config: html.NewConfig(),
	}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

func (r *GalleryHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindGalleryBlock, r.renderGallery)
}

// renderGallery emits the gallery grid with the item contract the lightbox
// scanner and input bindings consume: a data-gallery root, one
// data-gallery-item anchor per image carrying data-full/data-alt/
// data-caption and a numbered input target.
func (r *GalleryHTMLRenderer) renderGallery(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		gallery := n.(*GalleryBlock)

		if len(gallery.Images) == 0 {
			return ast.WalkContinue, nil
		}

		galleryID := generateDivId(8)

		var elements []string
		for i, img := range gallery.Images {
			captionAttribute := ""
			if img.Caption != "" {
				captionAttribute = fmt.Sprintf(` data-caption="%s"`, escapeHTML(img.Caption))
			}

			elements = append(elements, fmt.Sprintf(`
	<a href="%s" class="gallery-item gallery-item-%s" data-gallery-item
	    data-full="%s" data-alt="%s"%s data-lightbox-target="item:%d">
		<img src="%s" alt="%s" loading="lazy" />
		<span class="gallery-item-index">%d</span>
	</a>`, escapeHTML(img.URL), galleryID, escapeHTML(img.URL), escapeHTML(img.Alt), captionAttribute, i, escapeHTML(thumbnailURL(img.URL)), escapeHTML(img.Alt), i+1))
		}

		w.WriteString(fmt.Sprintf(`
<div class="items-center flex flex-col">
	<div id="gallery-%s" class="gallery-grid" data-gallery>
		%s
	</div>
</div>`, galleryID, strings.Join(elements, "\n")))
	}

	return ast.WalkContinue, nil
}

// thumbnailURL maps a full-resolution object path onto its webp thumbnail
// rendition.
func thumbnailURL(url string) string {
	withoutExt := url
	if idx := strings.LastIndex(url, "."); idx > strings.LastIndex(url, "/") {
		withoutExt = url[:idx]
	}
	return strings.Replace(withoutExt, "/full/", "/thumb/", 1) + ".webp"
}

func generateDivId(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz"
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[seededRand.Intn(len(charset))]
	}
	return string(b)
}

func escapeHTML(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return replacer.Replace(s)
}
