package catalog

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/VeranoAtelier/verano-web/internal/frontmatter"
	"github.com/VeranoAtelier/verano-web/internal/gallery"
	"github.com/VeranoAtelier/verano-web/internal/storage"
	"github.com/yuin/goldmark"
)

// GalleryRootSelector locates the gallery grid inside a rendered album
// page; the index scanner and the page templates agree on it.
const GalleryRootSelector = ".gallery-grid"

// AlbumSource is the slice of the storage client the catalog needs.
type AlbumSource interface {
	ListAlbum(album string) ([]*storage.Photo, error)
	ReadAlbumPage(album string) (*frontmatter.Metadata, []byte, error)
}

// AlbumPage is one fully built album: rendered body HTML plus the gallery
// index scanned back out of that same markup, so the index always
// describes exactly what the page shows.
type AlbumPage struct {
	Album string
	Meta  *frontmatter.Metadata
	HTML  []byte
	Index *gallery.Index
}

// Catalog builds and caches album pages. A rebuild after invalidation
// produces a fresh AlbumPage; a live page and its index never mutate.
type Catalog struct {
	source AlbumSource
	md     goldmark.Markdown

	mu    sync.RWMutex
	pages map[string]*AlbumPage
}

func NewCatalog(source AlbumSource, md goldmark.Markdown) *Catalog {
	return &Catalog{
		source: source,
		md:     md,
		pages:  make(map[string]*AlbumPage),
	}
}

func (c *Catalog) Page(album string) (*AlbumPage, error) {
	c.mu.RLock()
	page, ok := c.pages[album]
	c.mu.RUnlock()
	if ok {
		return page, nil
	}

	page, err := c.build(album)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.pages[album] = page
	c.mu.Unlock()
	return page, nil
}

// Invalidate drops the cached page so the next request rebuilds it.
func (c *Catalog) Invalidate(album string) {
	c.mu.Lock()
	delete(c.pages, album)
	c.mu.Unlock()
}

func (c *Catalog) build(album string) (*AlbumPage, error) {
	meta, intro, err := c.source.ReadAlbumPage(album)
	if err != nil {
		// An album without a page document still gets a gallery.
		meta = &frontmatter.Metadata{Title: album}
		intro = nil
	}
	if meta == nil {
		meta = &frontmatter.Metadata{Title: album}
	}

	photos, err := c.source.ListAlbum(album)
	if err != nil {
		return nil, fmt.Errorf("list '%s' album photos: %w", album, err)
	}

	markdown := composeAlbumMarkdown(intro, photos)

	var buf bytes.Buffer
	if err := c.md.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("convert '%s' album page from md to html: %w", album, err)
	}

	index, err := gallery.Scan(bytes.NewReader(buf.Bytes()), GalleryRootSelector)
	if err != nil {
		return nil, fmt.Errorf("scan '%s' album page for gallery items: %w", album, err)
	}

	return &AlbumPage{
		Album: album,
		Meta:  meta,
		HTML:  buf.Bytes(),
		Index: index,
	}, nil
}

// composeAlbumMarkdown appends the photo listing as a gallery block after
// the album's intro markdown. The pipe is the block's field separator, so
// it may not appear inside alt or caption text.
func composeAlbumMarkdown(intro []byte, photos []*storage.Photo) []byte {
	var b bytes.Buffer
	b.Write(intro)

	if len(photos) == 0 {
		return b.Bytes()
	}

	b.WriteString("\n\n{Gallery}\n")
	for _, photo := range photos {
		b.WriteString(photo.URL)
		b.WriteString(" | ")
		b.WriteString(sanitizeField(photo.Alt))
		b.WriteString(" | ")
		b.WriteString(sanitizeField(photo.Caption))
		b.WriteString("\n")
	}
	b.WriteString("{/Gallery}\n")

	return b.Bytes()
}

func sanitizeField(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "|", "/"))
}
