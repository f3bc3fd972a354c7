package catalog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/VeranoAtelier/verano-web/internal/frontmatter"
	"github.com/VeranoAtelier/verano-web/internal/gallerymd"
	"github.com/VeranoAtelier/verano-web/internal/storage"
	"github.com/yuin/goldmark"
)

type fakeSource struct {
	photos    map[string][]*storage.Photo
	pages     map[string]string
	listCalls int
}

func (f *fakeSource) ListAlbum(album string) ([]*storage.Photo, error) {
	f.listCalls++
	photos, ok := f.photos[album]
	if !ok {
		return nil, fmt.Errorf("album '%s' not in bucket", album)
	}
	return photos, nil
}

func (f *fakeSource) ReadAlbumPage(album string) (*frontmatter.Metadata, []byte, error) {
	page, ok := f.pages[album]
	if !ok {
		return nil, nil, fmt.Errorf("album page '%s' not in bucket", album)
	}
	return frontmatter.ParseFrontmatter([]byte(page))
}

func newTestCatalog() (*Catalog, *fakeSource) {
	source := &fakeSource{
		photos: map[string][]*storage.Photo{
			"weddings": {
				{FileName: "weddings/full/a.jpg", URL: "https://img.test/weddings/full/a.jpg", Alt: "First dance", Caption: "Liguria"},
				{FileName: "weddings/full/b.jpg", URL: "https://img.test/weddings/full/b.jpg", Alt: "Rings"},
			},
			"empty": {},
		},
		pages: map[string]string{
			"weddings": "---\ntitle: Coastal Weddings\nshortDescription: A week on the coast.\n---\nSalt air and golden hour.\n",
		},
	}
	md := goldmark.New(goldmark.WithExtensions(gallerymd.NewGalleryExtension()))
	return NewCatalog(source, md), source
}

func TestPageBuildsHTMLAndIndexTogether(t *testing.T) {
	c, _ := newTestCatalog()

	page, err := c.Page("weddings")
	if err != nil {
		t.Fatal(err)
	}

	if page.Meta.Title != "Coastal Weddings" {
		t.Errorf("bad page title: %q", page.Meta.Title)
	}
	if !strings.Contains(string(page.HTML), "Salt air and golden hour.") {
		t.Errorf("intro markdown lost: %s", page.HTML)
	}
	if page.Index.Len() != 2 {
		t.Fatalf("want 2 indexed items, got %d", page.Index.Len())
	}

	first, _ := page.Index.At(0)
	if first.SourceURL != "https://img.test/weddings/full/a.jpg" {
		t.Errorf("index does not match page markup: %+v", first)
	}
	if first.AltText != "First dance" || first.Caption != "Liguria" {
		t.Errorf("photo attributes lost on the way to the index: %+v", first)
	}
}

func TestPageIsCachedUntilInvalidated(t *testing.T) {
	c, source := newTestCatalog()

	if _, err := c.Page("weddings"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Page("weddings"); err != nil {
		t.Fatal(err)
	}
	if source.listCalls != 1 {
		t.Errorf("cached page rebuilt anyway: %d list calls", source.listCalls)
	}

	c.Invalidate("weddings")
	if _, err := c.Page("weddings"); err != nil {
		t.Fatal(err)
	}
	if source.listCalls != 2 {
		t.Errorf("invalidation did not trigger rebuild: %d list calls", source.listCalls)
	}
}

func TestAlbumWithoutPageDocumentStillBuilds(t *testing.T) {
	c, _ := newTestCatalog()
	c.source.(*fakeSource).photos["portraits"] = []*storage.Photo{
		{FileName: "portraits/full/a.jpg", URL: "https://img.test/portraits/full/a.jpg", Alt: "Studio"},
	}

	page, err := c.Page("portraits")
	if err != nil {
		t.Fatal(err)
	}
	if page.Meta.Title != "portraits" {
		t.Errorf("fallback title missing: %q", page.Meta.Title)
	}
	if page.Index.Len() != 1 {
		t.Errorf("want 1 indexed item, got %d", page.Index.Len())
	}
}

func TestEmptyAlbumScansToEmptyIndex(t *testing.T) {
	c, _ := newTestCatalog()

	page, err := c.Page("empty")
	if err != nil {
		t.Fatal(err)
	}
	if page.Index.Len() != 0 {
		t.Errorf("empty album should index to zero items, got %d", page.Index.Len())
	}
	if strings.Contains(string(page.HTML), "data-gallery") {
		t.Errorf("empty album should not emit a grid: %s", page.HTML)
	}
}

func TestPipeInCaptionCannotBreakTheBlock(t *testing.T) {
	c, source := newTestCatalog()
	source.photos["weddings"][0].Caption = "Genoa | Liguria"
	c.Invalidate("weddings")

	page, err := c.Page("weddings")
	if err != nil {
		t.Fatal(err)
	}
	first, _ := page.Index.At(0)
	if first.Caption != "Genoa / Liguria" {
		t.Errorf("pipe not sanitized: %q", first.Caption)
	}
	if page.Index.Len() != 2 {
		t.Errorf("caption pipe split the listing: %d items", page.Index.Len())
	}
}
