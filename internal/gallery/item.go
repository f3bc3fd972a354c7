package gallery

// Item is one addressable image entry of a gallery: full-resolution
// source, accessibility text and an optional display caption. Items carry
// no id of their own; they are addressed by position inside an Index.
type Item struct {
	SourceURL string
	AltText   string
	Caption   string
}

// Index is the ordered set of items discovered in a page at scan time.
// It never changes after construction; if the page content changes at
// runtime the index is stale until the page is rebuilt.
type Index struct {
	items []Item
}

func NewIndex(items []Item) *Index {
	owned := make([]Item, len(items))
	copy(owned, items)
	return &Index{items: owned}
}

func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.items)
}

// At returns the item at position i, reporting false when i falls outside
// the index.
func (ix *Index) At(i int) (Item, bool) {
	if ix == nil || i < 0 || i >= len(ix.items) {
		return Item{}, false
	}
	return ix.items[i], true
}

func (ix *Index) Items() []Item {
	out := make([]Item, len(ix.items))
	copy(out, ix.items)
	return out
}
