package frontmatter

import (
	"strings"
	"testing"
)

func TestParseFrontmatter(t *testing.T) {
	content := []byte(`---
title: Coastal Weddings
shortDescription: A week on the Ligurian coast.
cover: weddings/full/cover.jpg
featured: true
---
Intro paragraph.
`)

	meta, markdown, err := ParseFrontmatter(content)
	if err != nil {
		t.Fatal(err)
	}
	if meta == nil {
		t.Fatal("expected metadata")
	}
	if meta.Title != "Coastal Weddings" {
		t.Errorf("bad title: %q", meta.Title)
	}
	if !meta.Featured {
		t.Error("featured flag lost")
	}
	if !strings.Contains(string(markdown), "Intro paragraph.") {
		t.Errorf("markdown body lost: %q", markdown)
	}
}

func TestParseWithoutFrontmatter(t *testing.T) {
	content := []byte("Just a body.\n")
	meta, markdown, err := ParseFrontmatter(content)
	if err != nil {
		t.Fatal(err)
	}
	if meta != nil {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if string(markdown) != string(content) {
		t.Errorf("body altered: %q", markdown)
	}
}

func TestParseBrokenYAML(t *testing.T) {
	content := []byte("---\ntitle: [unclosed\n---\nbody\n")
	if _, _, err := ParseFrontmatter(content); err == nil {
		t.Fatal("expected error for broken yaml")
	}
}
