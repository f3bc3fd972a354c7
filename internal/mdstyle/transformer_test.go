package mdstyle

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
)

func TestTransformerStampsSiteClasses(t *testing.T) {
	md := goldmark.New(goldmark.WithExtensions(NewSiteStyleExtension()))

	var buf bytes.Buffer
	source := "# Atelier\n\nA quiet room.\n\n- film\n- digital\n\n> light first\n"
	if err := md.Convert([]byte(source), &buf); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`<h1 class="site-heading site-heading-hero"`,
		`<p class="site-copy"`,
		`<ul class="site-copy site-list"`,
		`<blockquote class="site-quote"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}
