package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	html := string(RenderMarkdown("# Hello\n\nSome **bold** text."))

	if !strings.Contains(html, "<h1") || !strings.Contains(html, "Hello") {
		t.Errorf("heading not rendered: %s", html)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("bold not rendered: %s", html)
	}
}

func TestRenderMarkdownDeterministic(t *testing.T) {
	source := "A paragraph with [a link](https://example.com) and `code`."

	first := RenderMarkdown(source)
	second := RenderMarkdown(source)

	if first != second {
		t.Errorf("rendering is not deterministic:\n%s\n%s", first, second)
	}
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	html := string(RenderMarkdown("hi <script>alert('x')</script> there"))

	if strings.Contains(html, "<script>") {
		t.Errorf("script tag survived sanitization: %s", html)
	}
}
