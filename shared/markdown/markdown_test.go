package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	r := New()

	t.Run("markdown", func(t *testing.T) {
		assert.Equal(t, "<p><strong>bold</strong> and <em>it</em></p>", r.Render("**bold** and *it*"))
		assert.Equal(t, "<p><del>gone</del></p>", r.Render("~~gone~~"))
		assert.Contains(t, r.Render("```\ncode\n```"), "<pre><code>code\n</code></pre>")
	})

	t.Run("scripts are stripped", func(t *testing.T) {
		out := r.Render(`hi <script>alert(1)</script><img src=x onerror="alert(2)">`)
		assert.NotContains(t, out, "<script")
		assert.NotContains(t, out, "onerror")
		assert.Contains(t, out, "hi")
	})

	t.Run("links", func(t *testing.T) {
		out := r.Render("see https://example.com")
		assert.Contains(t, out, `href="https://example.com"`)
		assert.Contains(t, out, "nofollow")
		assert.NotContains(t, r.Render("[x](javascript:alert(1))"), "javascript:")
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", r.Render(""))
	})
}
