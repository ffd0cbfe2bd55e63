// Package render derives the text-overlay preview image from design state.
// The output is the overlay layer only; the product mockup, if any, is
// composed by the presentation layer.
package render

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/lutherj1178-hash/printscreations-designer/internal/design"
)

// Canvas is the fixed square preview size in SVG user units.
const Canvas = 300

// PlaceholderLabel substitutes for empty text so the preview is never blank.
const PlaceholderLabel = "Your Design"

// DataURIPrefix marks the encoding of Preview output. Consumers treat the
// whole string as an opaque displayable image reference.
const DataURIPrefix = "data:image/svg+xml,"

// textPolicy strips any markup from user text before it enters the SVG.
// StrictPolicy entity-escapes what remains, so the output needs no second
// escaping pass.
var textPolicy = bluemonday.StrictPolicy()

// Preview renders the design state as a self-contained SVG data URI.
// It is a pure function: identical input yields byte-identical output.
func Preview(st design.State) string {
	return DataURIPrefix + url.PathEscape(SVG(st))
}

// SVG renders the raw vector markup for the design state.
func SVG(st design.State) string {
	label := st.Text
	if strings.TrimSpace(label) == "" {
		label = PlaceholderLabel
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, Canvas, Canvas)
	fmt.Fprintf(&buf, `<rect width="%d" height="%d" fill="%s"/>`, Canvas, Canvas, escapeAttr(st.BackgroundColor))
	fmt.Fprintf(&buf,
		`<text x="%d" y="%d" text-anchor="middle" dominant-baseline="central" fill="%s" font-family="%s" font-size="%d">%s</text>`,
		Canvas/2, Canvas/2,
		escapeAttr(st.TextColor),
		escapeAttr(st.TextFont),
		design.ClampSize(st.TextSize),
		textPolicy.Sanitize(label),
	)
	buf.WriteString(`</svg>`)
	return buf.String()
}

func escapeAttr(s string) string {
	r := strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
