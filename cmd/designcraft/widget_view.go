package main

import (
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/lutherj1178-hash/printscreations-designer/internal/design"
	"github.com/lutherj1178-hash/printscreations-designer/internal/product"
	"github.com/lutherj1178-hash/printscreations-designer/internal/render"
)

// Form field names for the editor controls. Launch parameters (product_id
// and friends) are read separately by the product resolver.
const (
	fieldText       = "text"
	fieldTextColor  = "text_color"
	fieldTextSize   = "text_size"
	fieldTextFont   = "text_font"
	fieldOverlay    = "overlay_image"
	fieldBackground = "bg_color"
	fieldPreset     = "preset"
)

// WidgetView aggregates everything the widget page and its preview fragment
// need to render.
type WidgetView struct {
	Product      product.Context
	State        design.State
	Presets      []design.Preset
	ActivePreset string
	Fonts        []string
	MinSize      int
	MaxSize      int
	PreviewURI   template.URL
	CanSubmit    bool
	Demo         bool
	Query        string
}

// buildWidgetView derives the page state from query/form parameters. The
// widget is stateless between requests; every fragment request carries the
// full design state.
func buildWidgetView(values url.Values) WidgetView {
	if values == nil {
		values = url.Values{}
	}

	pctx := product.ResolveWithOrigin(values, storeOrigin)
	store := design.NewStore()
	st := store.Apply(designUpdate(values))

	activePreset := ""
	if id := strings.TrimSpace(values.Get(fieldPreset)); id != "" {
		if p, ok := design.FindPreset(id); ok {
			st = store.ApplyPreset(p)
			activePreset = p.ID
		}
	}

	return WidgetView{
		Product:      pctx,
		State:        st,
		Presets:      design.Presets(),
		ActivePreset: activePreset,
		Fonts:        design.SupportedFonts,
		MinSize:      design.MinTextSize,
		MaxSize:      design.MaxTextSize,
		PreviewURI:   template.URL(render.Preview(st)),
		CanSubmit:    st.HasText(),
		Demo:         pctx.Demo(),
		Query:        widgetQuery(values, st, activePreset),
	}
}

// designUpdate translates submitted form fields into a partial state change.
// Absent fields stay at their defaults; the store clamps and normalizes.
func designUpdate(values url.Values) design.Update {
	var u design.Update
	if values.Has(fieldText) {
		text := values.Get(fieldText)
		u.Text = &text
	}
	if c := readColor(values, fieldTextColor); c != "" {
		u.TextColor = &c
	}
	if values.Has(fieldTextSize) {
		if n, err := strconv.Atoi(strings.TrimSpace(values.Get(fieldTextSize))); err == nil {
			u.TextSize = &n
		}
	}
	if f := strings.TrimSpace(values.Get(fieldTextFont)); f != "" {
		u.TextFont = &f
	}
	if values.Has(fieldOverlay) {
		overlay := strings.TrimSpace(values.Get(fieldOverlay))
		u.OverlayImage = &overlay
	}
	if c := readColor(values, fieldBackground); c != "" {
		u.BackgroundColor = &c
	}
	return u
}

// readColor returns a well-formed hex color from the form, or "" when the
// field is absent or malformed.
func readColor(values url.Values, key string) string {
	v := strings.ToLower(strings.TrimSpace(values.Get(key)))
	if len(v) != 4 && len(v) != 7 {
		return ""
	}
	if v[0] != '#' {
		return ""
	}
	for _, r := range v[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f':
		default:
			return ""
		}
	}
	return v
}

// widgetQuery encodes the canonical query string for the current view so
// fragment responses can push a reloadable URL.
func widgetQuery(launch url.Values, st design.State, activePreset string) string {
	q := url.Values{}
	for _, key := range []string{
		product.ParamID,
		product.ParamTitle,
		product.ParamCategory,
		product.ParamPrice,
		product.ParamImage,
		product.ParamStoreURL,
	} {
		if v := strings.TrimSpace(launch.Get(key)); v != "" {
			q.Set(key, v)
		}
	}
	if st.Text != "" {
		q.Set(fieldText, st.Text)
	}
	q.Set(fieldTextColor, st.TextColor)
	q.Set(fieldTextSize, strconv.Itoa(st.TextSize))
	q.Set(fieldTextFont, st.TextFont)
	q.Set(fieldBackground, st.BackgroundColor)
	if st.OverlayImage != "" {
		q.Set(fieldOverlay, st.OverlayImage)
	}
	if activePreset != "" {
		q.Set(fieldPreset, activePreset)
	}
	return q.Encode()
}

// formBool reads a browser-reported capability flag.
func formBool(values url.Values, key string) bool {
	switch strings.ToLower(strings.TrimSpace(values.Get(key))) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}
