// Package product resolves the immutable product identity handed to the
// widget by the host storefront at launch time.
package product

import (
	"net/url"
	"strings"
)

// Launch parameter keys recognized by Resolve. All are optional.
const (
	ParamID       = "product_id"
	ParamTitle    = "product_title"
	ParamCategory = "product_type"
	ParamPrice    = "product_price"
	ParamImage    = "product_image"
	ParamStoreURL = "store_url"
)

// DefaultOrigin is the canonical storefront origin used when the host does
// not pass store_url.
const DefaultOrigin = "https://printscreations.com"

// defaults is the single source of truth for launch-parameter fallbacks.
// Keys absent from this table default to the empty string.
var defaults = map[string]string{
	ParamTitle:    "Custom Product",
	ParamCategory: "Product",
	ParamPrice:    "25.00",
	ParamStoreURL: DefaultOrigin,
}

// Context is the product identity for one widget session. It is resolved
// once at startup and treated as read-only afterwards.
type Context struct {
	ID              string
	Title           string
	Category        string
	Price           string
	PreviewImageURL string
	OriginURL       string
}

// Resolve reads the six launch parameters from values, substituting the
// documented default for any key that is absent or empty. It never fails;
// a missing product id simply yields a demo-mode context.
func Resolve(values url.Values) Context {
	return ResolveWithOrigin(values, DefaultOrigin)
}

// ResolveWithOrigin resolves like Resolve but substitutes origin as the
// store_url fallback, so a deployment can point the widget at a storefront
// other than the canonical one. An empty origin falls back to DefaultOrigin;
// an explicit store_url launch parameter still wins.
func ResolveWithOrigin(values url.Values, origin string) Context {
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	if origin == "" {
		origin = DefaultOrigin
	}
	resolved := strings.TrimSpace(values.Get(ParamStoreURL))
	if resolved == "" {
		resolved = origin
	}
	return Context{
		ID:              param(values, ParamID),
		Title:           param(values, ParamTitle),
		Category:        param(values, ParamCategory),
		Price:           param(values, ParamPrice),
		PreviewImageURL: param(values, ParamImage),
		OriginURL:       strings.TrimRight(resolved, "/"),
	}
}

// Demo reports whether the widget should present the placeholder screen
// instead of the interactive editor. An empty product id is the only signal.
func (c Context) Demo() bool {
	return c.ID == ""
}

// Default returns the documented fallback for a launch parameter key.
func Default(key string) string {
	return defaults[key]
}

func param(values url.Values, key string) string {
	if v := strings.TrimSpace(values.Get(key)); v != "" {
		return v
	}
	return defaults[key]
}
