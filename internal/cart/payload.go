// Package cart produces the finalized customization record handed back to
// the host storefront at submit time.
package cart

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lutherj1178-hash/printscreations-designer/internal/design"
	"github.com/lutherj1178-hash/printscreations-designer/internal/product"
	"github.com/lutherj1178-hash/printscreations-designer/internal/render"
)

const designIDPrefix = "design_"

// Payload is immutable once built. It is a pure function of a
// (ProductContext, DesignState) pair plus a generated id and timestamp.
type Payload struct {
	VariantID         string       `json:"variantId"`
	Quantity          int          `json:"quantity"`
	DesignID          string       `json:"designId"`
	PreviewImage      string       `json:"previewImage"`
	CustomText        string       `json:"customText"`
	PrintInstructions string       `json:"printInstructions"`
	DesignData        design.State `json:"designData"`
	Price             string       `json:"price"`
}

// BuilderDeps wires the payload builder's injectable dependencies. Zero
// values fall back to the wall clock and a ulid generator.
type BuilderDeps struct {
	Clock func() time.Time
	NewID func(t time.Time) string
}

// Builder assembles cart payloads. The zero-dependency form is obtained via
// NewBuilder(BuilderDeps{}).
type Builder struct {
	clock func() time.Time
	newID func(t time.Time) string
}

// NewBuilder constructs a Builder, substituting defaults for nil deps.
func NewBuilder(deps BuilderDeps) *Builder {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	newID := deps.NewID
	if newID == nil {
		newID = func(t time.Time) string {
			return ulid.MustNew(ulid.Timestamp(t), rand.Reader).String()
		}
	}
	return &Builder{clock: clock, newID: newID}
}

// Build derives the payload from the current product context and design
// snapshot. The preview image is rendered on demand, never cached.
func (b *Builder) Build(ctx product.Context, st design.State) Payload {
	now := b.clock()
	return Payload{
		VariantID:         ctx.ID,
		Quantity:          1,
		DesignID:          designIDPrefix + b.newID(now),
		PreviewImage:      render.Preview(st),
		CustomText:        st.Text,
		PrintInstructions: Instructions(st),
		DesignData:        st,
		Price:             ctx.Price,
	}
}

// Instructions composes the human-readable print summary.
func Instructions(st design.State) string {
	return fmt.Sprintf("Font: %s, Size: %dpx, Color: %s", st.TextFont, st.TextSize, st.TextColor)
}
