// Package delivery classifies the widget's relationship to an embedding host
// and transmits the finalized customization payload through the appropriate
// mechanism.
package delivery

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lutherj1178-hash/printscreations-designer/internal/cart"
	"github.com/lutherj1178-hash/printscreations-designer/internal/product"
)

// DefaultCloseDelay is how long a popup stays open after posting its result,
// giving the opener time to process the message before teardown.
const DefaultCloseDelay = 500 * time.Millisecond

// ErrEmptyDesignText rejects submission of designs without visible text.
// This is the only business validation in the widget.
var ErrEmptyDesignText = errors.New("delivery: design text is empty")

// Route identifies which delivery mechanism handled a payload.
type Route string

const (
	// RouteOpener delivered via postMessage to the launching popup opener.
	RouteOpener Route = "opener"
	// RouteParent delivered via postMessage to the embedding frame parent.
	RouteParent Route = "parent"
	// RouteNavigate fell back to direct cart-add navigation. Lossy: only a
	// subset of the payload survives as query parameters.
	RouteNavigate Route = "navigate"
	// RouteNone means the guard stopped the submission.
	RouteNone Route = ""
)

// ChannelDeps wires the channel's dependencies. Window is required.
type ChannelDeps struct {
	Window     Window
	CloseDelay time.Duration
	Logger     *zap.Logger
}

// Channel performs exactly one outbound transmission per Deliver call.
type Channel struct {
	win        Window
	closeDelay time.Duration
	logger     *zap.Logger
}

// NewChannel constructs a Channel from deps, defaulting the close delay and
// logger.
func NewChannel(deps ChannelDeps) (*Channel, error) {
	if deps.Window == nil {
		return nil, errors.New("delivery: window capability is required")
	}
	delay := deps.CloseDelay
	if delay <= 0 {
		delay = DefaultCloseDelay
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Channel{win: deps.Window, closeDelay: delay, logger: logger}, nil
}

// Deliver classifies the window relationship and transmits the payload,
// evaluated in strict order with first match winning: popup opener, frame
// parent, then standalone navigation fallback. Empty or whitespace-only
// design text aborts before any transmission.
func (c *Channel) Deliver(payload cart.Payload, origin string) (Route, error) {
	if strings.TrimSpace(payload.CustomText) == "" {
		return RouteNone, ErrEmptyDesignText
	}
	origin = normalizeOrigin(origin)
	msg := Message{Type: MessageTypeAddToCart, Payload: &payload}

	switch {
	case c.win.HasOpener():
		c.win.PostToOpener(msg, origin)
		c.win.ScheduleClose(c.closeDelay)
		c.logger.Info("delivered to opener",
			zap.String("origin", origin),
			zap.String("design_id", payload.DesignID),
			zap.Duration("close_after", c.closeDelay))
		return RouteOpener, nil
	case c.win.HasParent():
		c.win.PostToParent(msg, origin)
		c.logger.Info("delivered to parent",
			zap.String("origin", origin),
			zap.String("design_id", payload.DesignID))
		return RouteParent, nil
	default:
		target := FallbackURL(origin, payload)
		c.win.Navigate(target)
		c.logger.Info("no host relationship, navigating to cart",
			zap.String("url", target),
			zap.String("design_id", payload.DesignID))
		return RouteNavigate, nil
	}
}

// Cancel posts the payload-free close signal to the parent window with a
// wildcard target. It skips the popup/frame classification entirely and is a
// no-op when no parent exists.
func (c *Channel) Cancel() {
	if !c.win.HasParent() {
		return
	}
	c.win.PostToParent(Message{Type: MessageTypeClose}, WildcardOrigin)
	c.logger.Debug("cancel signal sent to parent")
}

// FallbackURL builds the direct cart-add navigation target used when no host
// relationship exists. Property keys keep their bracketed shape; spaces and
// values are percent-encoded.
func FallbackURL(origin string, payload cart.Payload) string {
	origin = normalizeOrigin(origin)
	return fmt.Sprintf(
		"%s/cart/add?id=%s&quantity=%d&properties[Design%%20ID]=%s&properties[Customized%%20Product]=Yes&properties[Custom%%20Text]=%s",
		origin,
		encodeComponent(payload.VariantID),
		payload.Quantity,
		encodeComponent(payload.DesignID),
		encodeComponent(payload.CustomText),
	)
}

// normalizeOrigin falls back to the canonical storefront when the resolver
// produced no origin, mirroring the defaulting table in internal/product.
func normalizeOrigin(origin string) string {
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	if origin == "" {
		return product.DefaultOrigin
	}
	return origin
}

// encodeComponent percent-encodes a query component, using %20 for spaces.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
