package delivery

import (
	"time"

	"github.com/lutherj1178-hash/printscreations-designer/internal/cart"
)

// Typed message envelopes understood by the host page.
const (
	MessageTypeAddToCart = "DESIGNCRAFT_ADD_TO_CART"
	MessageTypeClose     = "DESIGNCRAFT_CLOSE"
)

// WildcardOrigin is used only for the payload-free cancel signal.
const WildcardOrigin = "*"

// Message is the envelope posted to the opener or parent window.
type Message struct {
	Type    string        `json:"type"`
	Payload *cart.Payload `json:"payload,omitempty"`
}

// Window abstracts the ambient window relationships so the classification
// algorithm can run without a real windowing environment.
type Window interface {
	// HasOpener reports whether this window was opened as a popup by
	// another page.
	HasOpener() bool
	// HasParent reports whether this window is embedded in a frame whose
	// parent differs from itself.
	HasParent() bool
	// PostToOpener sends a message to the launching page, scoped to
	// targetOrigin.
	PostToOpener(msg Message, targetOrigin string)
	// PostToParent sends a message to the embedding page, scoped to
	// targetOrigin.
	PostToParent(msg Message, targetOrigin string)
	// Navigate points the current window at rawURL.
	Navigate(rawURL string)
	// ScheduleClose closes the current window after the given delay. The
	// timer is one-shot with no cancellation path.
	ScheduleClose(after time.Duration)
}
