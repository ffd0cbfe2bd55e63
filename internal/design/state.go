// Package design holds the single mutable customization record for a widget
// session and the operations that change it.
package design

import "strings"

// Text size bounds enforced at the mutation boundary. The slider in the
// editor is bounded to the same range, but the store clamps defensively so
// programmatic callers cannot bypass the invariant.
const (
	MinTextSize = 12
	MaxTextSize = 72
)

// SupportedFonts is the enumerated set offered by the editor. Apply accepts
// unrecognized family names as free text; NormalizeFont only canonicalizes
// casing for members of this set.
var SupportedFonts = []string{
	"Arial",
	"Georgia",
	"Times New Roman",
	"Helvetica",
	"Courier New",
	"Verdana",
}

// State is the complete set of user-chosen customization parameters at a
// point in time. One instance exists per session; it is never persisted.
type State struct {
	Text            string `json:"text"`
	TextColor       string `json:"textColor"`
	TextSize        int    `json:"textSize"`
	TextFont        string `json:"textFont"`
	OverlayImage    string `json:"image,omitempty"`
	BackgroundColor string `json:"backgroundColor"`
}

// Update is a partial state change. Nil fields leave the current value
// untouched.
type Update struct {
	Text            *string
	TextColor       *string
	TextSize        *int
	TextFont        *string
	OverlayImage    *string
	BackgroundColor *string
}

// Store owns the session's design state. All mutations funnel through Apply
// so the size clamp holds no matter who the caller is.
type Store struct {
	state State
}

// NewStore returns a store initialized to the startup defaults.
func NewStore() *Store {
	return &Store{state: Defaults()}
}

// Defaults returns the fixed startup state.
func Defaults() State {
	return State{
		Text:            "",
		TextColor:       "#000000",
		TextSize:        24,
		TextFont:        "Arial",
		BackgroundColor: "#ffffff",
	}
}

// State returns a snapshot of the current design state.
func (s *Store) State() State {
	return s.state
}

// Apply merges a partial update into the current state, clamping TextSize
// into [MinTextSize, MaxTextSize] and normalizing the font family. It never
// fails; out-of-range input is corrected, not rejected.
func (s *Store) Apply(u Update) State {
	if u.Text != nil {
		s.state.Text = *u.Text
	}
	if u.TextColor != nil {
		s.state.TextColor = *u.TextColor
	}
	if u.TextSize != nil {
		s.state.TextSize = ClampSize(*u.TextSize)
	}
	if u.TextFont != nil {
		s.state.TextFont = NormalizeFont(*u.TextFont)
	}
	if u.OverlayImage != nil {
		s.state.OverlayImage = *u.OverlayImage
	}
	if u.BackgroundColor != nil {
		s.state.BackgroundColor = *u.BackgroundColor
	}
	return s.state
}

// ClampSize forces a text size into the supported range.
func ClampSize(v int) int {
	if v < MinTextSize {
		return MinTextSize
	}
	if v > MaxTextSize {
		return MaxTextSize
	}
	return v
}

// NormalizeFont canonicalizes the casing of supported families and returns
// anything else verbatim.
func NormalizeFont(name string) string {
	trimmed := strings.TrimSpace(name)
	for _, f := range SupportedFonts {
		if strings.EqualFold(trimmed, f) {
			return f
		}
	}
	return trimmed
}

// HasText reports whether the design carries non-whitespace text. The submit
// action is disallowed while this is false.
func (st State) HasText() bool {
	return strings.TrimSpace(st.Text) != ""
}
