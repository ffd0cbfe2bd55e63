package delivery

import "time"

// Plan actions executed verbatim by the browser bridge.
const (
	ActionPostMessage = "postMessage"
	ActionNavigate    = "navigate"
	ActionNone        = "none"
)

// Plan is the serialized delivery decision returned to the widget's client
// bridge. The bridge performs the postMessage/navigation/close calls; the
// classification itself already happened server-side.
type Plan struct {
	Action       string   `json:"action"`
	Target       string   `json:"target,omitempty"` // "opener" or "parent"
	Origin       string   `json:"origin,omitempty"`
	Message      *Message `json:"message,omitempty"`
	URL          string   `json:"url,omitempty"`
	CloseAfterMs int64    `json:"closeAfterMs,omitempty"`
}

// Planner is a Window implementation that records the channel's decision as
// a Plan instead of touching a real windowing environment. The browser
// reports its opener/frame relationship; the planner answers for it.
type Planner struct {
	opener bool
	framed bool
	plan   Plan
}

// NewPlanner builds a planner for a window that reported the given
// relationships.
func NewPlanner(hasOpener, isFramed bool) *Planner {
	return &Planner{opener: hasOpener, framed: isFramed, plan: Plan{Action: ActionNone}}
}

// Plan returns the recorded delivery decision.
func (p *Planner) Plan() Plan {
	return p.plan
}

func (p *Planner) HasOpener() bool { return p.opener }
func (p *Planner) HasParent() bool { return p.framed }

func (p *Planner) PostToOpener(msg Message, targetOrigin string) {
	p.plan.Action = ActionPostMessage
	p.plan.Target = string(RouteOpener)
	p.plan.Origin = targetOrigin
	p.plan.Message = &msg
}

func (p *Planner) PostToParent(msg Message, targetOrigin string) {
	p.plan.Action = ActionPostMessage
	p.plan.Target = string(RouteParent)
	p.plan.Origin = targetOrigin
	p.plan.Message = &msg
}

func (p *Planner) Navigate(rawURL string) {
	p.plan.Action = ActionNavigate
	p.plan.URL = rawURL
}

func (p *Planner) ScheduleClose(after time.Duration) {
	p.plan.CloseAfterMs = after.Milliseconds()
}
