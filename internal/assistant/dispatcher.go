package assistant

import (
	"strings"
	"time"

	"github.com/abhisek/pathwise/internal/profile"
	"github.com/abhisek/pathwise/internal/progress"
)

// LearningData is the learner's position in their roadmap.
type LearningData struct {
	Phase     int    `json:"phase"`
	Day       int    `json:"day"`
	PathTitle string `json:"pathTitle,omitempty"`
}

// Context is optional caller state read while rendering replies. Any field
// may be nil.
type Context struct {
	LearningData *LearningData
	Profile      *profile.Profile
	Progress     *progress.Analytics
}

// Reply is the dispatcher's answer to one message.
type Reply struct {
	Intent      Intent   `json:"intent"`
	Response    string   `json:"response"`
	Suggestions []string `json:"suggestions"`
}

// Input is what a rule's renderer sees.
type Input struct {
	// Text is the trimmed message in its original case.
	Text      string
	Context   Context
	Analytics *progress.Analytics
}

// AnalyticsSource supplies live analytics for interpolation.
type AnalyticsSource interface {
	Analytics() progress.Analytics
}

// Dispatcher classifies messages and records the conversation. It is not
// safe for concurrent use.
type Dispatcher struct {
	rules   []Rule
	history *History
	source  AnalyticsSource
	now     func() time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRules replaces the default dispatch ladder.
func WithRules(rules []Rule) Option {
	return func(d *Dispatcher) { d.rules = rules }
}

// WithHistorySize sets the history ring capacity in turns.
func WithHistorySize(n int) Option {
	return func(d *Dispatcher) { d.history = NewHistory(n) }
}

// WithAnalytics sets the live analytics source. It takes precedence over
// Context.Progress.
func WithAnalytics(src AnalyticsSource) Option {
	return func(d *Dispatcher) { d.source = src }
}

// WithClock overrides the turn timestamp source.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// New creates a Dispatcher with the default rules and history size.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		rules:   DefaultRules(),
		history: NewHistory(DefaultHistorySize),
		now:     time.Now,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Process answers one message and appends the user and assistant turns to
// the history.
func (d *Dispatcher) Process(text string, ctx Context) Reply {
	trimmed := strings.TrimSpace(text)
	normalized := strings.ToLower(trimmed)
	d.history.Append(Turn{Role: RoleUser, Text: trimmed, At: d.now()})

	in := Input{Text: trimmed, Context: ctx, Analytics: ctx.Progress}
	if d.source != nil {
		a := d.source.Analytics()
		in.Analytics = &a
	}

	var reply Reply
	if r, ok := match(d.rules, normalized); ok {
		reply = r.Reply(in)
		reply.Intent = r.Intent
	} else {
		reply = fallbackReply(in)
		reply.Intent = IntentFallback
	}

	d.history.Append(Turn{Role: RoleAssistant, Text: reply.Response, Intent: reply.Intent, At: d.now()})
	return reply
}

// History returns the retained conversation, oldest first.
func (d *Dispatcher) History() []Turn {
	return d.history.Turns()
}

// ClearHistory drops the conversation.
func (d *Dispatcher) ClearHistory() {
	d.history.Clear()
}
