// Package assistant answers free-text chat messages with deterministic,
// keyword-dispatched replies. Rules are evaluated in order and the first
// match wins.
package assistant

import (
	"slices"
	"strings"
	"unicode"
)

// Intent is the classified purpose of a chat message.
type Intent string

const (
	IntentGreeting   Intent = "greeting"
	IntentWellbeing  Intent = "wellbeing"
	IntentProgress   Intent = "progress"
	IntentTasks      Intent = "tasks"
	IntentPlan       Intent = "plan"
	IntentMotivation Intent = "motivation"
	IntentAnalytics  Intent = "analytics"
	IntentRoadmap    Intent = "roadmap"
	IntentHelp       Intent = "help"
	IntentFallback   Intent = "fallback"
)

// Rule maps keywords to a reply renderer. Keywords match anywhere in the
// normalized message, so "motivat" covers "motivation". Words match only a
// whole token, where tokens are runs of letters and digits: "hi" matches
// "Hi!" and "hi, there" but not "this".
type Rule struct {
	Intent   Intent
	Keywords []string
	Words    []string
	Reply    func(in Input) Reply
}

// Matches reports whether any keyword or word occurs in the normalized text.
func (r Rule) Matches(normalized string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	if len(r.Words) == 0 {
		return false
	}
	for _, tok := range Tokens(normalized) {
		if slices.Contains(r.Words, tok) {
			return true
		}
	}
	return false
}

// Tokens splits text into runs of letters and digits.
func Tokens(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// DefaultRules returns the dispatch ladder in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{Intent: IntentGreeting, Keywords: []string{"hello", "good morning", "good evening"}, Words: []string{"hi", "hey"}, Reply: greetingReply},
		{Intent: IntentWellbeing, Keywords: []string{"how are you"}, Reply: wellbeingReply},
		{Intent: IntentProgress, Keywords: []string{"progress"}, Reply: progressReply},
		{Intent: IntentTasks, Keywords: []string{"task"}, Reply: tasksReply},
		{Intent: IntentPlan, Keywords: []string{"study", "plan"}, Reply: planReply},
		{Intent: IntentMotivation, Keywords: []string{"motivat", "struggl"}, Reply: motivationReply},
		{Intent: IntentAnalytics, Keywords: []string{"analytic", "performance"}, Reply: analyticsReply},
		{Intent: IntentRoadmap, Keywords: []string{"roadmap", "path"}, Reply: roadmapReply},
		{Intent: IntentHelp, Keywords: []string{"help", "resource"}, Reply: helpReply},
	}
}

// Normalize lower-cases and trims a message.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Classify returns the intent of the first rule matching text, or
// IntentFallback.
func Classify(rules []Rule, text string) Intent {
	if r, ok := match(rules, Normalize(text)); ok {
		return r.Intent
	}
	return IntentFallback
}

func match(rules []Rule, normalized string) (Rule, bool) {
	for _, r := range rules {
		if r.Matches(normalized) {
			return r, true
		}
	}
	return Rule{}, false
}
