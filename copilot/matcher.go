// ABOUTME: Intent matcher for copilot replies
// ABOUTME: Case-insensitive substring matching over an ordered rule table
package copilot

import (
	"strings"
)

// Matcher picks a canned reply for free text. It is safe for concurrent use
// because the rule table is never mutated after construction.
type Matcher struct {
	rules    []Rule
	fallback string
}

// NewMatcher builds a matcher over rules with the given fallback reply.
// A nil rule slice uses DefaultRules and an empty fallback uses DefaultResponse.
func NewMatcher(rules []Rule, fallback string) *Matcher {
	if rules == nil {
		rules = DefaultRules()
	}
	if fallback == "" {
		fallback = DefaultResponse
	}

	normalized := make([]Rule, len(rules))
	for i, r := range rules {
		kw := make([]string, len(r.Keywords))
		for j, k := range r.Keywords {
			kw[j] = strings.ToLower(k)
		}
		r.Keywords = kw
		normalized[i] = r
	}

	return &Matcher{rules: normalized, fallback: fallback}
}

var defaultMatcher = NewMatcher(nil, "")

// Match returns the reply for input using the default rule table.
func Match(input string) string {
	return defaultMatcher.Match(input)
}

// Match returns the response of the first rule that fires, or the fallback.
func (m *Matcher) Match(input string) string {
	if rule, ok := m.MatchRule(input); ok {
		return rule.Response
	}
	return m.fallback
}

// MatchRule returns the first rule that fires for input.
func (m *Matcher) MatchRule(input string) (Rule, bool) {
	lower := strings.ToLower(input)
	for _, rule := range m.rules {
		if rule.fires(lower) {
			return rule, true
		}
	}
	return Rule{}, false
}

// Rules returns a copy of the rule table in priority order.
func (m *Matcher) Rules() []Rule {
	out := make([]Rule, len(m.rules))
	copy(out, m.rules)
	return out
}

func (r Rule) fires(lower string) bool {
	if len(r.Keywords) == 0 {
		return false
	}
	if r.RequireAll {
		for _, k := range r.Keywords {
			if !strings.Contains(lower, k) {
				return false
			}
		}
		return true
	}
	for _, k := range r.Keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
