package planner

import (
	"regexp"
	"strings"
)

// fallbackActivity replaces any slot whose corporate content could not be
// rewritten away.
const fallbackActivity = "Explore a cultural attraction nearby."

var corporatePattern = regexp.MustCompile(`(?i)\bheadquarter(s)?\b|\bR&D\b|\bresearch and development\b|\bseminar\b|\bworkshop\b|\bpresentation\b|\bmeeting\b|\bnetwork(ing)?\b|\bexecutive(s)?\b|\bcompany\b|\bemployees?\b|\bbusiness\b|\bproduct launch\b`)

// rewriteRule swaps one corporate term for a tourist-appropriate phrase.
type rewriteRule struct {
	term        string
	replacement string
}

// rewriteRules are applied in order, each case-insensitively across the
// whole text. Longer phrases come before the words they contain.
var rewriteRules = []rewriteRule{
	{"headquarters", "a local museum"},
	{"R&D", "a science/technology exhibit"},
	{"research and development", "a technology museum"},
	{"seminar", "a local cultural talk"},
	{"workshop", "a handicraft workshop"},
	{"presentation", "a guided museum tour"},
	{"meeting", "a leisurely city walk"},
	{"network", "a food tour or cultural meetup"},
	{"executive", "local leaders/historians"},
	{"employees", "locals"},
	{"company", "local attraction"},
	{"business", "leisure"},
	{"product launch", "local festival or event"},
}

var ruleMatchers = compileRules(rewriteRules)

func compileRules(rules []rewriteRule) []*regexp.Regexp {
	matchers := make([]*regexp.Regexp, len(rules))
	for i, r := range rules {
		matchers[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(r.term))
	}
	return matchers
}

// sanitizeForTourist enforces the tourist content policy on one slot of
// itinerary text. Phase one rewrites each flagged term via the rule table;
// phase two re-runs detection on the rewrite and, if any corporate term
// survived (or was introduced by a replacement), discards the rewrite and
// returns the fixed fallback sentence instead.
func sanitizeForTourist(text string) string {
	if text == "" {
		return ""
	}
	if !corporatePattern.MatchString(text) {
		return text
	}

	sanitized := text
	for i, rule := range rewriteRules {
		sanitized = ruleMatchers[i].ReplaceAllString(sanitized, rule.replacement)
	}

	if corporatePattern.MatchString(sanitized) {
		return fallbackActivity
	}
	return sanitized
}

// sanitizeItinerary applies the policy per time slot per day. A slot left
// blank by the policy (but flagged in the original) gets the fallback
// sentence rather than staying empty. All slots are trimmed afterwards.
func sanitizeItinerary(days []ItineraryDay) []ItineraryDay {
	for i := range days {
		days[i].Morning = sanitizeSlot(days[i].Morning)
		days[i].Afternoon = sanitizeSlot(days[i].Afternoon)
		days[i].Evening = sanitizeSlot(days[i].Evening)
	}
	return days
}

func sanitizeSlot(original string) string {
	sanitized := sanitizeForTourist(original)
	if strings.TrimSpace(sanitized) == "" && corporatePattern.MatchString(original) {
		sanitized = fallbackActivity
	}
	if sanitized == "" {
		sanitized = original
	}
	return strings.TrimSpace(sanitized)
}
