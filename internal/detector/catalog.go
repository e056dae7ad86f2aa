// Package detector implements the fake job posting scoring engine shared by
// the HTTP service and the offline client.
// catalog.go holds the static scam-indicator rules and the matcher that
// applies them.
package detector

import (
	"regexp"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// Rule weights. Full-text keyword rules count 1.0, suspicious title rules 0.8.
const (
	keywordWeight = 1.0
	titleWeight   = 0.8
)

// Rule is a single scam-indicator entry. Exactly one of Phrase or Expr is
// set: Phrase entries are plain substrings routed through the Aho-Corasick
// automaton, Expr entries need real regex syntax and are evaluated with
// regexp. A rule contributes Weight at most once per prediction no matter
// how often it occurs in the text.
type Rule struct {
	Name   string
	Phrase string
	Expr   *regexp.Regexp
	Weight float64
}

// fullTextRules are matched against the lowercased title+description+salary+link
// block. Matching is substring search, not full match, so e.g. "crypto" also
// fires inside "cryptocurrency" (both rules then count, by design of the
// additive policy).
var fullTextRules = []Rule{
	// payment and fees
	{Name: "wire_transfer", Phrase: "wire transfer", Weight: keywordWeight},
	{Name: "gift_card", Phrase: "gift card", Weight: keywordWeight},
	{Name: "bitcoin", Phrase: "bitcoin", Weight: keywordWeight},
	{Name: "crypto", Phrase: "crypto", Weight: keywordWeight},
	{Name: "cryptocurrency", Phrase: "cryptocurrency", Weight: keywordWeight},
	{Name: "upfront_fee", Phrase: "upfront fee", Weight: keywordWeight},
	{Name: "processing_fee", Phrase: "processing fee", Weight: keywordWeight},
	{Name: "training_fee", Phrase: "training fee", Weight: keywordWeight},
	{Name: "deposit_required", Phrase: "deposit required", Weight: keywordWeight},

	// messaging apps and shady contact
	{Name: "whatsapp", Phrase: "whatsapp", Weight: keywordWeight},
	{Name: "telegram", Phrase: "telegram", Weight: keywordWeight},
	{Name: "wechat", Phrase: "wechat", Weight: keywordWeight},
	{Name: "dm_me", Phrase: "dm me", Weight: keywordWeight},
	{Name: "text_phone_number", Expr: regexp.MustCompile(`text .*\d{3}[- )]?\d{3}[- ]?\d{4}`), Weight: keywordWeight},
	{Name: "free_mail_mention", Expr: regexp.MustCompile(`gmail\.com|yahoo\.com|hotmail\.com|outlook\.com`), Weight: keywordWeight},

	// urgency and unrealistic claims
	{Name: "urgent_hiring", Phrase: "urgent hiring", Weight: keywordWeight},
	{Name: "limited_slots", Phrase: "limited slots", Weight: keywordWeight},
	{Name: "no_experience_needed", Phrase: "no experience needed", Weight: keywordWeight},
	{Name: "work_from_home_earn", Phrase: "work from home and earn", Weight: keywordWeight},
	{Name: "quick_money", Phrase: "quick money", Weight: keywordWeight},
	{Name: "earn_per_day_week", Expr: regexp.MustCompile(`earn \$?\d{3,} per (day|week)`), Weight: keywordWeight},
	{Name: "make_money_fast", Phrase: "make money fast", Weight: keywordWeight},

	// visa and legal guarantees
	{Name: "visa_guaranteed", Phrase: "visa sponsorship guaranteed", Weight: keywordWeight},
	{Name: "percent_guaranteed", Phrase: "100% guaranteed", Weight: keywordWeight},

	// link bait
	{Name: "click_here", Phrase: "click here", Weight: keywordWeight},
	{Name: "signup_now", Phrase: "signup now", Weight: keywordWeight},
	{Name: "verify_account", Phrase: "verify your account", Weight: keywordWeight},
}

// titleRules are matched against the lowercased title only.
var titleRules = []Rule{
	{Name: "data_entry_title", Expr: regexp.MustCompile(`data entry (clerk|operator)`), Weight: titleWeight},
	{Name: "remote_typist_title", Phrase: "remote typist", Weight: titleWeight},
	{Name: "proofreader_title", Expr: regexp.MustCompile(`proofreader (remote|from home)`), Weight: titleWeight},
	{Name: "packages_handler_title", Phrase: "packages handler from home", Weight: titleWeight},
}

// matcher applies a rule set to a text in one pass. Phrase rules share a
// single Aho-Corasick automaton built at init; Expr rules are evaluated
// individually. Read-only after construction, safe for concurrent use.
type matcher struct {
	rules      []Rule
	trie       *ahocorasick.Matcher
	phraseRule []int // automaton keyword index -> index into rules
}

func newMatcher(rules []Rule) *matcher {
	m := &matcher{rules: rules}

	phrases := make([]string, 0, len(rules))
	for i := range rules {
		if rules[i].Phrase != "" {
			phrases = append(phrases, rules[i].Phrase)
			m.phraseRule = append(m.phraseRule, i)
		}
	}
	if len(phrases) > 0 {
		m.trie = ahocorasick.NewStringMatcher(phrases)
	}
	return m
}

// match returns the rules that fire for text, in catalog order.
func (m *matcher) match(text string) []Rule {
	hit := make([]bool, len(m.rules))

	if m.trie != nil {
		for _, kw := range m.trie.Match([]byte(text)) {
			if kw < len(m.phraseRule) {
				hit[m.phraseRule[kw]] = true
			}
		}
	}

	var matched []Rule
	for i := range m.rules {
		if hit[i] || (m.rules[i].Expr != nil && m.rules[i].Expr.MatchString(text)) {
			matched = append(matched, m.rules[i])
		}
	}
	return matched
}

var (
	fullTextMatcher = newMatcher(fullTextRules)
	titleMatcher    = newMatcher(titleRules)
)
