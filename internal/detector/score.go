package detector

import (
	"math"
	"regexp"
	"strings"
)

// Logistic calibration mapping the raw score onto [0,1]. Hand-chosen, not
// learned; changing either constant changes every verdict.
const (
	scoreScale = 0.9
	scoreBias  = -1.0
)

// Structural check weights.
const (
	salaryPerPeriodWeight = 1.2
	largeAmountWeight     = 0.8
	phoneNumberWeight     = 0.6
	freeMailDomainWeight  = 0.5
	shortenedLinkWeight   = 0.7
)

// Structural checks: red flags that are shapes rather than phrases.
var (
	salaryPerPeriodRe = regexp.MustCompile(`\$\s?\d{3,}\s?/\s?(day|week)`)
	largeAmountRe     = regexp.MustCompile(`\$\s?\d{6,}`)
	phoneNumberRe     = regexp.MustCompile(`\b\d{3}[- )]?\d{3}[- ]?\d{4}\b`)
	freeMailDomainRe  = regexp.MustCompile(`\b(?:gmail|yahoo|hotmail|outlook)\.com\b`)
	shortenedLinkRe   = regexp.MustCompile(`https?://(\w+\.)?(bit\.ly|tinyurl\.com|t\.co|goo\.gl|linktr\.ee)`)
)

// HeuristicScore applies the catalog and the structural checks to a posting
// and returns the additive score together with the matched factor names.
// The score starts at zero, never goes negative and has no upper cap.
// Deterministic: same posting, same score.
func HeuristicScore(p JobPosting) (float64, []string) {
	text := fullText(p)
	score := 0.0
	var factors []string

	for _, r := range fullTextMatcher.match(text) {
		score += r.Weight
		factors = append(factors, r.Name)
	}
	for _, r := range titleMatcher.match(titleText(p)) {
		score += r.Weight
		factors = append(factors, r.Name)
	}

	// Unrealistic salary claims
	if salaryPerPeriodRe.MatchString(text) {
		score += salaryPerPeriodWeight
		factors = append(factors, "salary_per_period")
	}
	if largeAmountRe.MatchString(text) {
		score += largeAmountWeight
		factors = append(factors, "large_amount")
	}

	// Raw contact details
	if phoneNumberRe.MatchString(text) {
		score += phoneNumberWeight
		factors = append(factors, "phone_number")
	}
	if freeMailDomainRe.MatchString(text) {
		score += freeMailDomainWeight
		factors = append(factors, "free_mail_domain")
	}

	// Link through a known URL shortener
	if p.Link != "" && shortenedLinkRe.MatchString(strings.ToLower(p.Link)) {
		score += shortenedLinkWeight
		factors = append(factors, "shortened_link")
	}

	return score, factors
}

// sigmoid evaluates 1/(1+e^-x) branch-wise so the exponential argument is
// always non-positive and can never overflow.
func sigmoid(x float64) float64 {
	if x >= 0 {
		z := math.Exp(-x)
		return 1.0 / (1.0 + z)
	}
	z := math.Exp(x)
	return z / (1.0 + z)
}

// probabilityFromScore maps the unbounded heuristic score to the probability
// that the posting is fake.
func probabilityFromScore(score float64) float64 {
	return sigmoid(scoreScale*score + scoreBias)
}
