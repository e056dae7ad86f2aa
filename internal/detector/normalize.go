package detector

import "strings"

// fullText builds the text block the full-text rules are scored against:
// title, description, salary and link each on their own line, lowercased.
// Empty optionals still contribute their line so the layout is stable.
// Company is deliberately absent here; see CombinedText.
func fullText(p JobPosting) string {
	return strings.ToLower(p.Title + "\n" + p.Description + "\n" + p.Salary + "\n" + p.Link)
}

// titleText is the lowercased title, used by the title-only rules.
func titleText(p JobPosting) string {
	return strings.ToLower(p.Title)
}

// CombinedText builds the representation handed to a statistical backend:
// labelled lines, optionals included only when non-empty. Unlike fullText it
// carries the company field. The two layouts differ on purpose and must not
// be unified.
func CombinedText(p JobPosting) string {
	parts := []string{
		"title: " + p.Title,
		"company: " + p.Company,
		"description: " + p.Description,
	}
	if p.Salary != "" {
		parts = append(parts, "salary: "+p.Salary)
	}
	if p.Location != "" {
		parts = append(parts, "location: "+p.Location)
	}
	if p.Link != "" {
		parts = append(parts, "link: "+p.Link)
	}
	return strings.Join(parts, "\n")
}
