package score

import (
	"fmt"

	"github.com/beydemirfurkan/seo-analyze/internal/config"
	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

// Title finding codes.
const (
	CodeTitleMissing  = "title_missing"
	CodeTitleEmpty    = "title_empty"
	CodeTitleTooShort = "title_too_short"
	CodeTitleTooLong  = "title_too_long"
)

func scoreTitle(b seo.SignalBundle, t config.ThresholdConfig) (int, []seo.Finding) {
	if b.Title == nil {
		return 0, []seo.Finding{finding(seo.CategoryTitle, CodeTitleMissing, seo.SeverityCritical,
			"page has no <title> element")}
	}
	if *b.Title == "" {
		return 0, []seo.Finding{finding(seo.CategoryTitle, CodeTitleEmpty, seo.SeverityCritical,
			"page <title> element is empty")}
	}

	length := len([]rune(*b.Title))
	score := lengthWindowScore(length, t.MinTitleLength, t.MaxTitleLength, t.LengthDecayPerChar)

	var findings []seo.Finding
	if length < t.MinTitleLength {
		findings = append(findings, finding(seo.CategoryTitle, CodeTitleTooShort, seo.SeverityWarning,
			fmt.Sprintf("title is %d characters, below the recommended minimum of %d", length, t.MinTitleLength)))
	}
	if length > t.MaxTitleLength {
		findings = append(findings, finding(seo.CategoryTitle, CodeTitleTooLong, seo.SeverityWarning,
			fmt.Sprintf("title is %d characters, above the recommended maximum of %d", length, t.MaxTitleLength)))
	}
	return score, findings
}
