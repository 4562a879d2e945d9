package score

import (
	"fmt"

	"github.com/beydemirfurkan/seo-analyze/internal/config"
	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

// Accessibility finding codes.
const (
	CodeAccessibilityImagesAlt = "accessibility_images_alt"
	CodeAccessibilityHeadings  = "accessibility_heading_structure"
	CodeAccessibilityNoLang    = "accessibility_no_lang"
)

const (
	a11yAltPenaltyPerImage = 5
	a11yAltPenaltyCap      = 50
	a11yHeadingPenalty     = 20
	a11yLangPenalty        = 10
)

// scoreAccessibility reuses the alt-text and heading signals as coarse
// accessibility proxies.
func scoreAccessibility(b seo.SignalBundle, _ config.ThresholdConfig) (int, []seo.Finding) {
	score := 100
	var findings []seo.Finding

	missingAlt := 0
	for _, img := range b.Images {
		if img.Alt == "" {
			missingAlt++
		}
	}
	if missingAlt > 0 {
		penalty := missingAlt * a11yAltPenaltyPerImage
		if penalty > a11yAltPenaltyCap {
			penalty = a11yAltPenaltyCap
		}
		score -= penalty
		findings = append(findings, finding(seo.CategoryAccessibility, CodeAccessibilityImagesAlt, seo.SeverityWarning,
			fmt.Sprintf("%d images are missing alt text", missingAlt)))
	}

	h1Count := 0
	for _, h := range b.Headings {
		if h.Level == 1 {
			h1Count++
		}
	}
	if h1Count != 1 {
		score -= a11yHeadingPenalty
		findings = append(findings, finding(seo.CategoryAccessibility, CodeAccessibilityHeadings, seo.SeverityWarning,
			fmt.Sprintf("page has %d H1 headings, screen readers expect exactly one", h1Count)))
	}

	if b.Language == "" {
		score -= a11yLangPenalty
		findings = append(findings, finding(seo.CategoryAccessibility, CodeAccessibilityNoLang, seo.SeverityInfo,
			"html element has no lang attribute"))
	}
	return score, findings
}
