package score

import (
	"fmt"

	"github.com/beydemirfurkan/seo-analyze/internal/config"
	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

// Heading structure finding codes.
const (
	CodeHeadingsNone         = "headings_none"
	CodeHeadingsNoH1         = "headings_no_h1"
	CodeHeadingsMultipleH1   = "headings_multiple_h1"
	CodeHeadingsSkippedLevel = "headings_skipped_level"
)

// Penalties applied to the heading base score of 100.
const (
	penaltyNoH1         = 50
	penaltyMultipleH1   = 20
	penaltySkippedLevel = 10
)

func scoreHeadings(b seo.SignalBundle, _ config.ThresholdConfig) (int, []seo.Finding) {
	if len(b.Headings) == 0 {
		return 0, []seo.Finding{finding(seo.CategoryHeadings, CodeHeadingsNone, seo.SeverityCritical,
			"page has no heading elements")}
	}

	h1Count := 0
	for _, h := range b.Headings {
		if h.Level == 1 {
			h1Count++
		}
	}

	score := 100
	var findings []seo.Finding
	switch {
	case h1Count == 0:
		score -= penaltyNoH1
		findings = append(findings, finding(seo.CategoryHeadings, CodeHeadingsNoH1, seo.SeverityCritical,
			"page has no H1 heading"))
	case h1Count > 1:
		score -= penaltyMultipleH1
		findings = append(findings, finding(seo.CategoryHeadings, CodeHeadingsMultipleH1, seo.SeverityWarning,
			fmt.Sprintf("page has %d H1 headings, expected exactly one", h1Count)))
	}

	prev := 0
	for _, h := range b.Headings {
		if prev > 0 && h.Level > prev+1 {
			score -= penaltySkippedLevel
			findings = append(findings, finding(seo.CategoryHeadings, CodeHeadingsSkippedLevel, seo.SeverityWarning,
				fmt.Sprintf("heading level jumps from H%d to H%d", prev, h.Level)))
		}
		prev = h.Level
	}
	return score, findings
}
