package score

import (
	"fmt"
	"strings"

	"github.com/beydemirfurkan/seo-analyze/internal/config"
	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

// Link finding codes.
const (
	CodeLinksNone          = "links_none"
	CodeLinksNoInternal    = "links_no_internal"
	CodeLinksNoExternal    = "links_no_external"
	CodeLinksEmptyAnchor   = "links_empty_anchor"
	CodeLinksGenericAnchor = "links_generic_anchor"
)

const (
	penaltyNoInternal    = 25
	penaltyNoExternal    = 15
	penaltyPerBadAnchor  = 5
	maxBadAnchorPenalty  = 30
	scoreNoLinksAtAll    = 50
	maxBadAnchorFindings = 5
)

func scoreLinks(b seo.SignalBundle, t config.ThresholdConfig) (int, []seo.Finding) {
	if len(b.Links) == 0 {
		return scoreNoLinksAtAll, []seo.Finding{finding(seo.CategoryLinks, CodeLinksNone, seo.SeverityWarning,
			"page has no links")}
	}

	internal, external := 0, 0
	for _, l := range b.Links {
		if l.Internal {
			internal++
		} else {
			external++
		}
	}

	score := 100
	var findings []seo.Finding
	if internal == 0 {
		score -= penaltyNoInternal
		findings = append(findings, finding(seo.CategoryLinks, CodeLinksNoInternal, seo.SeverityWarning,
			"page has no internal links"))
	}
	if external == 0 {
		score -= penaltyNoExternal
		findings = append(findings, finding(seo.CategoryLinks, CodeLinksNoExternal, seo.SeverityInfo,
			"page has no external links"))
	}

	badAnchors := 0
	for _, l := range b.Links {
		code, msg := classifyAnchor(l, t.GenericAnchors)
		if code == "" {
			continue
		}
		badAnchors++
		if badAnchors <= maxBadAnchorFindings {
			findings = append(findings, finding(seo.CategoryLinks, code, seo.SeverityWarning, msg))
		}
	}
	penalty := badAnchors * penaltyPerBadAnchor
	if penalty > maxBadAnchorPenalty {
		penalty = maxBadAnchorPenalty
	}
	return score - penalty, findings
}

func classifyAnchor(l seo.Link, generic []string) (string, string) {
	if l.Text == "" {
		return CodeLinksEmptyAnchor, fmt.Sprintf("link to %q has no anchor text", l.Href)
	}
	lower := strings.ToLower(l.Text)
	for _, g := range generic {
		if lower == g {
			return CodeLinksGenericAnchor, fmt.Sprintf("link to %q uses generic anchor text %q", l.Href, l.Text)
		}
	}
	return "", ""
}
