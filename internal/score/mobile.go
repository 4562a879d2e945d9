package score

import (
	"github.com/beydemirfurkan/seo-analyze/internal/config"
	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

// Mobile finding codes.
const (
	CodeMobileNoViewport     = "mobile_no_viewport"
	CodeMobileNoMediaQueries = "mobile_no_media_queries"
)

// Mobile signal weights. These are static-markup proxies, not measurements
// from a real device or browser.
const (
	mobileViewportPoints = 60
	mobileMediaPoints    = 20
	mobileTouchPoints    = 20
)

func scoreMobile(b seo.SignalBundle, _ config.ThresholdConfig) (int, []seo.Finding) {
	score := 0
	var findings []seo.Finding

	if b.Technical.HasViewportMeta {
		score += mobileViewportPoints
	} else {
		findings = append(findings, finding(seo.CategoryMobile, CodeMobileNoViewport, seo.SeverityCritical,
			"page has no viewport meta tag"))
	}
	if b.Technical.HasMediaQueries {
		score += mobileMediaPoints
	} else {
		findings = append(findings, finding(seo.CategoryMobile, CodeMobileNoMediaQueries, seo.SeverityInfo,
			"no CSS media queries detected in inline styles"))
	}
	if b.Technical.TouchElements > 0 {
		score += mobileTouchPoints
	}
	return score, findings
}
