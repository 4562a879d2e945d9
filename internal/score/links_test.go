package score

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

func TestScoreLinksNone(t *testing.T) {
	score, findings := scoreLinks(seo.SignalBundle{}, defaultThresholds())

	require.Equal(t, 50, score)
	require.Len(t, findings, 1)
	require.Equal(t, CodeLinksNone, findings[0].Code)
	require.Equal(t, seo.SeverityWarning, findings[0].Severity)
}

func TestScoreLinksHealthyMix(t *testing.T) {
	bundle := seo.SignalBundle{Links: []seo.Link{
		{Href: "/about", Text: "About us", Internal: true},
		{Href: "https://example.org/report", Text: "Annual industry report"},
	}}

	score, findings := scoreLinks(bundle, defaultThresholds())

	require.Equal(t, 100, score)
	require.Empty(t, findings)
}

func TestScoreLinksNoInternal(t *testing.T) {
	bundle := seo.SignalBundle{Links: []seo.Link{
		{Href: "https://example.org", Text: "Example"},
	}}

	score, findings := scoreLinks(bundle, defaultThresholds())

	require.Equal(t, 75, score)
	require.Len(t, findings, 1)
	require.Equal(t, CodeLinksNoInternal, findings[0].Code)
}

func TestScoreLinksNoExternal(t *testing.T) {
	bundle := seo.SignalBundle{Links: []seo.Link{
		{Href: "/pricing", Text: "Pricing", Internal: true},
	}}

	score, findings := scoreLinks(bundle, defaultThresholds())

	require.Equal(t, 85, score)
	require.Len(t, findings, 1)
	require.Equal(t, CodeLinksNoExternal, findings[0].Code)
	require.Equal(t, seo.SeverityInfo, findings[0].Severity)
}

func TestScoreLinksAnchorQuality(t *testing.T) {
	bundle := seo.SignalBundle{Links: []seo.Link{
		{Href: "/a", Text: "Product catalog", Internal: true},
		{Href: "https://example.org/b", Text: "click here"},
		{Href: "/c", Text: "", Internal: true},
		{Href: "/d", Text: "Read More", Internal: true},
	}}

	score, findings := scoreLinks(bundle, defaultThresholds())

	// Three bad anchors at 5 points each.
	require.Equal(t, 85, score)
	require.Len(t, findings, 3)
	require.Equal(t, CodeLinksGenericAnchor, findings[0].Code)
	require.Equal(t, CodeLinksEmptyAnchor, findings[1].Code)
	require.Equal(t, CodeLinksGenericAnchor, findings[2].Code)
}

func TestScoreLinksBadAnchorPenaltyIsCapped(t *testing.T) {
	links := []seo.Link{{Href: "https://example.org", Text: "Example"}}
	for i := 0; i < 10; i++ {
		links = append(links, seo.Link{Href: fmt.Sprintf("/p%d", i), Text: "here", Internal: true})
	}

	score, findings := scoreLinks(seo.SignalBundle{Links: links}, defaultThresholds())

	// 10 generic anchors cap at a 30 point penalty; findings cap at 5.
	require.Equal(t, 70, score)
	require.Len(t, findings, 5)
}
