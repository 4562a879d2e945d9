package score

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

func headings(levels ...int) []seo.Heading {
	hs := make([]seo.Heading, len(levels))
	for i, l := range levels {
		hs[i] = seo.Heading{Level: l, Text: "h", Position: i}
	}
	return hs
}

func TestScoreHeadingsNone(t *testing.T) {
	score, findings := scoreHeadings(seo.SignalBundle{}, defaultThresholds())

	require.Equal(t, 0, score)
	require.Len(t, findings, 1)
	require.Equal(t, CodeHeadingsNone, findings[0].Code)
	require.Equal(t, seo.SeverityCritical, findings[0].Severity)
}

func TestScoreHeadingsWellFormed(t *testing.T) {
	score, findings := scoreHeadings(seo.SignalBundle{Headings: headings(1, 2, 2, 3)}, defaultThresholds())

	require.Equal(t, 100, score)
	require.Empty(t, findings)
}

func TestScoreHeadingsNoH1(t *testing.T) {
	score, findings := scoreHeadings(seo.SignalBundle{Headings: headings(2, 3)}, defaultThresholds())

	require.Equal(t, 50, score)
	require.Len(t, findings, 1)
	require.Equal(t, CodeHeadingsNoH1, findings[0].Code)
	require.Equal(t, seo.SeverityCritical, findings[0].Severity)
}

func TestScoreHeadingsMultipleH1(t *testing.T) {
	score, findings := scoreHeadings(seo.SignalBundle{Headings: headings(1, 1, 2)}, defaultThresholds())

	require.Equal(t, 80, score)
	require.Len(t, findings, 1)
	require.Equal(t, CodeHeadingsMultipleH1, findings[0].Code)
}

func TestScoreHeadingsSkippedLevels(t *testing.T) {
	// H1 -> H3 and H3 -> H5 each skip a level. Descending jumps do not.
	score, findings := scoreHeadings(seo.SignalBundle{Headings: headings(1, 3, 5, 2)}, defaultThresholds())

	require.Equal(t, 80, score)
	require.Len(t, findings, 2)
	for _, f := range findings {
		require.Equal(t, CodeHeadingsSkippedLevel, f.Code)
	}
}

func TestScoreHeadingsPenaltiesCompound(t *testing.T) {
	// No H1 plus one skipped level.
	score, findings := scoreHeadings(seo.SignalBundle{Headings: headings(2, 4)}, defaultThresholds())

	require.Equal(t, 40, score)
	require.Len(t, findings, 2)
}
