package score

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

func TestScoreMetaMissingAndEmpty(t *testing.T) {
	score, findings := scoreMeta(seo.SignalBundle{}, defaultThresholds())
	require.Equal(t, 0, score)
	require.Len(t, findings, 1)
	require.Equal(t, CodeMetaMissing, findings[0].Code)
	require.Equal(t, seo.SeverityCritical, findings[0].Severity)

	score, findings = scoreMeta(seo.SignalBundle{MetaDescription: strptr("")}, defaultThresholds())
	require.Equal(t, 0, score)
	require.Len(t, findings, 1)
	require.Equal(t, CodeMetaEmpty, findings[0].Code)
}

func TestScoreMetaLengthWindow(t *testing.T) {
	inWindow := strings.Repeat("d", 140)
	score, findings := scoreMeta(seo.SignalBundle{MetaDescription: &inWindow}, defaultThresholds())
	require.Equal(t, 100, score)
	require.Empty(t, findings)

	short := strings.Repeat("d", 110)
	score, findings = scoreMeta(seo.SignalBundle{MetaDescription: &short}, defaultThresholds())
	require.Equal(t, 70, score)
	require.Len(t, findings, 1)
	require.Equal(t, CodeMetaTooShort, findings[0].Code)

	long := strings.Repeat("d", 170)
	score, findings = scoreMeta(seo.SignalBundle{MetaDescription: &long}, defaultThresholds())
	require.Equal(t, 70, score)
	require.Len(t, findings, 1)
	require.Equal(t, CodeMetaTooLong, findings[0].Code)
}

func TestScoreMetaKeywordBonus(t *testing.T) {
	desc := strings.Repeat("x", 100) + " best Espresso machines"
	bundle := seo.SignalBundle{
		MetaDescription: &desc,
		TargetKeyword:   "espresso",
	}

	score, findings := scoreMeta(bundle, defaultThresholds())

	// 123 chars puts the base score at 100; the bonus must not push past it.
	require.Equal(t, 100, score)
	require.Empty(t, findings)
}

func TestScoreMetaKeywordBonusLiftsShortDescription(t *testing.T) {
	desc := strings.Repeat("x", 100) + " espresso"
	bundle := seo.SignalBundle{
		MetaDescription: &desc,
		TargetKeyword:   "Espresso",
	}

	score, findings := scoreMeta(bundle, defaultThresholds())

	// 109 chars scores 67, plus the 10 point bonus.
	require.Equal(t, 77, score)
	require.Len(t, findings, 1)
	require.Equal(t, CodeMetaTooShort, findings[0].Code)
}

func TestScoreMetaKeywordAbsent(t *testing.T) {
	desc := strings.Repeat("x", 140)
	bundle := seo.SignalBundle{
		MetaDescription: &desc,
		TargetKeyword:   "espresso",
	}

	score, findings := scoreMeta(bundle, defaultThresholds())

	require.Equal(t, 100, score)
	require.Len(t, findings, 1)
	require.Equal(t, CodeMetaKeywordAbsent, findings[0].Code)
	require.Equal(t, seo.SeverityInfo, findings[0].Severity)
}

func TestScoreMetaBlankKeywordIsIgnored(t *testing.T) {
	desc := strings.Repeat("x", 140)
	bundle := seo.SignalBundle{
		MetaDescription: &desc,
		TargetKeyword:   "   ",
	}

	score, findings := scoreMeta(bundle, defaultThresholds())

	require.Equal(t, 100, score)
	require.Empty(t, findings)
}
