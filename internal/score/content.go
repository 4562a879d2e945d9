package score

import (
	"fmt"

	"github.com/beydemirfurkan/seo-analyze/internal/config"
	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

// Content/readability finding codes.
const (
	CodeContentMissing       = "content_missing"
	CodeContentThin          = "content_thin"
	CodeContentHardToRead    = "content_hard_to_read"
	CodeContentLongSentences = "content_long_sentences"
)

// Flesch reading ease cut points for the score bands. Higher ease reads
// easier; 60+ is roughly plain English.
const (
	fleschEasy     = 60.0
	fleschModerate = 50.0
	fleschHard     = 30.0
	fleschVeryHard = 10.0
)

const longSentenceWords = 25.0

func scoreContent(b seo.SignalBundle, t config.ThresholdConfig) (int, []seo.Finding) {
	if b.WordCount == 0 {
		return 0, []seo.Finding{finding(seo.CategoryContent, CodeContentMissing, seo.SeverityCritical,
			"page has no readable text content")}
	}

	score := fleschBand(b.Readability.FleschReadingEase)
	var findings []seo.Finding
	if b.Readability.FleschReadingEase < fleschHard {
		findings = append(findings, finding(seo.CategoryContent, CodeContentHardToRead, seo.SeverityWarning,
			fmt.Sprintf("Flesch reading ease is %.1f, content is difficult to read", b.Readability.FleschReadingEase)))
	}
	if b.WordCount < t.MinWordCount {
		score -= 20
		findings = append(findings, finding(seo.CategoryContent, CodeContentThin, seo.SeverityWarning,
			fmt.Sprintf("page has %d words, below the recommended minimum of %d", b.WordCount, t.MinWordCount)))
	}
	if b.Readability.AvgWordsPerSentence > longSentenceWords {
		score -= 10
		findings = append(findings, finding(seo.CategoryContent, CodeContentLongSentences, seo.SeverityInfo,
			fmt.Sprintf("average sentence length is %.1f words", b.Readability.AvgWordsPerSentence)))
	}
	return score, findings
}

func fleschBand(ease float64) int {
	switch {
	case ease >= fleschEasy:
		return 100
	case ease >= fleschModerate:
		return 80
	case ease >= fleschHard:
		return 60
	case ease >= fleschVeryHard:
		return 40
	default:
		return 20
	}
}
