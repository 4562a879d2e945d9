package score

import (
	"fmt"
	"strings"

	"github.com/beydemirfurkan/seo-analyze/internal/config"
	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

// Meta description finding codes.
const (
	CodeMetaMissing        = "meta_description_missing"
	CodeMetaEmpty          = "meta_description_empty"
	CodeMetaTooShort       = "meta_description_too_short"
	CodeMetaTooLong        = "meta_description_too_long"
	CodeMetaKeywordAbsent  = "meta_description_keyword_absent"
	CodeMetaKeywordPresent = "meta_description_keyword_present"
)

func scoreMeta(b seo.SignalBundle, t config.ThresholdConfig) (int, []seo.Finding) {
	if b.MetaDescription == nil {
		return 0, []seo.Finding{finding(seo.CategoryMeta, CodeMetaMissing, seo.SeverityCritical,
			"page has no meta description")}
	}
	if *b.MetaDescription == "" {
		return 0, []seo.Finding{finding(seo.CategoryMeta, CodeMetaEmpty, seo.SeverityCritical,
			"meta description is empty")}
	}

	desc := *b.MetaDescription
	length := len([]rune(desc))
	score := lengthWindowScore(length, t.MinMetaDescLength, t.MaxMetaDescLength, t.LengthDecayPerChar)

	var findings []seo.Finding
	if length < t.MinMetaDescLength {
		findings = append(findings, finding(seo.CategoryMeta, CodeMetaTooShort, seo.SeverityWarning,
			fmt.Sprintf("meta description is %d characters, below the recommended minimum of %d", length, t.MinMetaDescLength)))
	}
	if length > t.MaxMetaDescLength {
		findings = append(findings, finding(seo.CategoryMeta, CodeMetaTooLong, seo.SeverityWarning,
			fmt.Sprintf("meta description is %d characters, above the recommended maximum of %d", length, t.MaxMetaDescLength)))
	}

	// Bounded keyword bonus; never pushes the score past 100.
	if kw := strings.TrimSpace(b.TargetKeyword); kw != "" {
		if strings.Contains(strings.ToLower(desc), strings.ToLower(kw)) {
			score = clamp(score + t.KeywordBonus)
		} else {
			findings = append(findings, finding(seo.CategoryMeta, CodeMetaKeywordAbsent, seo.SeverityInfo,
				fmt.Sprintf("meta description does not mention the target keyword %q", kw)))
		}
	}
	return score, findings
}
