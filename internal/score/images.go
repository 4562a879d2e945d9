package score

import (
	"fmt"
	"math"

	"github.com/beydemirfurkan/seo-analyze/internal/config"
	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

// Image finding codes.
const (
	CodeImagesMissingAlt     = "images_missing_alt"
	CodeImagesMissingAltMore = "images_missing_alt_more"
)

// scoreImages scores alt-text coverage. A page with no images scores 100:
// no images, no violations.
func scoreImages(b seo.SignalBundle, t config.ThresholdConfig) (int, []seo.Finding) {
	total := len(b.Images)
	if total == 0 {
		return 100, nil
	}

	var findings []seo.Finding
	missing := 0
	for _, img := range b.Images {
		if img.Alt != "" {
			continue
		}
		missing++
		// The per-image finding list is capped so a gallery page cannot
		// explode the report.
		if t.MaxAltFindings <= 0 || missing <= t.MaxAltFindings {
			findings = append(findings, finding(seo.CategoryImages, CodeImagesMissingAlt, seo.SeverityWarning,
				fmt.Sprintf("image %q has no alt text", img.Src)))
		}
	}
	if t.MaxAltFindings > 0 && missing > t.MaxAltFindings {
		findings = append(findings, finding(seo.CategoryImages, CodeImagesMissingAltMore, seo.SeverityInfo,
			fmt.Sprintf("%d more images are missing alt text", missing-t.MaxAltFindings)))
	}

	score := int(math.Round(100 * float64(total-missing) / float64(total)))
	return score, findings
}
