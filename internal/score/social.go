package score

import (
	"fmt"
	"math"
	"strings"

	"github.com/beydemirfurkan/seo-analyze/internal/config"
	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

// scoreSocial checks presence of the required Open Graph / Twitter keys.
// Each missing key yields its own finding code so the recommendation
// deduplication keeps them all.
func scoreSocial(b seo.SignalBundle, t config.ThresholdConfig) (int, []seo.Finding) {
	required := t.RequiredSocialKeys
	if len(required) == 0 {
		return 100, nil
	}

	present := 0
	var findings []seo.Finding
	for _, key := range required {
		if b.Social[key] != "" {
			present++
			continue
		}
		code := "social_missing_" + strings.NewReplacer(":", "_").Replace(key)
		findings = append(findings, finding(seo.CategorySocial, code, seo.SeverityWarning,
			fmt.Sprintf("page is missing the %s tag", key)))
	}

	score := int(math.Round(100 * float64(present) / float64(len(required))))
	return score, findings
}
