package score

import (
	"github.com/beydemirfurkan/seo-analyze/internal/config"
	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

// Structured data finding codes.
const (
	CodeStructuredMissing  = "structured_data_missing"
	CodeStructuredNoJSONLD = "structured_data_no_json_ld"
)

const scoreMicrodataOnly = 70

func scoreStructuredData(b seo.SignalBundle, _ config.ThresholdConfig) (int, []seo.Finding) {
	hasJSONLD := false
	hasMicrodata := false
	for _, blk := range b.Structured {
		switch blk.Format {
		case "json-ld":
			hasJSONLD = true
		case "microdata":
			hasMicrodata = true
		}
	}

	switch {
	case hasJSONLD:
		return 100, nil
	case hasMicrodata:
		return scoreMicrodataOnly, []seo.Finding{finding(seo.CategoryStructuredData, CodeStructuredNoJSONLD, seo.SeverityInfo,
			"page uses microdata but no JSON-LD structured data")}
	default:
		return 0, []seo.Finding{finding(seo.CategoryStructuredData, CodeStructuredMissing, seo.SeverityWarning,
			"page has no schema.org structured data")}
	}
}
