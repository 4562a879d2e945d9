package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

const samplePage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Specialty Coffee Roasting Guide For Home Baristas</title>
<meta name="description" content="Learn how to roast specialty coffee at home with our detailed guide covering equipment, bean selection, roast profiles and common mistakes to avoid.">
<meta name="keywords" content="coffee, roasting">
<meta name="robots" content="index, follow">
<link rel="canonical" href="https://example.com/guide">
<link rel="alternate" hreflang="de" href="https://example.com/de/guide">
<link rel="stylesheet" href="/main.css">
<meta property="og:title" content="Coffee Roasting Guide">
<meta property="og:description" content="Roast at home">
<meta property="og:image" content="https://example.com/og.png">
<meta name="twitter:card" content="summary_large_image">
<style>@media (max-width: 600px) { body { font-size: 14px; } }</style>
<script type="application/ld+json">{"@context":"https://schema.org","@type":"Article","headline":"Guide"}</script>
</head>
<body>
<h1>Roasting Guide</h1>
<h2>Equipment</h2>
<h3>Drum Roasters</h3>
<p>Roasting coffee at home is rewarding. It takes practice and patience.</p>
<p>Start with small batches. Keep notes on every roast.</p>
<img src="/roaster.jpg" alt="drum roaster">
<img src="/beans.jpg">
<a href="/equipment">equipment reviews</a>
<a href="https://other.org/science" rel="nofollow">roast chemistry</a>
<a href="#top">back to top</a>
<a href="mailto:hi@example.com">contact</a>
<button>Subscribe</button>
<script src="/app.js"></script>
<script>console.log("inline")</script>
</body>
</html>`

func TestParsePage(t *testing.T) {
	t.Parallel()

	bundle, err := ParsePage("https://example.com/guide", []byte(samplePage))
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/guide", bundle.URL)
	assert.Equal(t, "example.com", bundle.Domain)

	require.NotNil(t, bundle.Title)
	assert.Equal(t, "Specialty Coffee Roasting Guide For Home Baristas", *bundle.Title)
	require.NotNil(t, bundle.MetaDescription)
	assert.Contains(t, *bundle.MetaDescription, "roast specialty coffee")

	assert.Equal(t, "coffee, roasting", bundle.MetaKeywords)
	assert.Equal(t, "https://example.com/guide", bundle.CanonicalURL)
	assert.Equal(t, "en", bundle.Language)
	assert.Equal(t, "utf-8", bundle.Charset)

	require.Len(t, bundle.Headings, 3)
	assert.Equal(t, seo.Heading{Level: 1, Text: "Roasting Guide", Position: 0}, bundle.Headings[0])
	assert.Equal(t, 2, bundle.Headings[1].Level)
	assert.Equal(t, 3, bundle.Headings[2].Level)

	require.Len(t, bundle.Images, 2)
	assert.Equal(t, "drum roaster", bundle.Images[0].Alt)
	assert.Empty(t, bundle.Images[1].Alt)

	// Fragment and mailto links are skipped.
	require.Len(t, bundle.Links, 2)
	assert.True(t, bundle.Links[0].Internal)
	assert.False(t, bundle.Links[0].NoFollow)
	assert.False(t, bundle.Links[1].Internal)
	assert.True(t, bundle.Links[1].NoFollow)
	assert.Equal(t, "https://other.org/science", bundle.Links[1].Href)

	assert.Equal(t, "Coffee Roasting Guide", bundle.Social["og:title"])
	assert.Equal(t, "summary_large_image", bundle.Social["twitter:card"])
	assert.Len(t, bundle.Social, 4)

	require.Len(t, bundle.Structured, 1)
	assert.Equal(t, "json-ld", bundle.Structured[0].Format)
	assert.Equal(t, "Article", bundle.Structured[0].Type)

	assert.Greater(t, bundle.WordCount, 10)
	assert.Greater(t, bundle.SentenceCount, 2)
	assert.Equal(t, 2, bundle.ParagraphCount)
	assert.NotZero(t, bundle.Readability.FleschReadingEase)

	tech := bundle.Technical
	assert.True(t, tech.IsHTTPS)
	assert.True(t, tech.HasViewportMeta)
	assert.True(t, tech.HasMediaQueries)
	assert.True(t, tech.HasRobotsMeta)
	assert.True(t, tech.HasHreflang)
	assert.Equal(t, 1, tech.ExternalStylesheets)
	assert.Equal(t, 1, tech.ExternalScripts)
	assert.Equal(t, 1, tech.TouchElements)
}

func TestParsePageMissingElements(t *testing.T) {
	t.Parallel()

	bundle, err := ParsePage("http://bare.example", []byte("<html><body><p>hi there</p></body></html>"))
	require.NoError(t, err)

	assert.Nil(t, bundle.Title)
	assert.Nil(t, bundle.MetaDescription)
	assert.Empty(t, bundle.Headings)
	assert.Empty(t, bundle.Images)
	assert.Empty(t, bundle.Links)
	assert.Empty(t, bundle.Structured)
	assert.False(t, bundle.Technical.IsHTTPS)
}

func TestParsePageEmptyTitleIsNotMissing(t *testing.T) {
	t.Parallel()

	bundle, err := ParsePage("https://example.com", []byte("<html><head><title></title></head><body></body></html>"))
	require.NoError(t, err)

	require.NotNil(t, bundle.Title)
	assert.Empty(t, *bundle.Title)
}

func TestReadability(t *testing.T) {
	t.Parallel()

	simple := Readability("The cat sat. The dog ran. We had fun.")
	hard := Readability("Notwithstanding considerable organizational complexity, institutional stakeholders repeatedly demonstrated extraordinary administrative perseverance.")

	assert.Greater(t, simple.FleschReadingEase, hard.FleschReadingEase)
	assert.Greater(t, hard.ComplexWordPercent, simple.ComplexWordPercent)
	assert.InDelta(t, 3.0, simple.AvgWordsPerSentence, 0.01)

	empty := Readability("")
	assert.Zero(t, empty.FleschReadingEase)
	assert.Zero(t, empty.AvgWordsPerSentence)
}
