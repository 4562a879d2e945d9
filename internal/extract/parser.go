package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

// ParsePage turns a fetched HTML document into a raw signal bundle. The
// bundle is uncapped; normalization applies the configured maxima later.
func ParsePage(pageURL string, body []byte) (seo.SignalBundle, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return seo.SignalBundle{}, fmt.Errorf("parse html: %w", err)
	}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return seo.SignalBundle{}, fmt.Errorf("parse page url: %w", err)
	}

	bundle := seo.SignalBundle{
		URL:    pageURL,
		Domain: parsed.Hostname(),
	}

	parseHead(doc, &bundle)
	parseHeadings(doc, &bundle)
	parseImages(doc, &bundle)
	parseLinks(doc, parsed, &bundle)
	parseSocial(doc, &bundle)
	parseStructured(doc, &bundle)
	parseText(doc, &bundle)
	parseTechnical(doc, parsed, &bundle)

	return bundle, nil
}

func parseHead(doc *goquery.Document, bundle *seo.SignalBundle) {
	if title := doc.Find("head title").First(); title.Length() > 0 {
		text := strings.TrimSpace(title.Text())
		bundle.Title = &text
	}
	if desc := doc.Find(`head meta[name="description"]`).First(); desc.Length() > 0 {
		content := strings.TrimSpace(desc.AttrOr("content", ""))
		bundle.MetaDescription = &content
	}
	bundle.MetaKeywords = strings.TrimSpace(
		doc.Find(`head meta[name="keywords"]`).First().AttrOr("content", ""))
	bundle.CanonicalURL = strings.TrimSpace(
		doc.Find(`head link[rel="canonical"]`).First().AttrOr("href", ""))
	bundle.Language = strings.TrimSpace(doc.Find("html").First().AttrOr("lang", ""))

	if cs := doc.Find("meta[charset]").First(); cs.Length() > 0 {
		bundle.Charset = strings.TrimSpace(cs.AttrOr("charset", ""))
	} else if ct := doc.Find(`meta[http-equiv="Content-Type"]`).First(); ct.Length() > 0 {
		content := ct.AttrOr("content", "")
		if i := strings.Index(strings.ToLower(content), "charset="); i >= 0 {
			bundle.Charset = strings.TrimSpace(content[i+len("charset="):])
		}
	}
}

func parseHeadings(doc *goquery.Document, bundle *seo.SignalBundle) {
	position := 0
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		level := int(goquery.NodeName(s)[1] - '0')
		bundle.Headings = append(bundle.Headings, seo.Heading{
			Level:    level,
			Text:     strings.TrimSpace(s.Text()),
			Position: position,
		})
		position++
	})
}

func parseImages(doc *goquery.Document, bundle *seo.SignalBundle) {
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		img := seo.Image{
			Src: strings.TrimSpace(s.AttrOr("src", "")),
			Alt: strings.TrimSpace(s.AttrOr("alt", "")),
		}
		if w, err := strconv.Atoi(s.AttrOr("width", "")); err == nil {
			img.Width = w
		}
		if h, err := strconv.Atoi(s.AttrOr("height", "")); err == nil {
			img.Height = h
		}
		bundle.Images = append(bundle.Images, img)
	})
}

func parseLinks(doc *goquery.Document, base *url.URL, bundle *seo.SignalBundle) {
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
			return
		}
		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		bundle.Links = append(bundle.Links, seo.Link{
			Href:     resolved.String(),
			Text:     strings.TrimSpace(s.Text()),
			Internal: sameSite(base.Hostname(), resolved.Hostname()),
			NoFollow: strings.Contains(s.AttrOr("rel", ""), "nofollow"),
		})
	})
}

// sameSite treats the bare domain and its www variant as one site.
func sameSite(a, b string) bool {
	return strings.TrimPrefix(a, "www.") == strings.TrimPrefix(b, "www.")
}

func parseSocial(doc *goquery.Document, bundle *seo.SignalBundle) {
	bundle.Social = make(map[string]string)
	doc.Find("meta[property]").Each(func(_ int, s *goquery.Selection) {
		prop := s.AttrOr("property", "")
		if strings.HasPrefix(prop, "og:") {
			bundle.Social[prop] = s.AttrOr("content", "")
		}
	})
	doc.Find("meta[name]").Each(func(_ int, s *goquery.Selection) {
		name := s.AttrOr("name", "")
		if strings.HasPrefix(name, "twitter:") {
			bundle.Social[name] = s.AttrOr("content", "")
		}
	})
}

func parseStructured(doc *goquery.Document, bundle *seo.SignalBundle) {
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		block := seo.StructuredBlock{Format: "json-ld", Raw: raw}
		var payload struct {
			Type any `json:"@type"`
		}
		if err := json.Unmarshal([]byte(raw), &payload); err == nil {
			if t, ok := payload.Type.(string); ok {
				block.Type = t
			}
		}
		bundle.Structured = append(bundle.Structured, block)
	})
	doc.Find("[itemscope]").Each(func(_ int, s *goquery.Selection) {
		bundle.Structured = append(bundle.Structured, seo.StructuredBlock{
			Format: "microdata",
			Type:   strings.TrimSpace(s.AttrOr("itemtype", "")),
		})
	})
}

func parseText(doc *goquery.Document, bundle *seo.SignalBundle) {
	body := doc.Find("body").Clone()
	body.Find("script, style, noscript").Remove()

	text := strings.Join(strings.Fields(body.Text()), " ")
	bundle.Text = text
	bundle.WordCount = len(strings.Fields(text))
	bundle.SentenceCount = countSentences(text)
	bundle.ParagraphCount = doc.Find("p").Length()
	bundle.Readability = Readability(text)
}

func countSentences(text string) int {
	count := 0
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			count++
		}
	}
	return count
}

func parseTechnical(doc *goquery.Document, base *url.URL, bundle *seo.SignalBundle) {
	t := &bundle.Technical
	t.IsHTTPS = base.Scheme == "https"

	if vp := doc.Find(`meta[name="viewport"]`).First(); vp.Length() > 0 {
		t.HasViewportMeta = true
		t.ViewportContent = vp.AttrOr("content", "")
	}
	if robots := doc.Find(`meta[name="robots"]`).First(); robots.Length() > 0 {
		t.HasRobotsMeta = true
		t.RobotsContent = robots.AttrOr("content", "")
	}
	t.HasHreflang = doc.Find(`link[rel="alternate"][hreflang]`).Length() > 0

	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		if strings.Contains(s.Text(), "@media") {
			t.HasMediaQueries = true
		}
	})
	t.TouchElements = doc.Find("button, input[type=button], input[type=submit], [onclick]").Length()
	t.InlineStyles = doc.Find("[style]").Length() + doc.Find("style").Length()
	t.InlineScripts = doc.Find("script:not([src])").Length()
	t.ExternalStylesheets = doc.Find(`link[rel="stylesheet"]`).Length()
	t.ExternalScripts = doc.Find("script[src]").Length()
}
