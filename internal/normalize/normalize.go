// Package normalize bounds raw signal bundles before scoring.
package normalize

import (
	"strings"

	"github.com/beydemirfurkan/seo-analyze/internal/config"
	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

// Bundle returns a copy of the raw bundle with every sequence capped at the
// configured maxima, whitespace trimmed, and duplicate images/links dropped.
// Truncation is deterministic: the first N entries in document order survive.
// Absent title/meta stay nil; a present-but-empty value stays a pointer to ""
// so scorers can tell the two apart.
func Bundle(raw seo.SignalBundle, cfg config.AnalyzerConfig) seo.SignalBundle {
	out := raw
	out.Title = trimmed(raw.Title)
	out.MetaDescription = trimmed(raw.MetaDescription)
	out.MetaKeywords = strings.TrimSpace(raw.MetaKeywords)
	out.CanonicalURL = strings.TrimSpace(raw.CanonicalURL)
	out.Text = capRunes(raw.Text, cfg.MaxTextLength)
	out.Headings = capHeadings(raw.Headings, cfg.MaxHeadings)
	out.Images = capImages(raw.Images, cfg.MaxImages)
	out.Links = capLinks(raw.Links, cfg.MaxLinks)
	out.Social = cloneSocial(raw.Social)
	out.Structured = append([]seo.StructuredBlock(nil), raw.Structured...)
	return out
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func capRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func capHeadings(headings []seo.Heading, max int) []seo.Heading {
	out := make([]seo.Heading, 0, len(headings))
	for _, h := range headings {
		text := strings.TrimSpace(h.Text)
		if text == "" {
			continue
		}
		h.Text = text
		out = append(out, h)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

func capImages(images []seo.Image, max int) []seo.Image {
	seen := make(map[string]struct{}, len(images))
	out := make([]seo.Image, 0, len(images))
	for _, img := range images {
		img.Src = strings.TrimSpace(img.Src)
		img.Alt = strings.TrimSpace(img.Alt)
		if img.Src != "" {
			if _, dup := seen[img.Src]; dup {
				continue
			}
			seen[img.Src] = struct{}{}
		}
		out = append(out, img)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

func capLinks(links []seo.Link, max int) []seo.Link {
	type key struct{ href, text string }
	seen := make(map[key]struct{}, len(links))
	out := make([]seo.Link, 0, len(links))
	for _, l := range links {
		l.Href = strings.TrimSpace(l.Href)
		l.Text = strings.TrimSpace(l.Text)
		k := key{l.Href, l.Text}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, l)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

func cloneSocial(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}
