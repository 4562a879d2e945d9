package extract

import (
	"strings"
	"unicode"

	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

// Words with this many syllables or more count as complex.
const complexSyllables = 3

// Readability computes sentence-level statistics and the Flesch reading-ease
// score for the extracted text. An empty text yields zeroed metrics.
func Readability(text string) seo.ReadabilityMetrics {
	words := strings.Fields(text)
	if len(words) == 0 {
		return seo.ReadabilityMetrics{}
	}

	sentences := countSentences(text)
	if sentences == 0 {
		sentences = 1
	}

	totalSyllables := 0
	complexWords := 0
	for _, w := range words {
		s := syllables(w)
		totalSyllables += s
		if s >= complexSyllables {
			complexWords++
		}
	}

	wordCount := float64(len(words))
	avgWordsPerSentence := wordCount / float64(sentences)
	avgSyllablesPerWord := float64(totalSyllables) / wordCount

	// Flesch reading ease: 206.835 - 1.015*(words/sentences) - 84.6*(syllables/words).
	flesch := 206.835 - 1.015*avgWordsPerSentence - 84.6*avgSyllablesPerWord

	return seo.ReadabilityMetrics{
		FleschReadingEase:   flesch,
		AvgWordsPerSentence: avgWordsPerSentence,
		ComplexWordPercent:  float64(complexWords) / wordCount * 100,
	}
}

// syllables approximates the syllable count of one word by counting vowel
// groups, with the common silent-e adjustment.
func syllables(word string) int {
	word = strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	if word == "" {
		return 0
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
