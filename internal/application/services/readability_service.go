package services

import (
	"math"
	"regexp"
	"strings"

	"github.com/florencehealth/ai-nurse-florence/internal/domain/entities"
)

// Suggestion thresholds. The suggestion wording and cutoffs are tuned
// against this syllable heuristic's output distribution; changing one
// without the other shifts which texts get flagged.
const (
	maxWordsPerSentence = 20
	longWordLength      = 13
	easeFloor           = 60.0
)

const (
	suggestionShortenSentences = "Shorten long sentences: aim for 12–16 words per sentence."
	suggestionSimplerWords     = "Replace long words with simpler alternatives when possible."
	suggestionPlainLanguage    = "Use bullets and plain language to improve readability."
)

// wordPattern matches runs of ASCII letters, keeping contractions and
// possessives ("don't", "patient's") as a single token.
var wordPattern = regexp.MustCompile(`(?i)[a-z]+(?:'[a-z]+)?`)

// ReadabilityService scores patient-facing text with the Flesch Reading
// Ease and Flesch-Kincaid Grade Level formulas. It is pure and stateless:
// safe to share across any number of request goroutines.
type ReadabilityService struct{}

// NewReadabilityService creates a new readability service
func NewReadabilityService() *ReadabilityService {
	return &ReadabilityService{}
}

// Analyze scores text and returns a fresh report. It is total: every input,
// including empty or non-ASCII text, produces a well-formed report.
func (s *ReadabilityService) Analyze(text string) *entities.ReadabilityReport {
	sentences := splitSentences(text)
	words := splitWords(text)

	syllables := 0
	for _, word := range words {
		syllables += countSyllables(word)
	}

	ease, grade := readabilityScores(len(sentences), len(words), syllables)

	return &entities.ReadabilityReport{
		FleschReadingEase:  ease,
		FleschKincaidGrade: grade,
		Sentences:          len(sentences),
		Words:              len(words),
		Syllables:          syllables,
		Suggestions:        buildSuggestions(len(sentences), words, ease),
	}
}

// splitSentences cuts text after each `.`, `!` or `?` that is followed by
// whitespace, keeping the terminator on the preceding fragment. Text with
// no terminator at all is a single sentence.
func splitSentences(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	sentences := []string{}
	runes := []rune(trimmed)
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		if i+1 >= len(runes) || !isSpace(runes[i+1]) {
			continue
		}
		fragment := strings.TrimSpace(string(runes[start : i+1]))
		if fragment != "" {
			sentences = append(sentences, fragment)
		}
		start = i + 1
	}

	if rest := strings.TrimSpace(string(runes[start:])); rest != "" {
		sentences = append(sentences, rest)
	}

	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v'
}

// splitWords extracts alphabetic tokens anywhere in the text, preserving
// internal apostrophes. Digits and punctuation contribute nothing.
func splitWords(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

// countSyllables approximates syllables by counting contiguous vowel
// groups, with a correction for a silent trailing `e`. Floors at 1 so
// vowel-less words ("nth") still count as one syllable. This is the
// standard dictionary-free heuristic; it is best-effort, not exact.
func countSyllables(word string) int {
	lower := strings.ToLower(word)

	count := 0
	prevVowel := false
	for _, r := range lower {
		isVowel := strings.ContainsRune("aeiouy", r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}

	if strings.HasSuffix(lower, "e") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

// readabilityScores computes Flesch Reading Ease and Flesch-Kincaid Grade
// Level, both rounded to 2 decimals. Degenerate input (no sentences or no
// words) short-circuits to 0.0 for both before any division.
func readabilityScores(sentenceCount, wordCount, syllableCount int) (float64, float64) {
	if sentenceCount == 0 || wordCount == 0 {
		return 0.0, 0.0
	}

	wordsPerSentence := float64(wordCount) / float64(sentenceCount)
	syllablesPerWord := float64(syllableCount) / float64(wordCount)

	ease := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
	grade := 0.39*wordsPerSentence + 11.8*syllablesPerWord - 15.59

	return round2(ease), round2(grade)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// buildSuggestions applies the fixed improvement rules in order. Each rule
// contributes at most one entry, so the list never holds duplicates.
func buildSuggestions(sentenceCount int, words []string, ease float64) []string {
	suggestions := []string{}
	if sentenceCount == 0 || len(words) == 0 {
		return suggestions
	}

	if float64(len(words))/float64(sentenceCount) > maxWordsPerSentence {
		suggestions = append(suggestions, suggestionShortenSentences)
	}

	for _, word := range words {
		if len(word) >= longWordLength {
			suggestions = append(suggestions, suggestionSimplerWords)
			break
		}
	}

	if ease < easeFloor {
		suggestions = append(suggestions, suggestionPlainLanguage)
	}

	return suggestions
}
