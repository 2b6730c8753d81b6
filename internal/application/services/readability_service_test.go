package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadabilityService_Analyze_EmptyText(t *testing.T) {
	svc := NewReadabilityService()

	report := svc.Analyze("")

	require.NotNil(t, report)
	assert.Equal(t, 0.0, report.FleschReadingEase)
	assert.Equal(t, 0.0, report.FleschKincaidGrade)
	assert.Equal(t, 0, report.Sentences)
	assert.Equal(t, 0, report.Words)
	assert.Equal(t, 0, report.Syllables)
	assert.Empty(t, report.Suggestions)
	assert.NotNil(t, report.Suggestions, "suggestions should marshal as [] rather than null")
}

func TestReadabilityService_Analyze_SimpleSentence(t *testing.T) {
	svc := NewReadabilityService()

	report := svc.Analyze("This is a simple test sentence.")

	assert.Equal(t, 1, report.Sentences)
	assert.Equal(t, 6, report.Words)
	assert.Equal(t, 7, report.Syllables)
	assert.InDelta(t, 102.05, report.FleschReadingEase, 0.02)
	assert.InDelta(t, 0.52, report.FleschKincaidGrade, 0.02)
	assert.Empty(t, report.Suggestions)
}

func TestReadabilityService_Analyze_LongSentenceSuggestion(t *testing.T) {
	svc := NewReadabilityService()
	text := strings.TrimSpace(strings.Repeat("cat ", 25)) + "."

	report := svc.Analyze(text)

	assert.Equal(t, 1, report.Sentences)
	assert.Equal(t, 25, report.Words)
	assert.Equal(t, []string{suggestionShortenSentences}, report.Suggestions)
}

func TestReadabilityService_Analyze_LongWordSuggestion(t *testing.T) {
	svc := NewReadabilityService()

	report := svc.Analyze("extraordinarily")

	assert.Equal(t, 1, report.Sentences)
	assert.Equal(t, 1, report.Words)
	// A single polysyllabic word drives the ease score far below 60, so
	// the plain-language suggestion fires too, after the long-word one.
	assert.Equal(t, []string{suggestionSimplerWords, suggestionPlainLanguage}, report.Suggestions)
}

func TestReadabilityService_Analyze_ContractionsStayWhole(t *testing.T) {
	words := splitWords("Don't worry, it's fine.")

	assert.Equal(t, []string{"Don't", "worry", "it's", "fine"}, words)
}

func TestReadabilityService_Analyze_Deterministic(t *testing.T) {
	svc := NewReadabilityService()
	text := "Take one tablet by mouth twice daily. Call your nurse if dizziness occurs!"

	first := svc.Analyze(text)
	second := svc.Analyze(text)

	assert.Equal(t, first, second)
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "terminators retained",
			text: "Hello world. How are you? Great!",
			want: []string{"Hello world.", "How are you?", "Great!"},
		},
		{
			name: "no terminator is one sentence",
			text: "a fragment without punctuation",
			want: []string{"a fragment without punctuation"},
		},
		{
			name: "trailing terminator does not add an empty sentence",
			text: "One. Two.",
			want: []string{"One.", "Two."},
		},
		{
			name: "abbreviations split naively",
			text: "Dr. Smith arrived.",
			want: []string{"Dr.", "Smith arrived."},
		},
		{
			name: "whitespace only",
			text: "   \n\t ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitSentences(tt.text))
		})
	}
}

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"hello", 2},
		{"simple", 1},
		{"sentence", 2},
		{"queue", 1},
		{"apple", 1},
		{"idea", 2},
		{"rhythm", 1},
		{"nth", 1}, // no vowels at all still floors at one
		{"extraordinarily", 6},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, countSyllables(tt.word))
		})
	}
}

func TestSplitWords_IgnoresDigitsAndPunctuation(t *testing.T) {
	words := splitWords("Take 2 tablets (500mg) -- twice!")

	assert.Equal(t, []string{"Take", "tablets", "mg", "twice"}, words)
}
