package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/florencehealth/ai-nurse-florence/internal/domain/entities"
	"github.com/florencehealth/ai-nurse-florence/internal/domain/providers"
	apperrors "github.com/florencehealth/ai-nurse-florence/pkg/errors"
)

const sbarSystemPrompt = `You are a clinical documentation assistant helping nurses draft handoff summaries.
Rewrite the clinical notes you are given as an SBAR report.
Respond with a JSON object containing exactly the keys "situation", "background", "assessment" and "recommendation", each holding one short paragraph of plain language.
Do not add commentary outside the JSON object. Do not invent clinical facts that are not present in the notes.`

// sbarHeadingPattern matches one SBAR section heading at the start of a
// line, tolerating markdown bold markers and a trailing colon. Used as the
// fallback when the model answers in prose instead of JSON.
var sbarHeadingPattern = regexp.MustCompile(`(?im)^\s*\**(situation|background|assessment|recommendation)\**\s*:?\s*$|^\s*\**(situation|background|assessment|recommendation)\**\s*:\s*`)

// SummarizeService turns free-form clinical notes into structured SBAR
// reports via an LLM provider, then scores the result for readability.
type SummarizeService struct {
	summarizer  providers.SummarizerProvider
	readability *ReadabilityService
}

// NewSummarizeService creates a new summarize service
func NewSummarizeService(summarizer providers.SummarizerProvider, readability *ReadabilityService) *SummarizeService {
	return &SummarizeService{
		summarizer:  summarizer,
		readability: readability,
	}
}

// SummarizeSBAR generates an SBAR report from clinical notes. The model
// output is parsed as JSON first, falling back to heading-based extraction;
// parsing itself never fails, so a successful completion always yields a
// report even when the model ignores the format instructions.
func (s *SummarizeService) SummarizeSBAR(ctx context.Context, notes string) (*entities.SBARReport, error) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil, apperrors.NewValidationError("notes text is required")
	}

	userPrompt := fmt.Sprintf("Clinical notes:\n\n%s", notes)

	raw, err := s.summarizer.Complete(ctx, sbarSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	report := parseSBAR(raw)
	report.RawText = raw
	report.Provider = s.summarizer.Name()
	report.Model = s.summarizer.Model()

	if combined := report.CombinedText(); combined != "" {
		report.Readability = s.readability.Analyze(combined)
	} else {
		log.Ctx(ctx).Warn().
			Str("provider", report.Provider).
			Msg("SBAR parse matched no sections, returning raw text only")
	}

	return report, nil
}

// parseSBAR extracts the four SBAR sections from model output. JSON is the
// happy path; anything else goes through heading matching. Sections the
// model omitted stay empty.
func parseSBAR(raw string) *entities.SBARReport {
	report := &entities.SBARReport{}

	var fields struct {
		Situation      string `json:"situation"`
		Background     string `json:"background"`
		Assessment     string `json:"assessment"`
		Recommendation string `json:"recommendation"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &fields); err == nil {
		report.Situation = strings.TrimSpace(fields.Situation)
		report.Background = strings.TrimSpace(fields.Background)
		report.Assessment = strings.TrimSpace(fields.Assessment)
		report.Recommendation = strings.TrimSpace(fields.Recommendation)
		if !reportEmpty(report) {
			return report
		}
	}

	assignSBARSections(report, raw)
	return report
}

// assignSBARSections walks heading matches in order and assigns each the
// text up to the next heading.
func assignSBARSections(report *entities.SBARReport, raw string) {
	matches := sbarHeadingPattern.FindAllStringSubmatchIndex(raw, -1)
	for i, m := range matches {
		name := headingName(raw, m)
		if name == "" {
			continue
		}

		end := len(raw)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := strings.TrimSpace(raw[m[1]:end])

		switch name {
		case "situation":
			report.Situation = body
		case "background":
			report.Background = body
		case "assessment":
			report.Assessment = body
		case "recommendation":
			report.Recommendation = body
		}
	}
}

func headingName(raw string, match []int) string {
	// Two alternates in the pattern, so the heading word is in group 1 or 2.
	for _, g := range []int{1, 2} {
		if match[2*g] >= 0 {
			return strings.ToLower(raw[match[2*g]:match[2*g+1]])
		}
	}
	return ""
}

func reportEmpty(r *entities.SBARReport) bool {
	return r.Situation == "" && r.Background == "" && r.Assessment == "" && r.Recommendation == ""
}
