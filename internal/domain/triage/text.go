package triage

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

const fallbackSource = "Fallback Medical AI"

// maxConditionsShown caps how many candidate conditions a report lists.
const maxConditionsShown = 5

// TextAnalyzer scans free-text symptom descriptions against a lexicon.
// It never fails: text with no recognized symptom still yields a valid
// low-confidence result.
type TextAnalyzer struct {
	lexicon Lexicon
}

func NewTextAnalyzer(lex Lexicon) *TextAnalyzer {
	return &TextAnalyzer{lexicon: lex}
}

// Analyze matches every lexicon phrase occurring as a substring of the
// lower-cased input. Overlapping phrases match independently; duplicate
// condition names across matched symptoms are coalesced, keeping
// first-seen order.
func (a *TextAnalyzer) Analyze(text string, now time.Time) *Result {
	lower := strings.ToLower(text)

	var symptoms []string
	var conditions []string
	seen := make(map[string]bool)
	for _, entry := range a.lexicon {
		if !strings.Contains(lower, entry.Phrase) {
			continue
		}
		symptoms = append(symptoms, titleCase(entry.Phrase))
		for _, c := range entry.Conditions {
			if !seen[c] {
				seen[c] = true
				conditions = append(conditions, c)
			}
		}
	}

	if len(symptoms) == 0 {
		return a.noMatchResult(text, now)
	}

	confidence := 75
	if len(symptoms) > 1 {
		confidence = 85
	}
	urgency := UrgencyLow
	if len(symptoms) > 1 {
		urgency = UrgencyModerate
	}

	report := Report{Header: "🩺 SYMPTOM ANALYSIS"}
	report.Add("", fmt.Sprintf("Reported: %q", text))
	report.Add("📋 IDENTIFIED SYMPTOMS", bullets(symptoms)...)
	shown := conditions
	if len(shown) > maxConditionsShown {
		shown = shown[:maxConditionsShown]
	}
	report.Add("🔍 POSSIBLE CONDITIONS", bullets(shown)...)
	report.Add("💡 RECOMMENDATIONS",
		"• Consult a healthcare professional",
		"• Monitor symptom changes",
		"• Keep a symptom diary",
	)
	report.Add("⚠️ DISCLAIMER",
		"AI analysis for reference only. Not a substitute for professional medical advice.",
	)

	return &Result{
		Report:        report,
		Kind:          KindSymptom,
		Confidence:    confidence,
		Urgency:       urgency,
		Source:        fallbackSource,
		Timestamp:     now,
		SymptomsFound: symptoms,
	}
}

func (a *TextAnalyzer) noMatchResult(text string, now time.Time) *Result {
	report := Report{Header: "🩺 SYMPTOM ANALYSIS"}
	report.Add("", fmt.Sprintf("Reported: %q", text))
	report.Add("📋 ASSESSMENT",
		"• No specific symptom identified in the description",
		"• A general health concern was reported",
	)
	report.Add("💡 RECOMMENDATIONS",
		"• Describe symptoms in more detail if possible",
		"• Consult a healthcare professional",
	)
	report.Add("⚠️ DISCLAIMER",
		"AI analysis for reference only. Not a substitute for professional medical advice.",
	)

	return &Result{
		Report:        report,
		Kind:          KindSymptom,
		Confidence:    70,
		Urgency:       UrgencyLow,
		Source:        fallbackSource,
		Timestamp:     now,
		SymptomsFound: []string{},
	}
}

func bullets(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = "• " + s
	}
	return out
}

// titleCase upper-cases the first rune for display, leaving the rest of
// the phrase untouched ("sore throat" → "Sore throat").
func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
