package triage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func TestAnalyzeSingleSymptom(t *testing.T) {
	a := NewTextAnalyzer(DefaultLexicon())

	res := a.Analyze("I have a headache today", testNow)

	require.NotNil(t, res)
	assert.Equal(t, KindSymptom, res.Kind)
	assert.Equal(t, 75, res.Confidence)
	assert.Equal(t, UrgencyLow, res.Urgency)
	assert.Equal(t, []string{"Headache"}, res.SymptomsFound)
	assert.Equal(t, testNow, res.Timestamp)
}

func TestAnalyzeSingleSymptomConditionsComeFromThatEntry(t *testing.T) {
	lex := Lexicon{
		{"headache", []string{"tension headache", "migraine"}},
		{"fever", []string{"viral infection"}},
	}
	a := NewTextAnalyzer(lex)

	res := a.Analyze("constant headache since yesterday", testNow)

	require.Len(t, res.SymptomsFound, 1)
	conditions := sectionLines(t, res.Report, "🔍 POSSIBLE CONDITIONS")
	assert.Equal(t, []string{"• tension headache", "• migraine"}, conditions)
}

func TestAnalyzeTwoSymptoms(t *testing.T) {
	a := NewTextAnalyzer(DefaultLexicon())

	// Scenario: headache + fever
	res := a.Analyze("I have a headache and fever", testNow)

	assert.Equal(t, 85, res.Confidence)
	assert.Equal(t, UrgencyModerate, res.Urgency)
	assert.Equal(t, []string{"Headache", "Fever"}, res.SymptomsFound)

	conditions := sectionLines(t, res.Report, "🔍 POSSIBLE CONDITIONS")
	require.NotEmpty(t, conditions)
	union := map[string]bool{}
	for _, c := range append(DefaultLexicon()[0].Conditions, DefaultLexicon()[1].Conditions...) {
		union["• "+c] = true
	}
	for _, line := range conditions {
		assert.True(t, union[line], "condition %q not in the headache/fever union", line)
	}
}

func TestAnalyzeCaseInsensitiveAndOverlapping(t *testing.T) {
	lex := Lexicon{
		{"eye pain", []string{"eye strain"}},
		{"pain", []string{"injury"}},
	}
	a := NewTextAnalyzer(lex)

	res := a.Analyze("Sharp EYE PAIN on the left", testNow)

	// no longest-match precedence: both phrases match independently
	assert.Equal(t, []string{"Eye pain", "Pain"}, res.SymptomsFound)
	assert.Equal(t, 85, res.Confidence)
}

func TestAnalyzeDeduplicatesConditions(t *testing.T) {
	lex := Lexicon{
		{"nausea", []string{"gastroenteritis", "food poisoning"}},
		{"diarrhea", []string{"gastroenteritis", "intestinal infection"}},
	}
	a := NewTextAnalyzer(lex)

	res := a.Analyze("nausea and diarrhea since morning", testNow)

	conditions := sectionLines(t, res.Report, "🔍 POSSIBLE CONDITIONS")
	assert.Equal(t, []string{
		"• gastroenteritis",
		"• food poisoning",
		"• intestinal infection",
	}, conditions)
}

func TestAnalyzeCapsConditionsAtFive(t *testing.T) {
	a := NewTextAnalyzer(DefaultLexicon())

	res := a.Analyze("headache fever chest pain nausea dizziness", testNow)

	assert.Equal(t, UrgencyModerate, res.Urgency)
	conditions := sectionLines(t, res.Report, "🔍 POSSIBLE CONDITIONS")
	assert.Len(t, conditions, 5)
}

func TestAnalyzeNoMatch(t *testing.T) {
	a := NewTextAnalyzer(DefaultLexicon())

	res := a.Analyze("I feel a bit off lately", testNow)

	require.NotNil(t, res)
	assert.Equal(t, KindSymptom, res.Kind)
	assert.Equal(t, 70, res.Confidence)
	assert.Equal(t, UrgencyLow, res.Urgency)
	assert.Empty(t, res.SymptomsFound)
	assert.NotNil(t, res.SymptomsFound)
}

func TestDefaultLexiconEntriesHaveConditions(t *testing.T) {
	for _, entry := range DefaultLexicon() {
		assert.NotEmpty(t, entry.Conditions, "phrase %q has no conditions", entry.Phrase)
		assert.Equal(t, strings.ToLower(entry.Phrase), entry.Phrase, "phrase %q must be lower-case to match", entry.Phrase)
	}
}

func sectionLines(t *testing.T, r Report, title string) []string {
	t.Helper()
	for _, s := range r.Sections {
		if s.Title == title {
			return s.Lines
		}
	}
	t.Fatalf("section %q not found", title)
	return nil
}
