package triage

import (
	"time"
)

// Kind classifies how a result was produced.
type Kind string

const (
	KindGemini        Kind = "gemini_medical"
	KindFallback      Kind = "fallback_medical"
	KindSymptom       Kind = "symptom_analysis"
	KindImaging       Kind = "medical_imaging"
	KindComprehensive Kind = "comprehensive_medical"
	KindError         Kind = "error"
)

// Urgency is a coarse low/moderate signal derived from symptom count.
// Only the fallback analyzers set it.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyModerate Urgency = "moderate"
)

// Result is the outcome of one analysis request. A Result is built fresh
// per request, owned by that request, and never stored.
type Result struct {
	Report              Report    `json:"report"`
	Kind                Kind      `json:"type"`
	Confidence          int       `json:"confidence"`
	Urgency             Urgency   `json:"urgency,omitempty"`
	Source              string    `json:"source"`
	Timestamp           time.Time `json:"timestamp"`
	SymptomsFound       []string  `json:"symptoms_found,omitempty"`
	ComponentsProcessed int       `json:"components_processed,omitempty"`
	Processed           bool      `json:"processed,omitempty"`
}

// Narrative renders the structured report to display text.
func (r *Result) Narrative() string {
	return r.Report.Render()
}
