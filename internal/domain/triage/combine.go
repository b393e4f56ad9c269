package triage

import "time"

// Combine merges independently scored modality results into one
// comprehensive report. With a single input it is a pass-through; with
// both, the narratives are concatenated under a comprehensive header and
// the confidence is the floor of the mean of the two component scores.
func Combine(textRes, imageRes *Result, now time.Time) *Result {
	if textRes == nil {
		return imageRes
	}
	if imageRes == nil {
		return textRes
	}

	report := Report{Header: "🩺 COMPREHENSIVE MEDICAL ANALYSIS"}
	appendComponent(&report, textRes.Report)
	appendComponent(&report, imageRes.Report)
	report.Add("📊 SUMMARY",
		"• Both text and image modalities were processed",
		"• Clinical correlation of the combined findings is advised",
	)

	urgency := textRes.Urgency
	if imageRes.Urgency == UrgencyModerate {
		urgency = UrgencyModerate
	}

	return &Result{
		Report:              report,
		Kind:                KindComprehensive,
		Confidence:          (textRes.Confidence + imageRes.Confidence) / 2,
		Urgency:             urgency,
		Source:              fallbackSource,
		Timestamp:           now,
		SymptomsFound:       textRes.SymptomsFound,
		ComponentsProcessed: 2,
		Processed:           imageRes.Processed,
	}
}

// appendComponent folds a component report into the combined one, its
// header becoming a section divider.
func appendComponent(dst *Report, src Report) {
	if src.Header != "" {
		dst.Sections = append(dst.Sections, Section{Title: src.Header})
	}
	dst.Sections = append(dst.Sections, src.Sections...)
}
