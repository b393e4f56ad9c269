package triage

import "strings"

// Section is one titled block of report lines.
type Section struct {
	Title string   `json:"title,omitempty"`
	Lines []string `json:"lines"`
}

// Report is an ordered sequence of sections. Analyzers build reports as
// structured data; rendering to a single narrative string happens once,
// when the response envelope is assembled.
type Report struct {
	Header   string    `json:"header,omitempty"`
	Sections []Section `json:"sections,omitempty"`
}

// Add appends a titled section.
func (r *Report) Add(title string, lines ...string) {
	r.Sections = append(r.Sections, Section{Title: title, Lines: lines})
}

// Freeform wraps provider narrative text in a report with one untitled
// section, so generative and fallback results share the same shape.
func Freeform(text string) Report {
	return Report{Sections: []Section{{Lines: []string{text}}}}
}

// Render flattens the report into display text.
func (r Report) Render() string {
	var b strings.Builder
	if r.Header != "" {
		b.WriteString(r.Header)
	}
	for _, s := range r.Sections {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		if s.Title != "" {
			b.WriteString(s.Title)
			if len(s.Lines) > 0 {
				b.WriteString("\n")
			}
		}
		b.WriteString(strings.Join(s.Lines, "\n"))
	}
	return b.String()
}
