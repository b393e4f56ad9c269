package triage

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Finding is one simulated diagnostic template. The catalog is fixed and
// immutable; no real image understanding happens here.
type Finding struct {
	Category        string
	Findings        string
	Recommendations []string
}

// DefaultCatalog returns the built-in finding templates, spanning
// imaging, lab, and exam modalities.
func DefaultCatalog() []Finding {
	return []Finding{
		{"Chest X-Ray", "Lung fields appear symmetric; no obvious consolidation visible in the simulated review.", []string{"Professional radiological review required", "Correlate with respiratory symptoms", "Repeat imaging if symptoms persist"}},
		{"Bone X-Ray", "Bone cortex continuity assessed; alignment within expected limits on simulated review.", []string{"Orthopedic consultation advised", "Immobilize the area if painful", "Follow-up imaging in 2 weeks if pain continues"}},
		{"Head CT Scan", "No gross asymmetry noted between hemispheres in the simulated assessment.", []string{"Neurological evaluation recommended", "Report any worsening headache immediately", "Clinical correlation with symptoms advised"}},
		{"Abdominal CT Scan", "Organ contours reviewed; no large simulated abnormality flagged.", []string{"Gastroenterology review advised", "Correlate with abdominal symptoms", "Laboratory workup may be needed"}},
		{"Brain MRI", "Simulated review of grey-white differentiation completed without flagged regions.", []string{"Neurologist interpretation required", "Bring prior scans for comparison", "Follow up on any new symptoms"}},
		{"Spine MRI", "Vertebral alignment and disc spaces reviewed in simulation.", []string{"Spine specialist consultation advised", "Physical therapy assessment may help", "Avoid heavy lifting until reviewed"}},
		{"Abdominal Ultrasound", "Echotexture of visible organs assessed in the simulated pass.", []string{"Professional sonographic review required", "Fasting repeat study may be needed", "Correlate with digestive symptoms"}},
		{"Thyroid Ultrasound", "Gland outline and echogenicity reviewed in simulation.", []string{"Endocrinology consultation advised", "Thyroid function blood tests recommended", "Follow-up ultrasound in 6 months"}},
		{"Mammogram", "Breast tissue density patterns assessed in the simulated review.", []string{"Radiologist interpretation required", "Continue routine screening schedule", "Report any palpable changes promptly"}},
		{"Echocardiogram", "Chamber proportions and wall motion reviewed in simulation.", []string{"Cardiology review required", "Correlate with blood pressure readings", "Repeat study if symptoms change"}},
		{"Bone Density Scan", "Simulated densitometry values compared against reference ranges.", []string{"Discuss results with a physician", "Ensure adequate calcium and vitamin D", "Weight-bearing exercise recommended"}},
		{"Complete Blood Count", "Cell-line values compared against reference intervals in simulation.", []string{"Physician review of values required", "Repeat testing to confirm any outliers", "Correlate with fatigue or infection signs"}},
		{"Metabolic Panel", "Electrolytes and kidney markers reviewed against simulated ranges.", []string{"Physician interpretation required", "Maintain hydration before retesting", "Dietary review may be advised"}},
		{"Lipid Panel", "Cholesterol fractions assessed against simulated target ranges.", []string{"Discuss cardiovascular risk with a doctor", "Dietary and exercise review suggested", "Repeat fasting panel in 3 months"}},
		{"Urinalysis", "Color, clarity, and simulated dipstick markers reviewed.", []string{"Clinical correlation required", "Increase fluid intake", "Repeat test if urinary symptoms persist"}},
		{"Thyroid Panel", "TSH and hormone levels compared against simulated reference ranges.", []string{"Endocrine review recommended", "Repeat testing in 6-8 weeks", "Report energy or weight changes"}},
		{"Liver Function Panel", "Enzyme levels reviewed against simulated reference intervals.", []string{"Physician review required", "Avoid alcohol until reviewed", "Medication list review advised"}},
		{"HbA1c Test", "Glycated hemoglobin estimate compared against simulated targets.", []string{"Diabetes risk discussion advised", "Dietary counseling may help", "Repeat measurement in 3 months"}},
		{"Microbial Culture", "Simulated growth assessment over the standard incubation window.", []string{"Await full laboratory confirmation", "Complete any prescribed antibiotics", "Follow up on sensitivity results"}},
		{"Electrocardiogram", "Rhythm and interval patterns reviewed in the simulated trace.", []string{"Cardiology interpretation required", "Report palpitations or chest pain promptly", "Baseline comparison recommended"}},
		{"Electroencephalogram", "Background rhythm reviewed in the simulated recording.", []string{"Neurological interpretation required", "Sleep-deprived repeat study may be needed", "Keep an event diary"}},
		{"Dermatology Photo", "Lesion borders, color, and symmetry assessed in the simulated review.", []string{"In-person dermatology exam advised", "Photograph the area weekly for comparison", "Use sun protection"}},
		{"Retinal Photo", "Optic disc and vessel patterns reviewed in simulation.", []string{"Ophthalmology review required", "Report vision changes immediately", "Annual retinal screening advised"}},
		{"Wound Photo", "Wound edges and surrounding tissue reviewed in the simulated pass.", []string{"Clinical wound assessment advised", "Keep the area clean and covered", "Watch for spreading redness or discharge"}},
		{"Endoscopy Capture", "Mucosal surface appearance reviewed in the simulated frame.", []string{"Gastroenterologist interpretation required", "Follow pre- and post-procedure guidance", "Report persistent symptoms"}},
	}
}

// HashPolicy derives the template deterministically from the filename
// (FNV-1a modulo catalog size), so the same upload name always produces
// the same report. This is the default policy.
type HashPolicy struct{}

func (HashPolicy) Select(filename string, n int) int {
	if n <= 0 {
		return 0
	}
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(filename)))
	return int(h.Sum32() % uint32(n))
}

// RandomPolicy picks uniformly at random, preserving the original
// non-reproducible behavior. The policy is shared across requests and
// rand.Rand is not safe for concurrent use, so the source is guarded.
type RandomPolicy struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomPolicy(seed int64) *RandomPolicy {
	return &RandomPolicy{rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomPolicy) Select(_ string, n int) int {
	if n <= 0 {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Intn(n)
}

// ImageSimulator renders a templated report for an uploaded medical
// image. It never fails on a readable file and does not validate file
// types; the extension allow-list lives at the transport boundary.
type ImageSimulator struct {
	catalog []Finding
	policy  SelectionPolicy
}

func NewImageSimulator(policy SelectionPolicy) *ImageSimulator {
	return &ImageSimulator{catalog: DefaultCatalog(), policy: policy}
}

// Analyze builds the fixed-format image report: file info, the selected
// finding, its recommendations, and a disclaimer. Confidence is a fixed
// 82 and the file is always marked processed.
func (s *ImageSimulator) Analyze(filename string, size int64, mime string, now time.Time) *Result {
	ext := fileExtension(filename)
	finding := s.catalog[s.policy.Select(filename, len(s.catalog))]

	report := Report{Header: "📸 MEDICAL IMAGE ANALYSIS"}
	report.Add("📁 FILE INFORMATION",
		"• Image: "+filename,
		"• Format: "+strings.ToUpper(ext),
		fmt.Sprintf("• Size: %.1f KB", float64(size)/1024),
		"• Type: "+mime,
		"• Processed: yes",
	)
	report.Add("🔍 "+strings.ToUpper(finding.Category),
		"• "+finding.Findings,
	)
	report.Add("💡 RECOMMENDATIONS", bullets(finding.Recommendations)...)
	report.Add("⚠️ DISCLAIMER",
		"AI image analysis for demonstration. Requires professional medical interpretation.",
	)

	return &Result{
		Report:     report,
		Kind:       KindImaging,
		Confidence: 82,
		Urgency:    UrgencyLow,
		Source:     fallbackSource,
		Timestamp:  now,
		Processed:  true,
	}
}

// fileExtension returns the lower-cased suffix after the last dot, or
// "unknown" when the name has none.
func fileExtension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 || i == len(filename)-1 {
		return "unknown"
	}
	return strings.ToLower(filename[i+1:])
}
