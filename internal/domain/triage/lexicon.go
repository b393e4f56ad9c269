package triage

// SymptomEntry maps a symptom phrase to its candidate conditions.
// Phrases are matched case-insensitively as substrings of the input;
// Conditions is never empty.
type SymptomEntry struct {
	Phrase     string
	Conditions []string
}

// Lexicon is an ordered, read-only symptom table built once at process
// start. Entry order fixes the order in which matched symptoms are
// reported.
type Lexicon []SymptomEntry

// DefaultLexicon returns the built-in symptom table.
func DefaultLexicon() Lexicon {
	return Lexicon{
		{"headache", []string{"tension headache", "migraine", "cluster headache", "sinus headache"}},
		{"fever", []string{"viral infection", "bacterial infection", "inflammatory condition"}},
		{"chest pain", []string{"cardiac condition", "respiratory issue", "musculoskeletal strain"}},
		{"abdominal pain", []string{"gastroenteritis", "appendicitis", "digestive issue"}},
		{"shortness of breath", []string{"respiratory infection", "asthma", "cardiac condition"}},
		{"nausea", []string{"gastroenteritis", "food poisoning", "medication side effect"}},
		{"dizziness", []string{"inner ear problem", "blood pressure issue", "dehydration"}},
		{"fatigue", []string{"viral infection", "sleep disorder", "metabolic condition"}},
		{"rash", []string{"allergic reaction", "viral exanthem", "dermatitis"}},
		{"sore throat", []string{"viral pharyngitis", "strep throat", "allergies"}},
		{"cough", []string{"upper respiratory infection", "bronchitis", "post-nasal drip"}},
		{"runny nose", []string{"common cold", "allergic rhinitis", "sinusitis"}},
		{"vomiting", []string{"gastroenteritis", "food poisoning", "migraine"}},
		{"diarrhea", []string{"gastroenteritis", "food intolerance", "intestinal infection"}},
		{"constipation", []string{"dietary issue", "dehydration", "irritable bowel"}},
		{"back pain", []string{"muscle strain", "disc problem", "poor posture"}},
		{"joint pain", []string{"arthritis", "injury", "inflammatory condition"}},
		{"muscle aches", []string{"viral infection", "overexertion", "electrolyte imbalance"}},
		{"ear pain", []string{"ear infection", "wax blockage", "referred dental pain"}},
		{"eye pain", []string{"eye strain", "conjunctivitis", "foreign body"}},
		{"blurred vision", []string{"refractive error", "eye strain", "blood sugar issue"}},
		{"palpitations", []string{"anxiety", "arrhythmia", "thyroid condition"}},
		{"swelling", []string{"fluid retention", "injury", "allergic reaction"}},
		{"numbness", []string{"nerve compression", "circulation issue", "vitamin deficiency"}},
		{"tingling", []string{"nerve irritation", "circulation issue", "vitamin deficiency"}},
		{"night sweats", []string{"infection", "hormonal change", "sleep environment"}},
		{"weakness", []string{"anemia", "viral infection", "metabolic condition"}},
		{"difficulty swallowing", []string{"throat inflammation", "reflux", "esophageal issue"}},
		{"burning urination", []string{"urinary tract infection", "dehydration", "kidney issue"}},
		{"chills", []string{"viral infection", "bacterial infection", "exposure"}},
		{"heartburn", []string{"acid reflux", "gastritis", "dietary trigger"}},
		{"loss of appetite", []string{"viral infection", "digestive issue", "stress"}},
		{"sensitivity to light", []string{"migraine", "eye inflammation", "viral illness"}},
	}
}
