// Package analysis is the resume extraction and compatibility scoring
// engine. It is a deliberate simulation: fixed vocabularies, substring
// heuristics and canned section fixtures standing in for a future real
// model integration. Every extractor degrades to an empty or default value
// instead of failing, so Analyze always returns a best-effort guess.
package analysis

// Level grades a skill or language.
type Level string

const (
	LevelBasic        Level = "Basic"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
	LevelExpert       Level = "Expert"
	LevelFluent       Level = "Fluent"
	LevelNative       Level = "Native"
)

// Category classifies a skill entry.
type Category string

const (
	CategoryTechnical Category = "technical"
	CategorySoft      Category = "soft_skill"
)

// PersonalInfo holds the contact fields pulled from the resume header.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country,omitempty"`
}

// Education is one academic record.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description,omitempty"`
}

// Experience is one employment record.
type Experience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Current      bool     `json:"current"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
}

// Skill is one graded ability.
type Skill struct {
	Name     string   `json:"name"`
	Level    Level    `json:"level"`
	Category Category `json:"category"`
}

// Language is one spoken language with proficiency.
type Language struct {
	Name  string `json:"name"`
	Level Level  `json:"level"`
}

// Certification is one professional certificate.
type Certification struct {
	Name       string `json:"name"`
	Issuer     string `json:"issuer"`
	Date       string `json:"date"`
	ExpiryDate string `json:"expiry_date,omitempty"`
}

// CompleteAnalysis is the full structured result of one resume analysis.
// It is ephemeral: callers decide whether to persist it as a candidate.
type CompleteAnalysis struct {
	PersonalInfo       PersonalInfo    `json:"personal_info"`
	Education          []Education     `json:"education"`
	Experience         []Experience    `json:"experience"`
	Skills             []Skill         `json:"skills"`
	Languages          []Language      `json:"languages"`
	Certifications     []Certification `json:"certifications"`
	Summary            string          `json:"summary"`
	CompatibilityScore int             `json:"compatibility_score"`
	Keywords           []string        `json:"keywords"`
	Strengths          []string        `json:"strengths"`
	Weaknesses         []string        `json:"weaknesses"`
	Recommendations    string          `json:"recommendations"`
	ConfidenceScore    int             `json:"confidence_score"`
}

// Result list caps.
const (
	maxKeywords   = 8
	maxStrengths  = 4
	maxWeaknesses = 2
)
