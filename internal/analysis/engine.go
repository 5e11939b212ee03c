package analysis

import "strings"

// Engine runs the full analysis pipeline. It holds no mutable state and is
// safe for concurrent use as long as the Jitter provider is (the
// deterministic default is).
type Engine struct {
	jitter         Jitter
	customKeywords []string
}

// Option configures an Engine.
type Option func(*Engine)

// WithJitter overrides the nondeterminism provider.
func WithJitter(j Jitter) Option {
	return func(e *Engine) {
		if j != nil {
			e.jitter = j
		}
	}
}

// WithCustomKeywords extends the keyword vocabulary, typically from the
// custom_keywords setting.
func WithCustomKeywords(keywords []string) Option {
	return func(e *Engine) {
		e.customKeywords = keywords
	}
}

// NewEngine builds an engine with the deterministic jitter provider unless
// overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{jitter: Deterministic()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze produces a complete structured analysis of resumeText. When
// jobRequirements is non-empty the compatibility score is driven by keyword
// matches against it; otherwise the score falls back to the jitter
// provider's uninformative range. Analyze never fails: malformed or empty
// input yields a result with empty lists and default fields.
func (e *Engine) Analyze(resumeText, jobRequirements string) CompleteAnalysis {
	lower := strings.ToLower(resumeText)

	personal := extractPersonalInfo(resumeText, lower)
	education := extractEducation(lower)
	experience := extractExperience(lower)
	skills := e.extractSkills(lower)
	languages := extractLanguages(lower)
	certifications := extractCertifications(lower)

	keywords := e.extractKeywords(lower, jobRequirements)

	var score int
	if strings.TrimSpace(jobRequirements) != "" {
		score = compatibilityScore(len(keywords), e.jitter.ScoreNoise())
	} else {
		score = e.jitter.UnscoredScore()
	}

	return CompleteAnalysis{
		PersonalInfo:       personal,
		Education:          education,
		Experience:         experience,
		Skills:             skills,
		Languages:          languages,
		Certifications:     certifications,
		Summary:            summarize(experience, education),
		CompatibilityScore: score,
		Keywords:           keywords,
		Strengths:          identifyStrengths(experience, skills, education),
		Weaknesses:         identifyWeaknesses(lower, skills),
		Recommendations:    recommendationForScore(score),
		ConfidenceScore:    e.jitter.Confidence(),
	}
}

// compatibilityScore is the scoring rule: 15 points per matched keyword
// plus the noise term, capped at 100.
func compatibilityScore(matched, noise int) int {
	score := matched*15 + noise
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// extractKeywords intersects the keyword vocabulary (common technologies,
// configured custom keywords, then tokens of the job requirements) against
// the resume text. Result keeps vocabulary order, not relevance order, and
// is capped at maxKeywords.
func (e *Engine) extractKeywords(lowerResume, jobRequirements string) []string {
	vocab := make([]string, 0, len(commonTechKeywords)+len(e.customKeywords)+8)
	vocab = append(vocab, commonTechKeywords...)
	vocab = append(vocab, e.customKeywords...)

	if jobRequirements != "" {
		for _, token := range strings.FieldsFunc(jobRequirements, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		}) {
			if len(token) > 2 {
				vocab = append(vocab, token)
			}
		}
	}

	found := make([]string, 0, maxKeywords)
	seen := make(map[string]struct{})
	for _, keyword := range vocab {
		if len(found) >= maxKeywords {
			break
		}
		lowerKeyword := strings.ToLower(keyword)
		if _, dup := seen[lowerKeyword]; dup {
			continue
		}
		if strings.Contains(lowerResume, lowerKeyword) {
			seen[lowerKeyword] = struct{}{}
			found = append(found, keyword)
		}
	}
	return found
}
