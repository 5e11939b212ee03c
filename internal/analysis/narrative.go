package analysis

import (
	"fmt"
	"strings"
)

// summarize builds the one-sentence profile summary from extracted counts.
func summarize(experience []Experience, education []Education) string {
	years := 0
	mainTech := "various technologies"
	if len(experience) > 0 {
		years = len(experience) + 1
		if techs := experience[0].Technologies; len(techs) > 0 {
			if len(techs) > 3 {
				techs = techs[:3]
			}
			mainTech = strings.Join(techs, ", ")
		}
	}

	field := "a technical field"
	if len(education) > 0 {
		field = education[0].Field
	}

	return fmt.Sprintf(
		"Professional with %d years of software development experience, specialized in %s. "+
			"Educated in %s with solid knowledge of modern technologies and agile methodologies. "+
			"Shows the ability to work in a team and deliver quality solutions.",
		years, mainTech, field,
	)
}

// identifyStrengths evaluates the fixed rule list in order, capped at
// maxStrengths entries.
func identifyStrengths(experience []Experience, skills []Skill, education []Education) []string {
	strengths := make([]string, 0, maxStrengths)

	if len(experience) >= 2 {
		strengths = append(strengths, "Solid industry experience")
	}

	advanced := 0
	for _, s := range skills {
		if s.Level == LevelAdvanced || s.Level == LevelExpert {
			advanced++
		}
	}
	if advanced >= 3 {
		strengths = append(strengths, "Advanced command of relevant technologies")
	}

	if len(education) > 0 {
		strengths = append(strengths, "Strong academic background")
	}

	for _, s := range skills {
		if s.Category == CategorySoft {
			strengths = append(strengths, "Good interpersonal skills")
			break
		}
	}

	strengths = append(strengths, "Technical profile aligned with the role")

	if len(strengths) > maxStrengths {
		strengths = strengths[:maxStrengths]
	}
	return strengths
}

// identifyWeaknesses evaluates the fixed rule list in order, capped at
// maxWeaknesses entries.
func identifyWeaknesses(lower string, skills []Skill) []string {
	weaknesses := make([]string, 0, maxWeaknesses)

	if !strings.Contains(lower, "liderança") && !strings.Contains(lower, "leadership") {
		weaknesses = append(weaknesses, "Little team leadership experience")
	}

	basic := 0
	for _, s := range skills {
		if s.Level == LevelBasic {
			basic++
		}
	}
	if basic > 2 {
		weaknesses = append(weaknesses, "Several technologies still at a basic level")
	}

	if !strings.Contains(lower, "inglês") && !strings.Contains(lower, "english") {
		weaknesses = append(weaknesses, "No English proficiency mentioned")
	}

	if len(weaknesses) > maxWeaknesses {
		weaknesses = weaknesses[:maxWeaknesses]
	}
	return weaknesses
}

// recommendationForScore maps score bands to fixed narrative sentences.
func recommendationForScore(score int) string {
	switch {
	case score >= 90:
		return "Exceptional candidate! Proceed straight to a final interview; the profile is highly aligned with the role."
	case score >= 80:
		return "Excellent candidate! Schedule a technical interview to validate specific knowledge."
	case score >= 70:
		return "Good candidate with potential. Consider an initial interview and assess cultural fit."
	case score >= 60:
		return "Interesting profile with some gaps. Evaluate whether internal development is an option."
	default:
		return "Candidate does not meet the minimum requirements for the role at this time."
	}
}
