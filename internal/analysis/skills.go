package analysis

import "strings"

// extractSkills matches the fixed technical and soft-skill vocabularies by
// case-insensitive substring presence. Levels come from the jitter
// provider so they are stable under the deterministic default.
func (e *Engine) extractSkills(lower string) []Skill {
	skills := make([]Skill, 0, 8)

	for _, name := range techSkillVocab {
		if strings.Contains(lower, strings.ToLower(name)) {
			skills = append(skills, Skill{
				Name:     name,
				Level:    e.jitter.SkillLevel(CategoryTechnical),
				Category: CategoryTechnical,
			})
		}
	}
	for _, name := range softSkillVocab {
		if strings.Contains(lower, strings.ToLower(name)) {
			skills = append(skills, Skill{
				Name:     name,
				Level:    e.jitter.SkillLevel(CategorySoft),
				Category: CategorySoft,
			})
		}
	}
	return skills
}

// extractLanguages always reports the native language; English and Spanish
// are added only on their literal markers, with fixed proficiency levels.
func extractLanguages(lower string) []Language {
	languages := []Language{{Name: "Portuguese", Level: LevelNative}}

	if strings.Contains(lower, "inglês") || strings.Contains(lower, "english") {
		languages = append(languages, Language{Name: "English", Level: LevelAdvanced})
	}
	if strings.Contains(lower, "espanhol") || strings.Contains(lower, "spanish") {
		languages = append(languages, Language{Name: "Spanish", Level: LevelIntermediate})
	}
	return languages
}
