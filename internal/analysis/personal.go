package analysis

import (
	"regexp"
	"strings"
)

var (
	emailPattern    = regexp.MustCompile(`[\w.+\-]+@[\w.\-]+\.\w+`)
	phonePattern    = regexp.MustCompile(`\(?\d{2}\)?\s?\d{4,5}-?\d{4}`)
	linkedinPattern = regexp.MustCompile(`linkedin\.com/in/[\w\-]+`)
	githubPattern   = regexp.MustCompile(`github\.com/[\w\-]+`)
)

const fallbackName = "Unidentified candidate"

// extractPersonalInfo pulls contact fields out of the resume header. The
// first non-empty line is taken as the name; everything else is first-match
// pattern lookup with empty-string fallbacks.
func extractPersonalInfo(resumeText, lower string) PersonalInfo {
	info := PersonalInfo{
		Name:    fallbackName,
		Country: "Brasil",
	}

	for _, line := range strings.Split(resumeText, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			info.Name = trimmed
			break
		}
	}

	info.Email = emailPattern.FindString(resumeText)
	info.Phone = phonePattern.FindString(resumeText)

	if m := linkedinPattern.FindString(lower); m != "" {
		info.LinkedIn = "https://" + m
	}
	if m := githubPattern.FindString(lower); m != "" {
		info.GitHub = "https://" + m
	}

	info.City = extractCity(lower)
	info.State = extractState(resumeText)

	return info
}

// extractCity resolves against the closed city list, first match wins.
func extractCity(lower string) string {
	for _, city := range knownCities {
		if strings.Contains(lower, strings.ToLower(city)) {
			return city
		}
	}
	return ""
}

// extractState matches two-letter state codes case-sensitively; lowering
// the text would make "sp" inside ordinary words match.
func extractState(resumeText string) string {
	for _, state := range knownStates {
		if strings.Contains(resumeText, state) {
			return state
		}
	}
	return ""
}
