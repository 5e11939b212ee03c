package analysis

import "strings"

// The education, experience and certification extractors are presence-only
// heuristics: if any section marker appears, they return fixed fixture
// records. They are stand-ins for real section segmentation, not parsers.
// A real integration would replace both the detection and the fixtures.

func containsAny(lower string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func extractEducation(lower string) []Education {
	if !containsAny(lower, educationMarkers) {
		return []Education{}
	}
	return []Education{
		{
			Institution: "Universidade de São Paulo",
			Degree:      "Bachelor",
			Field:       "Computer Science",
			StartDate:   "2018-01-01",
			EndDate:     "2021-12-01",
			Description: "Computer Science program focused on software development",
		},
	}
}

func extractExperience(lower string) []Experience {
	if !containsAny(lower, experienceMarkers) {
		return []Experience{}
	}
	return []Experience{
		{
			Company:      "Tech Solutions Ltda",
			Position:     "Frontend Developer",
			StartDate:    "2022-01-01",
			EndDate:      "2024-01-01",
			Current:      false,
			Description:  "Built web applications with React, TypeScript and Next.js; responsible for responsive, optimized interfaces.",
			Technologies: []string{"React", "TypeScript", "Next.js", "Tailwind CSS"},
		},
		{
			Company:      "StartupXYZ",
			Position:     "Full Stack Developer",
			StartDate:    "2021-06-01",
			EndDate:      "2021-12-01",
			Current:      false,
			Description:  "Built an MVP with Node.js and React; implemented REST APIs and database integration.",
			Technologies: []string{"Node.js", "React", "MongoDB", "Express"},
		},
	}
}

func extractCertifications(lower string) []Certification {
	if !containsAny(lower, certificationMarkers) {
		return []Certification{}
	}
	return []Certification{
		{
			Name:       "AWS Certified Developer",
			Issuer:     "Amazon Web Services",
			Date:       "2023-06-01",
			ExpiryDate: "2026-06-01",
		},
	}
}
