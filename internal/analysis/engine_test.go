package analysis

import (
	"reflect"
	"testing"
)

const scenarioResume = `João Silva
joao.silva@email.com
(11) 98765-4321
São Paulo, SP

Desenvolvedor frontend com experiência em React, TypeScript e Next.js.
Inglês avançado.
Universidade de São Paulo, graduação em Ciência da Computação.`

const scenarioRequirements = "React, TypeScript, Next.js"

func TestAnalyzeScenario(t *testing.T) {
	engine := NewEngine()
	result := engine.Analyze(scenarioResume, scenarioRequirements)

	wantKeywords := []string{"React", "TypeScript", "Next.js"}
	if !reflect.DeepEqual(result.Keywords, wantKeywords) {
		t.Errorf("keywords = %v, want %v", result.Keywords, wantKeywords)
	}

	// 3 matched keywords at 15 points each, zero noise.
	if result.CompatibilityScore != 45 {
		t.Errorf("score = %d, want 45", result.CompatibilityScore)
	}

	if result.PersonalInfo.Name != "João Silva" {
		t.Errorf("name = %q", result.PersonalInfo.Name)
	}
	if result.PersonalInfo.Email != "joao.silva@email.com" {
		t.Errorf("email = %q", result.PersonalInfo.Email)
	}
	if result.PersonalInfo.Phone != "(11) 98765-4321" {
		t.Errorf("phone = %q", result.PersonalInfo.Phone)
	}
	if result.PersonalInfo.City != "São Paulo" || result.PersonalInfo.State != "SP" {
		t.Errorf("location = %q/%q", result.PersonalInfo.City, result.PersonalInfo.State)
	}
	if result.PersonalInfo.Country != "Brasil" {
		t.Errorf("country = %q", result.PersonalInfo.Country)
	}

	if len(result.Education) != 1 {
		t.Errorf("education entries = %d, want 1", len(result.Education))
	}
	if len(result.Experience) != 2 {
		t.Errorf("experience entries = %d, want 2", len(result.Experience))
	}

	wantLanguages := []Language{
		{Name: "Portuguese", Level: LevelNative},
		{Name: "English", Level: LevelAdvanced},
	}
	if !reflect.DeepEqual(result.Languages, wantLanguages) {
		t.Errorf("languages = %v, want %v", result.Languages, wantLanguages)
	}

	if len(result.Strengths) == 0 || len(result.Strengths) > maxStrengths {
		t.Errorf("strengths = %v", result.Strengths)
	}
	if len(result.Weaknesses) == 0 || len(result.Weaknesses) > maxWeaknesses {
		t.Errorf("weaknesses = %v", result.Weaknesses)
	}
	if result.ConfidenceScore != 90 {
		t.Errorf("confidence = %d, want 90", result.ConfidenceScore)
	}
}

func TestAnalyzeDeterministicIdempotent(t *testing.T) {
	engine := NewEngine()

	first := engine.Analyze(scenarioResume, scenarioRequirements)
	second := engine.Analyze(scenarioResume, scenarioRequirements)

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated analysis of the same input produced different results")
	}
}

func TestAnalyzeEmptyResume(t *testing.T) {
	engine := NewEngine()
	result := engine.Analyze("", "")

	if result.PersonalInfo.Name != "Unidentified candidate" {
		t.Errorf("name = %q", result.PersonalInfo.Name)
	}
	if len(result.Keywords) != 0 {
		t.Errorf("keywords = %v, want none", result.Keywords)
	}
	if len(result.Education) != 0 || len(result.Experience) != 0 || len(result.Certifications) != 0 {
		t.Error("empty resume should produce no section entries")
	}
	// No requirements: the score falls back to the jitter provider's
	// uninformative value.
	if result.CompatibilityScore != 85 {
		t.Errorf("score = %d, want 85", result.CompatibilityScore)
	}
	if len(result.Languages) != 1 || result.Languages[0].Name != "Portuguese" {
		t.Errorf("languages = %v", result.Languages)
	}
}

func TestAnalyzeScoreAndKeywordCaps(t *testing.T) {
	engine := NewEngine()
	resume := "react typescript javascript node.js python java sql aws docker git kubernetes graphql"
	result := engine.Analyze(resume, "react, typescript, javascript")

	if len(result.Keywords) != maxKeywords {
		t.Errorf("keywords = %d, want cap %d", len(result.Keywords), maxKeywords)
	}
	if result.CompatibilityScore != 100 {
		t.Errorf("score = %d, want capped 100", result.CompatibilityScore)
	}
}

func TestAnalyzeCustomKeywords(t *testing.T) {
	engine := NewEngine(WithCustomKeywords([]string{"Golang"}))
	result := engine.Analyze("Desenvolvedora com experiência em golang.", "")

	found := false
	for _, k := range result.Keywords {
		if k == "Golang" {
			found = true
		}
	}
	if !found {
		t.Errorf("keywords = %v, want Golang present", result.Keywords)
	}
}

func TestSeededJitterReproducible(t *testing.T) {
	first := NewEngine(WithJitter(Seeded(42))).Analyze(scenarioResume, scenarioRequirements)
	second := NewEngine(WithJitter(Seeded(42))).Analyze(scenarioResume, scenarioRequirements)

	if !reflect.DeepEqual(first, second) {
		t.Error("same seed produced different results")
	}
	if first.CompatibilityScore < 45 || first.CompatibilityScore > 74 {
		t.Errorf("seeded score = %d, want 45 plus noise below 30", first.CompatibilityScore)
	}
}

func TestRecommendationBands(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{95, "Exceptional"},
		{85, "Excellent"},
		{75, "Good candidate"},
		{65, "Interesting profile"},
		{30, "does not meet"},
	}
	for _, tc := range cases {
		got := recommendationForScore(tc.score)
		if !containsAny(got, []string{tc.want}) {
			t.Errorf("recommendation(%d) = %q, want it to mention %q", tc.score, got, tc.want)
		}
	}
}
