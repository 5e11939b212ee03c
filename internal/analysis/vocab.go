package analysis

// Static vocabularies backing the extractors. The resumes this system sees
// are mostly Brazilian, so section markers carry both Portuguese and
// English spellings and the location lists are the closed sets the
// original dashboard shipped with.

var commonTechKeywords = []string{
	"React",
	"TypeScript",
	"JavaScript",
	"Node.js",
	"Python",
	"Java",
	"SQL",
	"AWS",
	"Docker",
	"Git",
	"Next.js",
	"Vue.js",
	"Angular",
	"MongoDB",
	"PostgreSQL",
	"Redis",
	"Kubernetes",
	"GraphQL",
}

var techSkillVocab = []string{
	"JavaScript", "TypeScript", "React", "Node.js", "Python",
	"Java", "SQL", "Git", "Docker", "AWS",
}

var softSkillVocab = []string{
	"Communication", "Leadership", "Teamwork", "Problem solving", "Creativity",
}

var educationMarkers = []string{
	"universidade", "faculdade", "curso", "graduação", "pós-graduação",
	"mestrado", "doutorado", "técnico",
	"university", "college", "degree", "bachelor", "master",
}

var experienceMarkers = []string{
	"experiência", "trabalho", "empresa", "desenvolvedor", "analista",
	"gerente", "coordenador",
	"experience", "company", "developer", "analyst", "engineer", "manager",
}

var certificationMarkers = []string{
	"certificação", "certificado", "certification", "certificate",
	"aws", "azure", "google cloud", "scrum", "pmp",
}

var knownCities = []string{
	"São Paulo",
	"Rio de Janeiro",
	"Belo Horizonte",
	"Brasília",
	"Salvador",
	"Fortaleza",
	"Curitiba",
	"Recife",
	"Porto Alegre",
	"Goiânia",
}

var knownStates = []string{"SP", "RJ", "MG", "DF", "BA", "CE", "PR", "PE", "RS", "GO"}
