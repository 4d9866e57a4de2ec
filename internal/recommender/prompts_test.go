package recommender

import (
	"strings"
	"testing"

	"github.com/spigell/smartjob/internal/candidates"
	"github.com/spigell/smartjob/internal/jobs"
)

func promptPool() jobs.Pool {
	return jobs.Pool{
		{Title: "Senior Python Developer", Description: "Experienced Python developer for web applications."},
		{Title: "Data Scientist", Description: "Analyzing large datasets, building ML models."},
		{Title: "Web Designer"},
	}
}

func TestBuildTitleRankingPrompt(t *testing.T) {
	candidate := candidates.Profile{Name: "Alice Dupont", Skills: "Python, Machine Learning, SQL"}

	prompt := BuildTitleRankingPrompt(French, candidate, promptPool())

	for _, expected := range []string{
		"Alice Dupont",
		"Python, Machine Learning, SQL",
		"Job Title: Senior Python Developer\nDescription: Experienced Python developer for web applications.",
		"Job Title: Data Scientist\nDescription: Analyzing large datasets, building ML models.",
		"Job Title: Web Designer\nDescription: N/A",
		"liste numérotée",
	} {
		if !strings.Contains(prompt, expected) {
			t.Fatalf("expected prompt to contain %q, got:\n%s", expected, prompt)
		}
	}

	if strings.Contains(prompt, "{{") {
		t.Fatalf("unexpected placeholder left in prompt:\n%s", prompt)
	}
}

func TestBuildTitleRankingPromptDefaults(t *testing.T) {
	prompt := BuildTitleRankingPrompt(French, candidates.Profile{}, nil)

	if !strings.Contains(prompt, French.UnknownCandidate) {
		t.Fatalf("expected unknown candidate placeholder, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, French.NoSkills) {
		t.Fatalf("expected no skills placeholder, got:\n%s", prompt)
	}
}

func TestBuildPromptsAreDeterministic(t *testing.T) {
	candidate := candidates.Profile{Name: "Alice Dupont", Skills: "Python"}
	cv := "Alice Dupont\nSkills: Python, SQL"

	for _, locale := range []Locale{French, English} {
		if BuildTitleRankingPrompt(locale, candidate, promptPool()) != BuildTitleRankingPrompt(locale, candidate, promptPool()) {
			t.Fatalf("%s: title ranking prompt is not deterministic", locale.Code)
		}
		if BuildCVRankingPrompt(locale, cv, promptPool()) != BuildCVRankingPrompt(locale, cv, promptPool()) {
			t.Fatalf("%s: cv ranking prompt is not deterministic", locale.Code)
		}
		if BuildSkillExtractionPrompt(locale, cv) != BuildSkillExtractionPrompt(locale, cv) {
			t.Fatalf("%s: skill extraction prompt is not deterministic", locale.Code)
		}
	}
}

func TestBuildCVRankingPromptUsesLocaleHeaders(t *testing.T) {
	cv := "Alice Dupont\nData scientist, 5 years."

	tests := []struct {
		name   string
		locale Locale
	}{
		{name: "french", locale: French},
		{name: "english", locale: English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildCVRankingPrompt(tt.locale, cv, promptPool())

			for _, expected := range []string{cv, tt.locale.JobsHeader, tt.locale.CareerHeader, "Job Title: Data Scientist", "150-200"} {
				if !strings.Contains(prompt, expected) {
					t.Fatalf("expected prompt to contain %q, got:\n%s", expected, prompt)
				}
			}
		})
	}
}

func TestBuildSkillExtractionPrompt(t *testing.T) {
	cv := "Bob Martin\nJava, Spring, Kubernetes"

	prompt := BuildSkillExtractionPrompt(English, cv)

	for _, expected := range []string{cv, `"skill"`, `"score"`, "10", `[{"skill": "Python", "score": 90}`} {
		if !strings.Contains(prompt, expected) {
			t.Fatalf("expected prompt to contain %q, got:\n%s", expected, prompt)
		}
	}
}

func TestBuildPromptDoesNotExpandPlaceholdersFromInput(t *testing.T) {
	cv := "My CV mentions {{JOBS}} and {{CAREER_HEADER}} literally."

	prompt := BuildCVRankingPrompt(French, cv, promptPool())

	if !strings.Contains(prompt, cv) {
		t.Fatalf("expected cv text to be embedded verbatim, got:\n%s", prompt)
	}
}

func TestLocaleFor(t *testing.T) {
	if locale, err := LocaleFor(""); err != nil || locale.Code != "fr" {
		t.Fatalf("expected french default, got %q (%v)", locale.Code, err)
	}
	if locale, err := LocaleFor(" EN "); err != nil || locale.Code != "en" {
		t.Fatalf("expected english, got %q (%v)", locale.Code, err)
	}
	if _, err := LocaleFor("de"); err == nil {
		t.Fatal("expected error for unsupported language")
	}
}
