package recommender

import (
	"embed"
	"path"
	"strings"

	"github.com/spigell/smartjob/internal/candidates"
	"github.com/spigell/smartjob/internal/jobs"
)

//go:embed prompts/*/*.md
var promptFS embed.FS

const (
	titleRankingTemplate    = "title_ranking"
	cvRankingTemplate       = "cv_ranking"
	skillExtractionTemplate = "skill_extraction"
)

var fallbackTemplates = map[string]string{
	titleRankingTemplate:    "Candidate: {{CANDIDATE_NAME}}\nSkills: {{CANDIDATE_SKILLS}}\n\nJobs:\n{{JOBS}}\n\nReply only with a numbered list of at most 3 job titles.",
	cvRankingTemplate:       "CV:\n{{CV_TEXT}}\n\nJobs:\n{{JOBS}}\n\n{{JOBS_HEADER}}\n1.\n\n{{CAREER_HEADER}}",
	skillExtractionTemplate: "CV:\n{{CV_TEXT}}\n\nReturn only a JSON array of at most 10 objects like [{\"skill\": \"Python\", \"score\": 90}].",
}

// BuildTitleRankingPrompt asks for a bare numbered list of at most three job titles for the candidate.
func BuildTitleRankingPrompt(locale Locale, candidate candidates.Profile, pool jobs.Pool) string {
	name := strings.TrimSpace(candidate.Name)
	if name == "" {
		name = locale.UnknownCandidate
	}

	skills := strings.TrimSpace(candidate.Skills)
	if skills == "" {
		skills = locale.NoSkills
	}

	return render(locale, titleRankingTemplate,
		"{{CANDIDATE_NAME}}", name,
		"{{CANDIDATE_SKILLS}}", skills,
		"{{JOBS}}", describeJobs(locale, pool),
	)
}

// BuildCVRankingPrompt asks for a numbered job list and a career narrative under the locale section headers.
func BuildCVRankingPrompt(locale Locale, cvText string, pool jobs.Pool) string {
	return render(locale, cvRankingTemplate,
		"{{CV_TEXT}}", cvText,
		"{{JOBS}}", describeJobs(locale, pool),
		"{{JOBS_HEADER}}", locale.JobsHeader,
		"{{CAREER_HEADER}}", locale.CareerHeader,
	)
}

// BuildSkillExtractionPrompt asks for a JSON array of up to ten skill/score objects.
func BuildSkillExtractionPrompt(locale Locale, cvText string) string {
	return render(locale, skillExtractionTemplate, "{{CV_TEXT}}", cvText)
}

func describeJobs(locale Locale, pool jobs.Pool) string {
	entries := make([]string, 0, len(pool))
	for _, job := range pool {
		entries = append(entries, "Job Title: "+orMissing(locale, job.Title)+"\nDescription: "+orMissing(locale, job.Description))
	}
	return strings.Join(entries, "\n")
}

func orMissing(locale Locale, value string) string {
	if value == "" {
		return locale.MissingField
	}
	return value
}

// render substitutes every placeholder in a single pass so that inputs containing
// placeholder-like text are never expanded.
func render(locale Locale, name string, replacements ...string) string {
	template := fallbackTemplates[name]
	if data, err := promptFS.ReadFile(path.Join("prompts", locale.Code, name+".md")); err == nil {
		if text := strings.TrimSpace(string(data)); text != "" {
			template = text
		}
	}

	return strings.NewReplacer(replacements...).Replace(template)
}
