package jobs

import "strings"

// Job is a canonical job posting. Title is the matching key and is not guaranteed to be unique.
type Job struct {
	Title       string `json:"title" mapstructure:"title" db:"title"`
	Company     string `json:"company" mapstructure:"company" db:"company"`
	Location    string `json:"location" mapstructure:"location" db:"location"`
	Description string `json:"description" mapstructure:"description" db:"description"`
}

type Pool []Job

func (p Pool) Len() int {
	return len(p)
}

func (p Pool) Titles() []string {
	titles := make([]string, 0, len(p))
	for _, job := range p {
		titles = append(titles, job.Title)
	}
	return titles
}

// FindByTitle returns the first job whose normalized title equals the normalized input.
func (p Pool) FindByTitle(title string) (Job, bool) {
	want := NormalizeTitle(title)
	for _, job := range p {
		if NormalizeTitle(job.Title) == want {
			return job, true
		}
	}
	return Job{}, false
}

// NormalizeTitle case-folds and trims a title for comparison.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
