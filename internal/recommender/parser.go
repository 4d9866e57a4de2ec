package recommender

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/spigell/smartjob/internal/ai"
	"github.com/spigell/smartjob/internal/jobs"
)

const (
	// MaxRecommendations caps the number of jobs returned by the recommendation flows.
	MaxRecommendations = 3
	// MaxSkills caps the number of skills returned by the extraction flow.
	MaxSkills = 10

	minScore = 0
	maxScore = 100
)

// Parser turns free-form model output into structured data.
type Parser interface {
	// RankedTitles returns the titles of a "1. Title" style list in reply order.
	RankedTitles(text string) []string
	// CVRecommendation splits a CV analysis into accepted canonical titles and a narrative.
	CVRecommendation(text string, pool jobs.Pool) ([]string, string)
	// SkillScores decodes the strict JSON skill list.
	SkillScores(text string) ([]ai.SkillScore, error)
}

const skillsSchemaJSON = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"skill": {"type": "string"},
			"score": {"type": "integer"}
		},
		"required": ["skill", "score"],
		"additionalProperties": false
	}
}`

var skillsSchema = func() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(skillsSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("compile skills schema: %v", err))
	}
	return schema
}()

var (
	rankedLine = regexp.MustCompile(`^[1-3]\.(.*)$`)
	bulletLine = regexp.MustCompile(`^(?:\d+\.|-)\s*(.+)$`)
)

// HeuristicParser tolerates the formatting drift of natural-language replies for the ranking
// flows and enforces the JSON contract for skill extraction.
type HeuristicParser struct {
	locale        Locale
	headerPattern *regexp.Regexp
}

func NewHeuristicParser(locale Locale) *HeuristicParser {
	labels := make([]string, 0, 2)
	for _, header := range []string{locale.JobsHeader, locale.CareerHeader} {
		label := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(header), ":"))
		if label != "" {
			labels = append(labels, regexp.QuoteMeta(label))
		}
	}

	var pattern *regexp.Regexp
	if len(labels) > 0 {
		pattern = regexp.MustCompile(`(?i)^\d+\.\s*(?:` + strings.Join(labels, "|") + `)\s*:?$`)
	}

	return &HeuristicParser{locale: locale, headerPattern: pattern}
}

func (p *HeuristicParser) RankedTitles(text string) []string {
	var titles []string
	for _, line := range strings.Split(text, "\n") {
		match := rankedLine.FindStringSubmatch(strings.TrimSpace(line))
		if match == nil {
			continue
		}
		if title := strings.TrimSpace(match[1]); title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}

func (p *HeuristicParser) CVRecommendation(text string, pool jobs.Pool) ([]string, string) {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	var titles []string
	narrative := normalized

	idx := strings.Index(normalized, p.locale.CareerHeader)
	if idx >= 0 {
		narrative = strings.TrimSpace(normalized[idx+len(p.locale.CareerHeader):])
	} else {
		for _, raw := range p.RankedTitles(normalized) {
			if title, ok := canonicalTitle(raw, pool); ok {
				titles = append(titles, title)
			}
		}
	}

	// The model does not reliably keep the titles inside the job section, so both
	// passes look at the whole reply.
	titles = append(titles, structuralTitles(normalized, pool)...)
	titles = append(titles, mentionedTitles(normalized, pool)...)
	titles = limit(dedupeTitles(titles), MaxRecommendations)

	if idx < 0 && len(titles) == 0 {
		return nil, text
	}

	narrative = p.cleanNarrative(narrative, titles)
	if narrative == "" && strings.TrimSpace(text) != "" {
		narrative = text
	}

	return titles, narrative
}

func (p *HeuristicParser) SkillScores(text string) ([]ai.SkillScore, error) {
	cleaned := extractJSON(text)
	if cleaned == "" {
		return nil, &ai.SkillValidationError{Violations: []string{"(root): empty response"}}
	}

	result, err := skillsSchema.Validate(gojsonschema.NewStringLoader(cleaned))
	if err != nil {
		return nil, &ai.SkillValidationError{Err: fmt.Errorf("parse skills json: %w", err)}
	}

	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			violations = append(violations, fmt.Sprintf("%s: %s", field, desc.Description()))
		}
		return nil, &ai.SkillValidationError{Violations: violations}
	}

	var raw []struct {
		Skill string  `json:"skill"`
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, &ai.SkillValidationError{Err: fmt.Errorf("decode skills: %w", err)}
	}

	skills := make([]ai.SkillScore, 0, min(len(raw), MaxSkills))
	for _, item := range raw {
		if len(skills) == MaxSkills {
			break
		}
		skills = append(skills, ai.SkillScore{Skill: item.Skill, Score: clampScore(item.Score)})
	}

	return skills, nil
}

func (p *HeuristicParser) cleanNarrative(narrative string, titles []string) string {
	patterns := make([]*regexp.Regexp, 0, len(titles))
	for _, title := range titles {
		if pattern := wordPattern(title); pattern != nil {
			patterns = append(patterns, pattern)
		}
	}

	lines := strings.Split(narrative, "\n")
	kept := make([]string, 0, len(lines))

lines:
	for _, line := range lines {
		if p.isSectionHeader(line) {
			continue
		}
		for _, pattern := range patterns {
			if pattern.MatchString(line) {
				continue lines
			}
		}
		kept = append(kept, line)
	}

	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func (p *HeuristicParser) isSectionHeader(line string) bool {
	if p.headerPattern == nil {
		return false
	}
	return p.headerPattern.MatchString(strings.Trim(line, " \t*#_"))
}

// structuralTitles accepts bullet or numbered lines that contain, or are contained in, a pool title.
func structuralTitles(text string, pool jobs.Pool) []string {
	var titles []string
	for _, line := range strings.Split(text, "\n") {
		match := bulletLine.FindStringSubmatch(strings.TrimSpace(line))
		if match == nil {
			continue
		}
		if title, ok := canonicalTitle(match[1], pool); ok {
			titles = append(titles, title)
		}
	}
	return titles
}

func canonicalTitle(candidate string, pool jobs.Pool) (string, bool) {
	normalized := jobs.NormalizeTitle(strings.Trim(candidate, " \t*_\"'`"))
	if normalized == "" {
		return "", false
	}

	if job, ok := pool.FindByTitle(normalized); ok {
		return job.Title, true
	}

	for _, job := range pool {
		title := jobs.NormalizeTitle(job.Title)
		if title == "" {
			continue
		}
		if strings.Contains(normalized, title) || strings.Contains(title, normalized) {
			return job.Title, true
		}
	}

	return "", false
}

// mentionedTitles returns the pool titles that appear as whole words anywhere in the text.
func mentionedTitles(text string, pool jobs.Pool) []string {
	var titles []string
	for _, job := range pool {
		pattern := wordPattern(job.Title)
		if pattern != nil && pattern.MatchString(text) {
			titles = append(titles, job.Title)
		}
	}
	return titles
}

// wordPattern matches title case-insensitively when it is not glued to letters or digits.
func wordPattern(title string) *regexp.Regexp {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])` + regexp.QuoteMeta(title) + `(?:$|[^\p{L}\p{N}_])`)
}

func dedupeTitles(titles []string) []string {
	seen := make(map[string]struct{}, len(titles))
	unique := make([]string, 0, len(titles))
	for _, title := range titles {
		key := jobs.NormalizeTitle(title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, title)
	}
	return unique
}

func limit[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func clampScore(score float64) int {
	switch {
	case score < minScore:
		return minScore
	case score > maxScore:
		return maxScore
	default:
		return int(score)
	}
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}
