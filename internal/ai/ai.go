package ai

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrModelUnavailable is returned when the model endpoint cannot be reached or answers with a
	// non-2xx status.
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrMalformedModelResponse is returned when the model endpoint answers with a body that is not
	// the expected JSON envelope.
	ErrMalformedModelResponse = errors.New("malformed model response")
)

// Generator sends a prompt to a generative text model and returns the raw text it produced.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Provider() string
	Model() string
}

// SkillScore is a single skill extracted from a CV with its 0-100 relevance score.
type SkillScore struct {
	Skill string `json:"skill"`
	Score int    `json:"score"`
}

// SkillValidationError reports a skill extraction reply that breaks the requested JSON contract.
type SkillValidationError struct {
	Violations []string
	Err        error
}

func (e *SkillValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("skill extraction validation failed")
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	if len(e.Violations) > 0 {
		sb.WriteString(": ")
		sb.WriteString(strings.Join(e.Violations, "; "))
	}
	return sb.String()
}

func (e *SkillValidationError) Unwrap() error {
	return e.Err
}
