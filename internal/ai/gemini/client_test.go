package gemini

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/smartjob/internal/ai"
)

type fakeModels struct {
	resp      *genai.GenerateContentResponse
	err       error
	lastModel string
	lastText  string
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.lastModel = model
	for _, content := range contents {
		for _, part := range content.Parts {
			f.lastText += part.Text
		}
	}
	return f.resp, f.err
}

func textResponse(texts ...string) *genai.GenerateContentResponse {
	parts := make([]*genai.Part, 0, len(texts))
	for _, text := range texts {
		parts = append(parts, &genai.Part{Text: text})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func TestGeneratorJoinsTextParts(t *testing.T) {
	models := &fakeModels{resp: textResponse("1. Data Scientist", "2. AI Engineer")}
	g := &Generator{models: models, modelName: "gemini-pro", logger: zap.NewNop()}

	out, err := g.GenerateContent(context.Background(), "recommend jobs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "1. Data Scientist\n2. AI Engineer" {
		t.Fatalf("unexpected output: %q", out)
	}

	if models.lastModel != "gemini-pro" || models.lastText != "recommend jobs" {
		t.Fatalf("unexpected request: model=%q text=%q", models.lastModel, models.lastText)
	}
}

func TestGeneratorErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		models *fakeModels
		expect error
	}{
		{
			name:   "api error",
			models: &fakeModels{err: genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}},
			expect: ai.ErrModelUnavailable,
		},
		{
			name:   "empty candidates",
			models: &fakeModels{resp: &genai.GenerateContentResponse{}},
			expect: ai.ErrMalformedModelResponse,
		},
		{
			name:   "blank text",
			models: &fakeModels{resp: textResponse("   ")},
			expect: ai.ErrMalformedModelResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := &Generator{models: tt.models, modelName: "gemini-pro", logger: zap.NewNop()}
			_, err := g.GenerateContent(context.Background(), "prompt")
			if !errors.Is(err, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, err)
			}
		})
	}
}

func TestNewGeneratorRequiresAPIKey(t *testing.T) {
	if _, err := NewGenerator(context.Background(), "  ", "", nil); err == nil {
		t.Fatal("expected error for empty api key")
	}
}
