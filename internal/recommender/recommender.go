package recommender

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/smartjob/internal/ai"
	"github.com/spigell/smartjob/internal/candidates"
	"github.com/spigell/smartjob/internal/jobs"
	"github.com/spigell/smartjob/internal/logger"
)

const defaultMaxLogLength = 200

const (
	opProfile = "recommend_by_profile"
	opCV      = "recommend_by_cv"
	opSkills  = "extract_skills"
)

// Recommender runs the build prompt -> generate -> parse -> resolve pipeline.
// It keeps no state between calls and may be shared by concurrent callers.
type Recommender struct {
	generator ai.Generator
	parser    Parser
	locale    Locale
	logger    *zap.Logger
	maxLogLen int
}

func New(generator ai.Generator, locale Locale, maxLogLength int, log *zap.Logger) *Recommender {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Recommender{
		generator: generator,
		parser:    NewHeuristicParser(locale),
		locale:    locale,
		logger:    logger.WithCommonFields(log, generator.Provider(), generator.Model()),
		maxLogLen: maxLogLength,
	}
}

// SetParser replaces the response parser.
func (r *Recommender) SetParser(parser Parser) {
	if parser != nil {
		r.parser = parser
	}
}

// RecommendByProfile returns at most three jobs of the pool for the candidate, best first.
// Model failures yield an empty list.
func (r *Recommender) RecommendByProfile(ctx context.Context, candidate candidates.Profile, pool jobs.Pool) []jobs.Job {
	log := logger.WithFields(r.logger, logger.OperationFields(opProfile, uuid.NewString())...)

	raw, err := r.generate(ctx, log, BuildTitleRankingPrompt(r.locale, candidate, pool))
	if err != nil {
		log.Warn("model call failed, returning no recommendations", zap.Error(err))
		return []jobs.Job{}
	}

	titles := r.parser.RankedTitles(raw)
	log.Debug("extracted recommended titles", zap.Strings("titles", titles))

	recommended := limit(jobs.Resolve(pool, titles, log), MaxRecommendations)
	log.Info("recommendations ready", zap.String("candidate", candidate.Name), zap.Int("count", len(recommended)))

	return recommended
}

// RecommendByCV returns at most three jobs of the pool for the CV together with a career narrative.
// Model failures yield an empty list and a localized error narrative.
func (r *Recommender) RecommendByCV(ctx context.Context, cvText string, pool jobs.Pool) ([]jobs.Job, string) {
	log := logger.WithFields(r.logger, logger.OperationFields(opCV, uuid.NewString())...)

	raw, err := r.generate(ctx, log, BuildCVRankingPrompt(r.locale, cvText, pool))
	if err != nil {
		log.Warn("model call failed, returning no recommendations", zap.Error(err))
		if errors.Is(err, ai.ErrMalformedModelResponse) {
			return []jobs.Job{}, r.locale.MalformedNarrative
		}
		return []jobs.Job{}, r.locale.UnavailableNarrative
	}

	titles, narrative := r.parser.CVRecommendation(raw, pool)
	log.Debug("extracted recommended titles",
		zap.Strings("titles", titles),
		zap.String("narrative_preview", logger.TruncateForLog(narrative, r.maxLogLen)),
	)

	recommended := limit(jobs.Resolve(pool, titles, log), MaxRecommendations)
	log.Info("recommendations ready", zap.Int("count", len(recommended)))

	return recommended, narrative
}

// ExtractSkills returns at most ten scored skills found in the CV. Model failures yield an
// empty list; a reply that breaks the JSON contract is returned as *ai.SkillValidationError.
func (r *Recommender) ExtractSkills(ctx context.Context, cvText string) ([]ai.SkillScore, error) {
	log := logger.WithFields(r.logger, logger.OperationFields(opSkills, uuid.NewString())...)

	raw, err := r.generate(ctx, log, BuildSkillExtractionPrompt(r.locale, cvText))
	if err != nil {
		log.Warn("model call failed, returning no skills", zap.Error(err))
		return []ai.SkillScore{}, nil
	}

	skills, err := r.parser.SkillScores(raw)
	if err != nil {
		log.Warn("skill extraction reply rejected", zap.Error(err))
		return nil, err
	}

	for i := range skills {
		skills[i].Score = clampScore(float64(skills[i].Score))
	}

	skills = limit(skills, MaxSkills)
	log.Info("skills extracted", zap.Int("count", len(skills)))

	return skills, nil
}

func (r *Recommender) generate(ctx context.Context, log *zap.Logger, prompt string) (string, error) {
	log.Debug("generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	log.Debug("generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, r.maxLogLen)),
	)

	return raw, nil
}
