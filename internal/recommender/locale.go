package recommender

import (
	"fmt"
	"strings"
)

// Locale holds the language-dependent strings shared by the prompts and the response parser.
// The section headers are both requested in the prompt and searched for in the reply.
type Locale struct {
	Code             string
	JobsHeader       string
	CareerHeader     string
	UnknownCandidate string
	NoSkills         string
	MissingField     string
	// UnavailableNarrative is returned instead of a career recommendation when the model could not be reached.
	UnavailableNarrative string
	// MalformedNarrative is returned when the model reply could not be decoded.
	MalformedNarrative string
}

var (
	French = Locale{
		Code:                 "fr",
		JobsHeader:           "Jobs Recommandés:",
		CareerHeader:         "Recommandation de Carrière:",
		UnknownCandidate:     "Candidat inconnu",
		NoSkills:             "Aucune compétence spécifiée",
		MissingField:         "N/A",
		UnavailableNarrative: "Erreur lors de la génération de la recommandation de carrière.",
		MalformedNarrative:   "Erreur lors du décodage de la réponse de l'API pour la recommandation de carrière.",
	}

	English = Locale{
		Code:                 "en",
		JobsHeader:           "Recommended Jobs:",
		CareerHeader:         "Career Recommendation:",
		UnknownCandidate:     "Unknown candidate",
		NoSkills:             "No skills specified",
		MissingField:         "N/A",
		UnavailableNarrative: "An error occurred while generating the career recommendation.",
		MalformedNarrative:   "An error occurred while decoding the API response for the career recommendation.",
	}
)

// LocaleFor returns the locale registered under code. An empty code selects French.
func LocaleFor(code string) (Locale, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "", French.Code:
		return French, nil
	case English.Code:
		return English, nil
	default:
		return Locale{}, fmt.Errorf("unsupported language: %s", code)
	}
}

// Languages lists the supported locale codes, default first.
func Languages() []string {
	return []string{French.Code, English.Code}
}
