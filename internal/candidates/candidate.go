package candidates

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Profile describes a candidate. Skills is free text, usually comma separated.
type Profile struct {
	Name       string `json:"name" mapstructure:"name"`
	Email      string `json:"email,omitempty" mapstructure:"email"`
	Skills     string `json:"skills" mapstructure:"skills"`
	Experience int    `json:"years_experience" mapstructure:"years_experience"`
	Location   string `json:"location" mapstructure:"location"`
	Sector     string `json:"sector" mapstructure:"sector"`
}

type Profiles struct {
	Items []*Profile
}

// keyAliases maps the column names used by the candidate exports to Profile fields.
var keyAliases = map[string]string{
	"nom":          "name",
	"compétences":  "skills",
	"competences":  "skills",
	"expérience":   "years_experience",
	"experience":   "years_experience",
	"localisation": "location",
	"secteur":      "sector",
}

// LoadFile reads a JSON array of candidate records.
func LoadFile(path string) (*Profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading candidates file %q: %w", path, err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing candidates file %q: %w", path, err)
	}

	profiles := &Profiles{Items: make([]*Profile, 0, len(raw))}
	for i, record := range raw {
		profile, err := Decode(record)
		if err != nil {
			return nil, fmt.Errorf("candidate #%d: %w", i, err)
		}
		profiles.Items = append(profiles.Items, profile)
	}

	return profiles, nil
}

// Decode builds a profile from a raw record, accepting the aliased column names.
func Decode(record map[string]any) (*Profile, error) {
	renamed := make(map[string]any, len(record))
	for key, value := range record {
		normalized := strings.ToLower(strings.TrimSpace(key))
		if alias, ok := keyAliases[normalized]; ok {
			normalized = alias
		}
		renamed[normalized] = value
	}

	var profile Profile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &profile,
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(renamed); err != nil {
		return nil, fmt.Errorf("decode candidate: %w", err)
	}

	profile.Name = strings.TrimSpace(profile.Name)
	return &profile, nil
}

func (p *Profiles) Len() int {
	return len(p.Items)
}

func (p *Profiles) Names() []string {
	names := make([]string, 0, len(p.Items))

	for _, v := range p.Items {
		names = append(names, v.Name)
	}

	return names
}

func (p *Profiles) FindByName(name string) *Profile {
	for _, profile := range p.Items {
		if profile.Name == name {
			return profile
		}
	}

	return nil
}
