package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Normalize decodes a raw job record as produced by job boards and aggregator APIs.
// Company and location may be plain strings or objects carrying a "display_name".
func Normalize(raw map[string]any) (Job, error) {
	var job Job

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       displayNameHook,
		WeaklyTypedInput: true,
		Result:           &job,
	})
	if err != nil {
		return Job{}, fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return Job{}, fmt.Errorf("decode job: %w", err)
	}

	job.Title = strings.TrimSpace(job.Title)
	job.Company = strings.TrimSpace(job.Company)
	job.Location = strings.TrimSpace(job.Location)
	job.Description = strings.TrimSpace(job.Description)

	return job, nil
}

func displayNameHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String || from.Kind() != reflect.Map {
		return data, nil
	}

	nested, ok := data.(map[string]any)
	if !ok {
		return "", nil
	}

	if name, ok := nested["display_name"].(string); ok {
		return name, nil
	}

	return "", nil
}

// LoadFile reads a JSON array of raw job records and normalizes them, keeping file order.
func LoadFile(path string) (Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading jobs file %q: %w", path, err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing jobs file %q: %w", path, err)
	}

	pool := make(Pool, 0, len(raw))
	for i, record := range raw {
		job, err := Normalize(record)
		if err != nil {
			return nil, fmt.Errorf("job #%d: %w", i, err)
		}
		pool = append(pool, job)
	}

	return pool, nil
}
