package jobs

import "go.uber.org/zap"

// Resolve maps extracted titles back to jobs of the pool by exact normalized title.
// Titles without a match are logged and dropped. A job is returned at most once.
func Resolve(pool Pool, titles []string, logger *zap.Logger) []Job {
	if logger == nil {
		logger = zap.NewNop()
	}

	resolved := make([]Job, 0, len(titles))
	seen := make(map[string]struct{}, len(titles))

	for _, title := range titles {
		key := NormalizeTitle(title)
		if _, ok := seen[key]; ok {
			continue
		}

		job, ok := pool.FindByTitle(title)
		if !ok {
			logger.Warn("recommended job title not found in available jobs", zap.String("title", title))
			continue
		}

		seen[key] = struct{}{}
		resolved = append(resolved, job)
	}

	return resolved
}
