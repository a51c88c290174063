package config

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Quality.validate(); err != nil {
		return fmt.Errorf("quality: %w", err)
	}
	if err := c.Import.validate(); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	if err := c.Assets.validate(); err != nil {
		return fmt.Errorf("assets: %w", err)
	}
	if err := c.Translate.validate(); err != nil {
		return fmt.Errorf("translate: %w", err)
	}
	return nil
}

// Validate checks the settings needed to open a connection pool. Only
// commands that touch the database call it.
func (d DatabaseConfig) Validate() error {
	if d.DSN == "" {
		return errors.New("database.dsn (DATABASE_DSN) is required")
	}
	if d.MaxConns <= 0 {
		return fmt.Errorf("database.max_conns must be > 0 (got %d)", d.MaxConns)
	}
	if d.MinConns < 0 || d.MinConns > d.MaxConns {
		return fmt.Errorf("database.min_conns must be in [0, max_conns] (got %d)", d.MinConns)
	}
	return nil
}

func (q *QualityConfig) validate() error {
	if n := q.Sample(); n < 0 {
		return fmt.Errorf("sample_size must be >= 0 (got %d)", n)
	}
	if q.MismatchMinCount < 1 {
		return fmt.Errorf("mismatch_min_count must be >= 1 (got %d)", q.MismatchMinCount)
	}
	if q.NearDuplicateSimilarity <= 0 || q.NearDuplicateSimilarity > 1 {
		return fmt.Errorf("near_duplicate_similarity must be in (0, 1] (got %v)", q.NearDuplicateSimilarity)
	}
	if q.DisplayLimit < 1 {
		return fmt.Errorf("display_limit must be >= 1 (got %d)", q.DisplayLimit)
	}
	return nil
}

func (i *ImportConfig) validate() error {
	if utf8.RuneCountInString(i.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character (got %q)", i.Delimiter)
	}
	if i.Delimiter == `"` || i.Delimiter == "'" {
		return fmt.Errorf("delimiter cannot be a quote character")
	}
	if i.ErrorDisplayLimit < 1 {
		return fmt.Errorf("error_display_limit must be >= 1 (got %d)", i.ErrorDisplayLimit)
	}
	return nil
}

func (a *AssetsConfig) validate() error {
	if a.ImageDir == "" || a.DocumentDir == "" {
		return errors.New("image_dir and document_dir are required")
	}
	if a.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be > 0 (got %v)", a.RequestsPerSecond)
	}
	if a.Burst < 1 {
		return fmt.Errorf("burst must be >= 1 (got %d)", a.Burst)
	}
	if a.ImageLimit() < 0 || a.DocumentLimit() < 0 {
		return errors.New("max_images and max_documents must be >= 0")
	}
	return nil
}

func (t *TranslateConfig) validate() error {
	switch t.Backend {
	case TranslateBackendHeuristic:
	case TranslateBackendLLM:
		if t.LLMAPIKey == "" {
			return errors.New("llm_api_key is required when backend is llm")
		}
		if t.LLMMaxTokens <= 0 {
			return fmt.Errorf("llm_max_tokens must be > 0 (got %d)", t.LLMMaxTokens)
		}
	default:
		return fmt.Errorf("backend must be %q or %q (got %q)", TranslateBackendHeuristic, TranslateBackendLLM, t.Backend)
	}
	if t.RegenerateBelow < 0 || t.RegenerateBelow > 100 {
		return fmt.Errorf("regenerate_below must be in [0, 100] (got %d)", t.RegenerateBelow)
	}
	return nil
}
