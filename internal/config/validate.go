package config

import (
	"fmt"

	"github.com/google/uuid"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server.rate_limit_per_minute must be >= 0 (got %d)", c.Server.RateLimitPerMinute)
	}

	if c.Translation.SourceLang == "" || c.Translation.TargetLang == "" {
		return fmt.Errorf("translation languages must not be empty")
	}
	if c.Translation.SourceLang == c.Translation.TargetLang {
		return fmt.Errorf("translation.source_lang and target_lang must differ (both %q)", c.Translation.SourceLang)
	}

	if c.Quiz.NumQuestions <= 0 {
		return fmt.Errorf("quiz.num_questions must be > 0 (got %d)", c.Quiz.NumQuestions)
	}
	if c.Quiz.NumQuestions > c.Quiz.MaxQuestions {
		return fmt.Errorf("quiz.num_questions %d exceeds max_questions %d", c.Quiz.NumQuestions, c.Quiz.MaxQuestions)
	}

	if c.Auth.DevUserID != "" {
		if _, err := uuid.Parse(c.Auth.DevUserID); err != nil {
			return fmt.Errorf("auth.dev_user_id: %w", err)
		}
	}
	if c.Auth.DevUserID == "" && c.Auth.GoogleClientID == "" {
		return fmt.Errorf("auth: either google_client_id or dev_user_id must be set")
	}

	return nil
}
