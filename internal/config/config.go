package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Auth        AuthConfig        `yaml:"auth"`
	Transcript  TranscriptConfig  `yaml:"transcript"`
	Translation TranslationConfig `yaml:"translation"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	Quiz        QuizConfig        `yaml:"quiz"`
	Log         LogConfig         `yaml:"log"`
	CORS        CORSConfig        `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`

	// RateLimitPerMinute caps requests per client IP; 0 disables limiting.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"SERVER_RATE_LIMIT_PER_MINUTE" env-default:"240"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds bearer-token verification settings.
// When DevUserID is set, requests without a token run as that user; this is
// a local-development convenience and must stay empty in production.
type AuthConfig struct {
	GoogleClientID string `yaml:"google_client_id" env:"AUTH_GOOGLE_CLIENT_ID"`
	DevUserID      string `yaml:"dev_user_id"      env:"AUTH_DEV_USER_ID"`
}

// TranscriptConfig holds transcript API settings.
type TranscriptConfig struct {
	BaseURL  string `yaml:"base_url" env:"TRANSCRIPT_BASE_URL" env-required:"true"`
	Language string `yaml:"language" env:"TRANSCRIPT_LANGUAGE" env-default:"en"`
}

// TranslationConfig holds the fixed translation language pair.
type TranslationConfig struct {
	SourceLang string `yaml:"source_lang" env:"TRANSLATION_SOURCE_LANG" env-default:"en"`
	TargetLang string `yaml:"target_lang" env:"TRANSLATION_TARGET_LANG" env-default:"ar"`
}

// OpenAIConfig holds OpenAI API settings. An empty APIKey switches translation
// to the local stub and disables quiz and feedback generation.
type OpenAIConfig struct {
	APIKey string `yaml:"api_key" env:"OPENAI_API_KEY"`
	Model  string `yaml:"model"   env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
}

// QuizConfig holds quiz generation settings.
type QuizConfig struct {
	NumQuestions int `yaml:"num_questions" env:"QUIZ_NUM_QUESTIONS" env-default:"5"`
	MaxQuestions int `yaml:"max_questions" env:"QUIZ_MAX_QUESTIONS" env-default:"20"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
