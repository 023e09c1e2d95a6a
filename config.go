package main

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/muhammadolammi/resumeintake/internal/section"
)

type R2Config struct {
	AccountID string `env:"R2_ACCOUNT_ID,required,notEmpty"`
	Bucket    string `env:"R2_BUCKET,required,notEmpty"`
	AccessKey string `env:"R2_ACCESS_KEY,required,notEmpty"`
	SecretKey string `env:"R2_SECRET_KEY,required,notEmpty"`
}

// Endpoint is the S3-compatible endpoint for the account.
func (c R2Config) Endpoint() string {
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID)
}

// Config is read from the environment (and .env when present).
type Config struct {
	DBURL        string `env:"DB_URL,required,notEmpty"`
	RabbitMQURL  string `env:"RABBITMQ_URL,required,notEmpty"`
	GoogleAPIKey string `env:"GOOGLE_API_KEY,required,notEmpty"`
	R2           R2Config

	AgentModel    string `env:"AGENT_MODEL" envDefault:"gemini-2.5-pro"`
	AnalysisModel string `env:"ANALYSIS_MODEL" envDefault:"gemini-2.5-flash"`

	Workers         int    `env:"WORKERS" envDefault:"3"`
	IntakeQueue     string `env:"INTAKE_QUEUE" envDefault:"intake_sessions"`
	QuestionQueue   string `env:"QUESTION_QUEUE" envDefault:"candidate_questions"`
	UpdatesExchange string `env:"UPDATES_EXCHANGE" envDefault:"session_updates"`
	RetryAttempts   int    `env:"RETRY_ATTEMPTS" envDefault:"3"`

	// PresentSentinel replaces "현재"-style markers in work periods. Empty means
	// the current month at startup.
	PresentSentinel string   `env:"PRESENT_SENTINEL"`
	PresentMarkers  []string `env:"PRESENT_MARKERS" envSeparator:","`
	SkipPolicy      string   `env:"SECTION_SKIP_POLICY" envDefault:"one"`
	SectionFallback bool     `env:"SECTION_FALLBACK" envDefault:"false"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// LoadConfig loads .env if it exists, then parses the environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Workers < 1 {
		return Config{}, fmt.Errorf("WORKERS must be positive, got %d", cfg.Workers)
	}
	return cfg, nil
}

// ParserOptions maps the section settings onto parser options.
func (c Config) ParserOptions() []section.Option {
	opts := []section.Option{
		section.WithSkipPolicy(section.ParseSkipPolicy(c.SkipPolicy)),
		section.WithFallback(c.SectionFallback),
	}
	if s := strings.TrimSpace(c.PresentSentinel); s != "" {
		opts = append(opts, section.WithSentinel(s))
	}
	var markers []string
	for _, m := range c.PresentMarkers {
		if m = strings.TrimSpace(m); m != "" {
			markers = append(markers, m)
		}
	}
	if len(markers) > 0 {
		opts = append(opts, section.WithPresentMarkers(markers...))
	}
	return opts
}
