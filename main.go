package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	_ "github.com/lib/pq"
	"github.com/muhammadolammi/resumeintake/internal/database"
	"github.com/muhammadolammi/resumeintake/internal/logger"
	"github.com/muhammadolammi/resumeintake/internal/section"
	"github.com/streadway/amqp"
	"google.golang.org/adk/session"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("error opening db")
	}
	defer db.Close()

	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2.AccessKey, cfg.R2.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("error creating aws config")
	}

	analyzer, err := NewGeminiAnalyzer(ctx, cfg.GoogleAPIKey, cfg.AnalysisModel)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create document analyzer")
	}

	sessions := session.InMemoryService()
	evaluator, err := NewAgentCaller(ctx, cfg.GoogleAPIKey, cfg.AgentModel, evaluatorSpec, sessions)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create evaluator agent")
	}
	assistant, err := NewAgentCaller(ctx, cfg.GoogleAPIKey, cfg.AgentModel, assistantSpec, sessions)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create assistant agent")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("error connecting to RabbitMQ")
	}
	defer conn.Close()

	parser := section.New(cfg.ParserOptions()...)
	workerConfig := WorkerConfig{
		Config:     &cfg,
		DB:         database.New(db),
		Blob:       NewR2Client(awsConfig, cfg.R2),
		RabbitConn: conn,
		Analyzer:   analyzer,
		Parser:     parser,
		Evaluator:  evaluator,
		Assistant:  assistant,
	}

	logger.Info().
		Int("workers", cfg.Workers).
		Str("intake_queue", cfg.IntakeQueue).
		Str("question_queue", cfg.QuestionQueue).
		Str("present_sentinel", parser.Sentinel()).
		Msg("starting consumer pool")
	workerConfig.StartConsumerWorkerPool(ctx, cfg.Workers)
}
