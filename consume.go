package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/muhammadolammi/resumeintake/internal/database"
	"github.com/muhammadolammi/resumeintake/internal/logger"
	"github.com/streadway/amqp"
)

const (
	statusProcessing = "processing"
	statusCompleted  = "completed"
	statusFailed     = "failed"
	statusAnswered   = "answered"

	resumeAnalyzed = "analyzed"
	resumeFailed   = "failed"
)

// aggregateResult appends result, marking it as an error entry when err is set.
func aggregateResult(results *AnalysesResults, result CandidateResult, stage string, err error) {
	if err != nil {
		result.IsErrorResult = true
		result.Error = fmt.Sprintf("%s error: %v", stage, err)
	}
	results.Results = append(results.Results, result)
}

// processIntake analyzes every resume of one intake session and stores the
// aggregated results. Per-resume failures become error entries; only failures
// that affect the whole session are returned.
func (wc *WorkerConfig) processIntake(ctx context.Context, s IntakeSession) (*AnalysesResults, error) {
	attempts := wc.Config.RetryAttempts
	bucket := wc.Config.R2.Bucket

	postingBytes, err := retry(ctx, attempts, func() ([]byte, error) {
		return DownloadFromR2(ctx, wc.Blob, bucket, s.JobPostingKey)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download job posting %s: %w", s.JobPostingKey, err)
	}
	jobPosting, err := ExtractDocumentText(s.JobPostingKey, postingBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read job posting %s: %w", s.JobPostingKey, err)
	}
	if strings.TrimSpace(jobPosting) == "" {
		return nil, ErrNoJobPosting
	}

	keys, err := retry(ctx, attempts, func() ([]string, error) {
		return ListObjectsByPrefix(ctx, wc.Blob, bucket, s.ResumePrefix)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes for session %s: %w", s.ID, err)
	}

	results := &AnalysesResults{SessionID: s.ID, Results: []CandidateResult{}}
	for _, key := range keys {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		result, stage, err := wc.evaluateResume(ctx, s, jobPosting, key)
		if err != nil {
			logger.Warn().Err(err).Str("session_id", s.ID.String()).Str("key", key).Str("stage", stage).Msg("resume evaluation failed")
		}
		aggregateResult(results, result, stage, err)
	}

	resultsJSON, err := json.Marshal(results.Results)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analyses results: %w", err)
	}
	_, err = retry(ctx, attempts, func() (any, error) {
		return nil, wc.DB.CreateOrUpdateAnalysesResults(ctx, database.CreateOrUpdateAnalysesResultsParams{
			Results:   resultsJSON,
			SessionID: s.ID,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save analyses results after retries: %w", err)
	}
	return results, nil
}

// evaluateResume runs one resume through download, analysis, section parsing
// and scoring. On failure it returns the partial result and the failing stage.
func (wc *WorkerConfig) evaluateResume(ctx context.Context, s IntakeSession, jobPosting, key string) (CandidateResult, string, error) {
	attempts := wc.Config.RetryAttempts
	result := CandidateResult{FileName: key}

	mime, err := MimeForFile(key)
	if err != nil {
		return result, "file type", err
	}

	data, err := retry(ctx, attempts, func() ([]byte, error) {
		return DownloadFromR2(ctx, wc.Blob, wc.Config.R2.Bucket, key)
	})
	if err != nil {
		return result, "file download", err
	}

	analysis, err := retry(ctx, attempts, func() (*AnalysisResult, error) {
		res, err := wc.Analyzer.Analyze(ctx, key, data)
		if errors.Is(err, ErrUnsupportedFile) {
			return nil, backoff.Permanent(err)
		}
		return res, err
	})
	if err != nil {
		wc.saveResume(ctx, s.ID, key, mime, resumeFailed, nil, result)
		return result, "document analysis", err
	}

	result.Sections = wc.Parser.ParseDocument(analysis.FieldContents())

	evaluation, err := retry(ctx, attempts, func() (string, error) {
		return wc.Evaluator.Ask(ctx, s.UserID.String(), buildEvaluationMessage(jobPosting, result.Sections))
	})
	if err != nil {
		wc.saveResume(ctx, s.ID, key, mime, resumeFailed, analysis, result)
		return result, "agent", err
	}
	result.Evaluation = evaluation
	if score, ok := ExtractScore(evaluation); ok {
		result.FitnessScore = &score
	}

	wc.saveResume(ctx, s.ID, key, mime, resumeAnalyzed, analysis, result)
	return result, "", nil
}

// saveResume upserts the per-resume row. Failures are logged; the aggregated
// session results remain the source of truth.
func (wc *WorkerConfig) saveResume(ctx context.Context, sessionID uuid.UUID, key, mime, status string, analysis *AnalysisResult, result CandidateResult) {
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("failed to marshal analysis")
		return
	}
	sectionsJSON, err := json.Marshal(result.Sections)
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("failed to marshal sections")
		return
	}
	score := sql.NullInt32{}
	if result.FitnessScore != nil {
		score = sql.NullInt32{Int32: int32(*result.FitnessScore), Valid: true}
	}
	_, err = retry(ctx, wc.Config.RetryAttempts, func() (any, error) {
		return nil, wc.DB.UpsertResume(ctx, database.UpsertResumeParams{
			SessionID:    sessionID,
			ObjectKey:    key,
			Mime:         mime,
			Status:       status,
			Analysis:     analysisJSON,
			Sections:     sectionsJSON,
			FitnessScore: score,
		})
	})
	if err != nil {
		logger.Error().Err(err).Str("session_id", sessionID.String()).Str("key", key).Msg("failed to save resume")
	}
}

// processQuestion answers a recruiter question from a session's stored results.
func (wc *WorkerConfig) processQuestion(ctx context.Context, q CandidateQuestion) (string, error) {
	row, err := wc.DB.GetAnalysesResultsBySession(ctx, q.SessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("no analyses results for session %s", q.SessionID)
	}
	if err != nil {
		return "", fmt.Errorf("failed to load analyses results: %w", err)
	}

	var stored []CandidateResult
	if err := json.Unmarshal(row.Results, &stored); err != nil {
		return "", fmt.Errorf("json unmarshal error: %w", err)
	}
	candidates := make([]CandidateResult, 0, len(stored))
	for _, c := range stored {
		if !c.IsErrorResult {
			candidates = append(candidates, c)
		}
	}

	matches := MatchCandidates(ExtractKeywords(q.Question), candidates)
	if len(matches) == 0 {
		for _, c := range candidates {
			matches = append(matches, CandidateMatch{Candidate: c, MatchedKeywords: []string{}})
		}
	}

	return retry(ctx, wc.Config.RetryAttempts, func() (string, error) {
		return wc.Assistant.Ask(ctx, q.UserID.String(), buildQuestionMessage(q.Question, matches))
	})
}

// setStatus records the session status and publishes it as an update.
func (wc *WorkerConfig) setStatus(ctx context.Context, pub Publisher, id uuid.UUID, status, message string) {
	if err := wc.DB.UpdateSessionStatus(ctx, database.UpdateSessionStatusParams{
		Status: status,
		ID:     id,
	}); err != nil {
		logger.Error().Err(err).Str("session_id", id.String()).Str("status", status).Msg("failed to update session status")
	}
	wc.publish(pub, SessionUpdate{SessionID: id.String(), Status: status, Message: message})
}

func (wc *WorkerConfig) publish(pub Publisher, update SessionUpdate) {
	if err := publishSessionUpdate(pub, wc.Config.UpdatesExchange, update); err != nil {
		logger.Error().Err(err).Str("session_id", update.SessionID).Msg("failed to publish update")
	}
}

func (wc *WorkerConfig) handleIntake(ctx context.Context, pub Publisher, body []byte) {
	s := IntakeSession{}
	if err := json.Unmarshal(body, &s); err != nil {
		logger.Error().Err(err).Msg("error unmarshalling intake message")
		if s.ID != uuid.Nil {
			wc.setStatus(ctx, pub, s.ID, statusFailed, "analysis failed")
		}
		return
	}
	log := logger.With().Str("session_id", s.ID.String()).Logger()
	log.Info().Str("name", s.Name).Msg("processing intake session")

	wc.setStatus(ctx, pub, s.ID, statusProcessing, "analysis started")

	results, err := wc.processIntake(ctx, s)
	if err != nil {
		log.Error().Err(err).Msg("intake failed")
		wc.setStatus(ctx, pub, s.ID, statusFailed, "analysis failed")
		return
	}
	log.Info().Int("resumes", len(results.Results)).Msg("session analyzed")
	wc.setStatus(ctx, pub, s.ID, statusCompleted, "analysis completed")
}

func (wc *WorkerConfig) handleQuestion(ctx context.Context, pub Publisher, body []byte) {
	q := CandidateQuestion{}
	if err := json.Unmarshal(body, &q); err != nil {
		logger.Error().Err(err).Msg("error unmarshalling question message")
		return
	}
	answer, err := wc.processQuestion(ctx, q)
	if err != nil {
		logger.Error().Err(err).Str("session_id", q.SessionID.String()).Msg("question failed")
		wc.publish(pub, SessionUpdate{SessionID: q.SessionID.String(), Status: statusFailed, Message: "question failed"})
		return
	}
	wc.publish(pub, SessionUpdate{
		SessionID: q.SessionID.String(),
		Status:    statusAnswered,
		Message:   q.Question,
		Answer:    answer,
	})
}

type messageHandler func(ctx context.Context, pub Publisher, body []byte)

func (wc *WorkerConfig) worker(ctx context.Context, id int, queue string, handle messageHandler, wg *sync.WaitGroup) {
	defer wg.Done()
	log := logger.With().Int("worker", id+1).Str("queue", queue).Logger()

	ch, err := wc.RabbitConn.Channel()
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to rabbitmq channel")
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		wc.Config.UpdatesExchange, // name
		"topic",                   // kind
		true,                      // durable
		false,                     // auto-delete
		false,                     // internal
		false,                     // no-wait
		nil,                       // arguments
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to declare updates exchange")
	}
	_, err = ch.QueueDeclare(
		queue, // queue name
		true,  // durable (survives broker restarts)
		false, // auto-delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to declare queue")
	}

	msgs, err := ch.Consume(
		queue, // queue name
		"",    // consumer tag
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error consuming rabbitmq messages")
	}

	log.Info().Msg("worker started")
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				log.Warn().Msg("delivery channel closed")
				return
			}
			handle(ctx, ch, msg.Body)
		}
	}
}

// StartConsumerWorkerPool runs numWorkers consumers on each queue and blocks
// until they all stop.
func (wc *WorkerConfig) StartConsumerWorkerPool(ctx context.Context, numWorkers int) {
	var wg sync.WaitGroup
	wg.Add(2 * numWorkers)

	for i := range numWorkers {
		go wc.worker(ctx, i, wc.Config.IntakeQueue, wc.handleIntake, &wg)
		go wc.worker(ctx, i, wc.Config.QuestionQueue, wc.handleQuestion, &wg)
	}
	wg.Wait()
}

var _ Publisher = (*amqp.Channel)(nil)
