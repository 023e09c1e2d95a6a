package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/resumeintake/internal/database"
	"github.com/muhammadolammi/resumeintake/internal/section"
	"github.com/streadway/amqp"
)

// Store is the part of *database.Queries the workers call.
type Store interface {
	UpdateSessionStatus(ctx context.Context, arg database.UpdateSessionStatusParams) error
	UpsertResume(ctx context.Context, arg database.UpsertResumeParams) error
	CreateOrUpdateAnalysesResults(ctx context.Context, arg database.CreateOrUpdateAnalysesResultsParams) error
	GetAnalysesResultsBySession(ctx context.Context, sessionID uuid.UUID) (database.AnalysesResult, error)
}

type WorkerConfig struct {
	Config     *Config
	DB         Store
	Blob       BlobClient
	RabbitConn *amqp.Connection
	Analyzer   DocumentAnalyzer
	Parser     *section.Parser
	Evaluator  AgentCaller
	Assistant  AgentCaller
}

// IntakeSession is the message on the intake queue.
type IntakeSession struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Name          string    `json:"name"`
	JobPostingKey string    `json:"job_posting_key"`
	ResumePrefix  string    `json:"resume_prefix"`
}

// CandidateQuestion is the message on the question queue.
type CandidateQuestion struct {
	SessionID uuid.UUID `json:"session_id"`
	UserID    uuid.UUID `json:"user_id"`
	Question  string    `json:"question"`
}

// AnalysisField is one labeled value extracted by the document analyzer.
type AnalysisField struct {
	Type       string  `json:"type"`
	Content    string  `json:"content"`
	Confidence float64 `json:"confidence"`
}

type AnalyzedDocument struct {
	DocType    string                   `json:"doc_type"`
	Confidence float64                  `json:"confidence"`
	Fields     map[string]AnalysisField `json:"fields"`
}

type AnalysisResult struct {
	ModelID   string             `json:"model_id"`
	Documents []AnalyzedDocument `json:"documents"`
}

// FieldContents returns the content of every field of the first document.
func (r *AnalysisResult) FieldContents() map[string]string {
	out := map[string]string{}
	if r == nil || len(r.Documents) == 0 {
		return out
	}
	for name, f := range r.Documents[0].Fields {
		out[name] = f.Content
	}
	return out
}

type CandidateResult struct {
	FileName     string           `json:"file_name"`
	Sections     section.Sections `json:"sections"`
	FitnessScore *int             `json:"fitness_score,omitempty"`
	Evaluation   string           `json:"evaluation,omitempty"`
	// Error result entry
	IsErrorResult bool   `json:"is_error_result"`
	Error         string `json:"error,omitempty"`
}

type AnalysesResults struct {
	ID        uuid.UUID         `json:"id"`
	Results   []CandidateResult `json:"results" db:"results"`
	CreatedAt time.Time         `json:"created_at"`
	SessionID uuid.UUID         `json:"session_id"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// CandidateMatch is a candidate ranked against the keywords of a question.
type CandidateMatch struct {
	Candidate       CandidateResult `json:"candidate"`
	MatchScore      int             `json:"match_score"`
	MatchedKeywords []string        `json:"matched_keywords"`
}
