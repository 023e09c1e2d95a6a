package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/muhammadolammi/resumeintake/internal/database"
	"github.com/streadway/amqp"
)

var errNotFound = errors.New("no such key")

// fastRetry shortens the retry backoff for the duration of a test.
func fastRetry(t *testing.T) {
	t.Helper()
	prev := retryInitialInterval
	retryInitialInterval = time.Millisecond
	t.Cleanup(func() { retryInitialInterval = prev })
}

type fakeBlob struct {
	objects  map[string][]byte
	pageSize int
	gets     map[string]int
}

func newFakeBlob(objects map[string][]byte) *fakeBlob {
	return &fakeBlob{objects: objects, pageSize: 1000, gets: map[string]int{}}
}

func (f *fakeBlob) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Key)
	f.gets[key]++
	data, ok := f.objects[key]
	if !ok {
		return nil, errNotFound
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeBlob) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	start := 0
	if tok := aws.ToString(in.ContinuationToken); tok != "" {
		for i, k := range keys {
			if k == tok {
				start = i
				break
			}
		}
	}
	end := min(start+f.pageSize, len(keys))
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(keys))}
	for _, k := range keys[start:end] {
		out.Contents = append(out.Contents, s3types.Object{Key: aws.String(k)})
	}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(keys[end])
	}
	return out, nil
}

type fakeStore struct {
	mu       sync.Mutex
	statuses []string
	resumes  map[string]database.UpsertResumeParams
	results  map[uuid.UUID][]byte
	failSave int
}

func newFakeStore() *fakeStore {
	return &fakeStore{resumes: map[string]database.UpsertResumeParams{}, results: map[uuid.UUID][]byte{}}
}

func (f *fakeStore) UpdateSessionStatus(ctx context.Context, arg database.UpdateSessionStatusParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, arg.Status)
	return nil
}

func (f *fakeStore) UpsertResume(ctx context.Context, arg database.UpsertResumeParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resumes[arg.ObjectKey] = arg
	return nil
}

func (f *fakeStore) CreateOrUpdateAnalysesResults(ctx context.Context, arg database.CreateOrUpdateAnalysesResultsParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave > 0 {
		f.failSave--
		return errors.New("connection reset")
	}
	f.results[arg.SessionID] = arg.Results
	return nil
}

func (f *fakeStore) GetAnalysesResultsBySession(ctx context.Context, sessionID uuid.UUID) (database.AnalysesResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.results[sessionID]
	if !ok {
		return database.AnalysesResult{}, sql.ErrNoRows
	}
	return database.AnalysesResult{SessionID: sessionID, Results: raw}, nil
}

// fakeAnalyzer returns canned field contents per file name.
type fakeAnalyzer struct {
	fields map[string]map[string]string
	err    error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, fileName string, data []byte) (*AnalysisResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	doc := AnalyzedDocument{DocType: "resume", Confidence: 0.9, Fields: map[string]AnalysisField{}}
	for name, content := range f.fields[fileName] {
		doc.Fields[name] = AnalysisField{Type: "string", Content: content, Confidence: 0.9}
	}
	return &AnalysisResult{ModelID: "test", Documents: []AnalyzedDocument{doc}}, nil
}

type fakeAgent struct {
	mu      sync.Mutex
	reply   func(msg string) (string, error)
	prompts []string
}

func (f *fakeAgent) Ask(ctx context.Context, userID, msg string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, msg)
	f.mu.Unlock()
	return f.reply(msg)
}

type published struct {
	exchange, key string
	msg           amqp.Publishing
}

type fakePublisher struct {
	sent []published
	err  error
}

func (f *fakePublisher) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}
