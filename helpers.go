package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/streadway/amqp"
)

var (
	ErrUnsupportedFile    = errors.New("unsupported file type")
	ErrEmptyAgentResponse = errors.New("empty agent response")
	ErrNoJobPosting       = errors.New("no job posting text")
)

// retryInitialInterval is the first wait between attempts; it grows exponentially.
var retryInitialInterval = 500 * time.Millisecond

// retry retries fn up to `attempts` times with exponential backoff. Errors
// wrapped with backoff.Permanent stop immediately.
func retry[T any](ctx context.Context, attempts int, fn func() (T, error)) (T, error) {
	if attempts < 1 {
		attempts = 1
	}
	b := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(retryInitialInterval),
		backoff.WithMaxElapsedTime(0),
	)
	result, err := backoff.RetryWithData(fn, backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx))
	if err != nil {
		return result, fmt.Errorf("after %d attempts: %w", attempts, err)
	}
	return result, nil
}

func CleanJson(input string) string {
	clean := strings.TrimSpace(input)

	// Remove opening ```json or ``` with optional newline
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n") // remove newline immediately after opening backticks

	// Remove closing ``` unconditionally
	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}

const (
	mimePDF  = "application/pdf"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeText = "text/plain"
)

// MimeForFile picks the content type from the file extension.
func MimeForFile(name string) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return mimePDF, nil
	case ".docx":
		return mimeDocx, nil
	case ".txt":
		return mimeText, nil
	}
	// Binary Word 97 (.doc) is rejected: neither the docx reader nor the
	// analyzer can read it.
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFile, name)
}

// ExtractDocumentText returns the plain text of a job posting or resume file.
func ExtractDocumentText(name string, data []byte) (string, error) {
	mime, err := MimeForFile(name)
	if err != nil {
		return "", err
	}
	switch mime {
	case mimePDF:
		return extractPDFText(bytes.NewReader(data))
	case mimeDocx:
		return extractDocxText(bytes.NewReader(data))
	default:
		return string(data), nil
	}
}

func extractPDFText(reader io.ReaderAt) (string, error) {
	pdfReader, err := pdf.NewReader(reader, lenReader(reader))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}

func extractDocxText(reader io.Reader) (string, error) {
	buf := new(bytes.Buffer)
	_, err := io.Copy(buf, reader)
	if err != nil {
		return "", err
	}
	r := bytes.NewReader(buf.Bytes())

	doc, err := docx.ReadDocxFromMemory(r, int64(buf.Len()))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	content := strings.ReplaceAll(doc.Editable().GetContent(), "</w:p>", "\n")
	return html.UnescapeString(xmlTagRe.ReplaceAllString(content, "")), nil
}

var xmlTagRe = regexp.MustCompile(`<[^>]+>`)

// Utility: get reader length for PDF
func lenReader(r io.ReaderAt) int64 {
	switch v := r.(type) {
	case *bytes.Reader:
		return int64(v.Len())
	default:
		return 0
	}
}

// Publisher is the part of an AMQP channel used for session updates.
type Publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// SessionUpdate is the progress event published for a session.
type SessionUpdate struct {
	SessionID string    `json:"session_id"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Answer    string    `json:"answer,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func publishSessionUpdate(pub Publisher, exchange string, update SessionUpdate) error {
	if update.Timestamp.IsZero() {
		update.Timestamp = time.Now()
	}
	body, err := json.Marshal(update)
	if err != nil {
		return err
	}
	routingKey := fmt.Sprintf("session.%s", update.SessionID)

	return pub.Publish(
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
