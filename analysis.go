package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/muhammadolammi/resumeintake/internal/section"
	"google.golang.org/genai"
)

// DocumentAnalyzer extracts labeled fields from a resume file.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, fileName string, data []byte) (*AnalysisResult, error)
}

// analyzedFields are the labels requested from the model, in prompt order.
var analyzedFields = []string{
	section.Education.FieldName(),
	section.Experience.FieldName(),
	section.Certificates.FieldName(),
	section.Awards.FieldName(),
	"기본정보",
}

type geminiAnalyzer struct {
	client *genai.Client
	model  string
}

func NewGeminiAnalyzer(ctx context.Context, apiKey, model string) (DocumentAnalyzer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &geminiAnalyzer{client: client, model: model}, nil
}

func analysisInstruction() string {
	return fmt.Sprintf(`
You are a document field extractor for Korean resumes.
Read the attached resume and return the raw text of these labeled sections: %s.

Copy each section's text exactly as it appears, one visual line per line, separated by "\n".
Do not reformat dates, do not merge lines, do not translate.
If a section is missing, omit it.

Return only JSON in this format:
{
  "doc_type": string,
  "confidence": number,
  "fields": {
    "<label>": {"type": "string", "content": string, "confidence": number}
  }
}
`, strings.Join(analyzedFields, ", "))
}

func (a *geminiAnalyzer) Analyze(ctx context.Context, fileName string, data []byte) (*AnalysisResult, error) {
	mime, err := MimeForFile(fileName)
	if err != nil {
		return nil, err
	}
	var part *genai.Part
	if mime == mimeText {
		part = genai.NewPartFromText(string(data))
	} else {
		part = genai.NewPartFromBytes(data, mime)
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{genai.NewContentFromParts([]*genai.Part{part}, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(analysisInstruction(), genai.RoleUser),
			ResponseMIMEType:  "application/json",
			Temperature:       genai.Ptr[float32](0),
		})
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", fileName, err)
	}
	return decodeAnalysis(a.model, resp.Text())
}

// decodeAnalysis turns the model's JSON reply into an AnalysisResult.
func decodeAnalysis(modelID, raw string) (*AnalysisResult, error) {
	cleaned := CleanJson(raw)
	if cleaned == "" {
		return nil, ErrEmptyAgentResponse
	}
	var doc AnalyzedDocument
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal error: %w", err)
	}
	if doc.Fields == nil {
		doc.Fields = map[string]AnalysisField{}
	}
	return &AnalysisResult{ModelID: modelID, Documents: []AnalyzedDocument{doc}}, nil
}
