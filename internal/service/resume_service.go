package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/qri-io/jsonschema"

	"jobportal/internal/errors"
	"jobportal/internal/model"
	"jobportal/internal/ocr"
)

const (
	analysisMaxTokens   = 800
	analysisTemperature = 0.3
)

// analysisSchema constrains the JSON the model must return.
const analysisSchema = `{
  "type": "object",
  "required": ["score", "improvementPoints", "generalFeedback"],
  "properties": {
    "score": {"type": "integer", "minimum": 0, "maximum": 100},
    "improvementPoints": {
      "type": "array",
      "maxItems": 5,
      "items": {"type": "string"}
    },
    "generalFeedback": {"type": "string"}
  }
}`

const analysisPromptTemplate = `You are a professional career coach and resume expert. A job seeker has uploaded their resume text (extracted via OCR). Please do the following:
1) Assign a Resume Score (0-100) for formatting, clarity, relevance, and keyword usage.
2) List up to 5 specific improvement points (bullet-style) to make the resume stronger.
3) Provide a short general feedback paragraph summarizing the resume's strengths/weaknesses.
4) Return only a JSON object with keys:
   {
     "score": <integer 0-100>,
     "improvementPoints": [ /* up to 5 strings */ ],
     "generalFeedback": "<one-paragraph>"
   }

Here is the resume text:
"""
%s
"""`

// ResumeAnalysis is the structured verdict returned to the seeker.
type ResumeAnalysis struct {
	Score             int      `json:"score"`
	ImprovementPoints []string `json:"improvementPoints"`
	GeneralFeedback   string   `json:"generalFeedback"`
}

// CompletionClient is the slice of the OpenAI client the service needs.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ResumeService scores resume images: OCR, then an LLM pass, then schema
// validation of the model's JSON.
type ResumeService interface {
	AnalyzeResume(ctx context.Context, actor model.Actor, image []byte) (*ResumeAnalysis, error)
}

type resumeService struct {
	extractor ocr.TextExtractor
	llm       CompletionClient
	schema    *jsonschema.Schema
}

// NewResumeService creates a new resume analysis service.
func NewResumeService(extractor ocr.TextExtractor, llm CompletionClient) (ResumeService, error) {
	schema := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(analysisSchema), schema); err != nil {
		return nil, fmt.Errorf("compile analysis schema: %w", err)
	}
	return &resumeService{
		extractor: extractor,
		llm:       llm,
		schema:    schema,
	}, nil
}

// AnalyzeResume runs the OCR + LLM pipeline for a seeker's resume image.
func (s *resumeService) AnalyzeResume(ctx context.Context, actor model.Actor, image []byte) (*ResumeAnalysis, error) {
	if actor.Role != model.RoleJobSeeker {
		return nil, errors.ErrJobSeekerOnly
	}

	text, err := s.extractor.ExtractText(image)
	if err != nil {
		return nil, errors.NewHTTPError(http.StatusInternalServerError, "Failed to extract text from resume")
	}
	if text == "" {
		return nil, errors.BadRequest("Could not read any text from the uploaded resume.")
	}

	resp, err := s.llm.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT3Dot5Turbo,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are an expert resume analyzer."},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(analysisPromptTemplate, text)},
		},
		MaxTokens:   analysisMaxTokens,
		Temperature: analysisTemperature,
	})
	if err != nil {
		return nil, errors.NewHTTPError(http.StatusInternalServerError, "Failed to analyze resume with AI")
	}
	if len(resp.Choices) == 0 {
		return nil, errors.NewHTTPError(http.StatusInternalServerError, "AI returned no analysis")
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	if errs, err := s.schema.ValidateBytes(ctx, []byte(raw)); err != nil || len(errs) > 0 {
		return nil, errors.NewHTTPError(http.StatusInternalServerError, "AI did not return valid JSON")
	}

	var analysis ResumeAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, errors.NewHTTPError(http.StatusInternalServerError, "AI did not return valid JSON")
	}

	return &analysis, nil
}
