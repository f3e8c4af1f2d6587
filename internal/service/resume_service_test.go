package service

import (
	"context"
	"net/http"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "jobportal/internal/errors"
	"jobportal/internal/model"
)

// MockTextExtractor is a mock implementation of ocr.TextExtractor.
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) ExtractText(image []byte) (string, error) {
	args := m.Called(image)
	return args.String(0), args.Error(1)
}

// MockCompletionClient is a mock implementation of CompletionClient.
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(openai.ChatCompletionResponse), args.Error(1)
}

func completionWith(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestResumeService_AnalyzeResume(t *testing.T) {
	seeker := model.Actor{Role: model.RoleJobSeeker}
	image := []byte("fake image bytes")

	validVerdict := `{
		"score": 72,
		"improvementPoints": ["Add measurable results", "Trim the summary"],
		"generalFeedback": "Solid resume with room to quantify impact."
	}`

	tests := []struct {
		name           string
		actor          model.Actor
		setupMocks     func(extractor *MockTextExtractor, llm *MockCompletionClient)
		expectedStatus int
		expectedMsg    string
		check          func(t *testing.T, analysis *ResumeAnalysis)
	}{
		{
			name:           "employer is forbidden",
			actor:          model.Actor{Role: model.RoleEmployer},
			setupMocks:     func(extractor *MockTextExtractor, llm *MockCompletionClient) {},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:  "ocr failure",
			actor: seeker,
			setupMocks: func(extractor *MockTextExtractor, llm *MockCompletionClient) {
				extractor.On("ExtractText", image).Return("", assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Failed to extract text from resume",
		},
		{
			name:  "unreadable image",
			actor: seeker,
			setupMocks: func(extractor *MockTextExtractor, llm *MockCompletionClient) {
				extractor.On("ExtractText", image).Return("", nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Could not read any text from the uploaded resume.",
		},
		{
			name:  "llm failure",
			actor: seeker,
			setupMocks: func(extractor *MockTextExtractor, llm *MockCompletionClient) {
				extractor.On("ExtractText", image).Return("resume text", nil)
				llm.On("CreateChatCompletion", mock.Anything, mock.AnythingOfType("openai.ChatCompletionRequest")).
					Return(openai.ChatCompletionResponse{}, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Failed to analyze resume with AI",
		},
		{
			name:  "llm returns prose instead of JSON",
			actor: seeker,
			setupMocks: func(extractor *MockTextExtractor, llm *MockCompletionClient) {
				extractor.On("ExtractText", image).Return("resume text", nil)
				llm.On("CreateChatCompletion", mock.Anything, mock.AnythingOfType("openai.ChatCompletionRequest")).
					Return(completionWith("Sure! Here is my analysis of your resume."), nil)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "AI did not return valid JSON",
		},
		{
			name:  "llm JSON misses required keys",
			actor: seeker,
			setupMocks: func(extractor *MockTextExtractor, llm *MockCompletionClient) {
				extractor.On("ExtractText", image).Return("resume text", nil)
				llm.On("CreateChatCompletion", mock.Anything, mock.AnythingOfType("openai.ChatCompletionRequest")).
					Return(completionWith(`{"score": 50}`), nil)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "AI did not return valid JSON",
		},
		{
			name:  "llm JSON breaks the score bounds",
			actor: seeker,
			setupMocks: func(extractor *MockTextExtractor, llm *MockCompletionClient) {
				extractor.On("ExtractText", image).Return("resume text", nil)
				llm.On("CreateChatCompletion", mock.Anything, mock.AnythingOfType("openai.ChatCompletionRequest")).
					Return(completionWith(`{"score": 150, "improvementPoints": [], "generalFeedback": "x"}`), nil)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "AI did not return valid JSON",
		},
		{
			name:  "successful analysis",
			actor: seeker,
			setupMocks: func(extractor *MockTextExtractor, llm *MockCompletionClient) {
				extractor.On("ExtractText", image).Return("resume text", nil)
				llm.On("CreateChatCompletion", mock.Anything, mock.AnythingOfType("openai.ChatCompletionRequest")).
					Return(completionWith(validVerdict), nil)
			},
			check: func(t *testing.T, analysis *ResumeAnalysis) {
				assert.Equal(t, 72, analysis.Score)
				assert.Len(t, analysis.ImprovementPoints, 2)
				assert.Equal(t, "Solid resume with room to quantify impact.", analysis.GeneralFeedback)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := new(MockTextExtractor)
			llm := new(MockCompletionClient)
			tt.setupMocks(extractor, llm)

			svc, err := NewResumeService(extractor, llm)
			assert.NoError(t, err)

			analysis, err := svc.AnalyzeResume(context.Background(), tt.actor, image)

			if tt.check != nil {
				assert.NoError(t, err)
				tt.check(t, analysis)
			} else {
				assert.Error(t, err)
				assert.Nil(t, analysis)
				httpErr := apperrors.MapErrorToHTTP(err)
				assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
				if tt.expectedMsg != "" {
					assert.Equal(t, tt.expectedMsg, httpErr.Message)
				}
			}
		})
	}
}

// The prompt must carry the OCR text so the model scores the right resume.
func TestResumeService_PromptCarriesExtractedText(t *testing.T) {
	extractor := new(MockTextExtractor)
	llm := new(MockCompletionClient)
	extractor.On("ExtractText", mock.Anything).Return("ten years of Go experience", nil)

	var captured openai.ChatCompletionRequest
	llm.On("CreateChatCompletion", mock.Anything, mock.AnythingOfType("openai.ChatCompletionRequest")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(openai.ChatCompletionRequest)
		}).
		Return(completionWith(`{"score": 90, "improvementPoints": [], "generalFeedback": "great"}`), nil)

	svc, err := NewResumeService(extractor, llm)
	assert.NoError(t, err)

	_, err = svc.AnalyzeResume(context.Background(), model.Actor{Role: model.RoleJobSeeker}, []byte("img"))
	assert.NoError(t, err)

	assert.Equal(t, openai.GPT3Dot5Turbo, captured.Model)
	if assert.Len(t, captured.Messages, 2) {
		assert.Contains(t, captured.Messages[1].Content, "ten years of Go experience")
	}
}
