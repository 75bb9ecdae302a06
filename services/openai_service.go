package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

// External-service failures map onto one of these. None of them is
// retried; the caller surfaces the message and moves on.
var (
	ErrMissingAPIKey = errors.New("no OpenAI API key configured")
	ErrInvalidAPIKey = errors.New("invalid OpenAI API key")
	ErrRateLimited   = errors.New("too many requests, wait a moment and try again")
	ErrServerFailure = errors.New("completion service failed")
	ErrNetwork       = errors.New("connection error, check your internet")
	ErrBadResponse   = errors.New("could not interpret the model response")
)

type OpenAIService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewOpenAIService() *OpenAIService {
	baseURL := os.Getenv("OPENAI_API_URL")
	if baseURL == "" {
		baseURL = defaultOpenAIURL
	}
	return &OpenAIService{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type ChatMessage struct {
	Role string `json:"role"`
	// Content is either a plain string or a list of content parts when an
	// image is attached.
	Content any `json:"content"`
}

type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete submits a prompt and returns the raw text of the first choice.
func (s *OpenAIService) Complete(model string, messages []ChatMessage, temperature float64, maxTokens int) (string, error) {
	if s.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	payload := chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling completion payload: %w", err)
	}

	req, err := http.NewRequest("POST", s.baseURL, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("creating completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return "", ErrInvalidAPIKey
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: status %d", ErrServerFailure, resp.StatusCode)
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if len(cr.Choices) == 0 || cr.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty completion", ErrBadResponse)
	}
	return cr.Choices[0].Message.Content, nil
}

// ExtractJSONObject recovers a JSON object from model output that may be
// wrapped in prose or code fences: the content itself if it already is an
// object, otherwise the first '{' through the last '}'.
func ExtractJSONObject(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "{") && json.Valid([]byte(trimmed)) {
		return trimmed, nil
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end <= start {
		return "", fmt.Errorf("%w: no JSON object found", ErrBadResponse)
	}
	candidate := trimmed[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return "", fmt.Errorf("%w: malformed JSON object", ErrBadResponse)
	}
	return candidate, nil
}
