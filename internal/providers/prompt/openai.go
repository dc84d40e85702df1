package prompt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"adcraft/internal/domain"
)

// OpenAIOptions configures an OpenAI-compatible chat completion client. The
// defaults point at Groq's compatible endpoint.
type OpenAIOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	OnWarning  func(reason, detail string)
}

type OpenAICompleter struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

const openAIDefaultTimeout = 45 * time.Second

const (
	defaultOpenAIModel   = "llama3-70b-8192"
	defaultOpenAIBaseURL = "https://api.groq.com/openai/v1"
)

var openAIModelCanonical = map[string]string{
	"llama3-70b-8192":         "llama3-70b-8192",
	"llama3-8b-8192":          "llama3-8b-8192",
	"llama-3.3-70b-versatile": "llama-3.3-70b-versatile",
	"llama-3.1-8b-instant":    "llama-3.1-8b-instant",
	"gpt-4o-mini":             "gpt-4o-mini",
}

var openAIModelAliases = map[string]string{
	"llama3":        "llama3-70b-8192",
	"llama3-70b":    "llama3-70b-8192",
	"llama-3-70b":   "llama3-70b-8192",
	"llama3-8b":     "llama3-8b-8192",
	"llama-3.3-70b": "llama-3.3-70b-versatile",
	"llama-3.1-8b":  "llama-3.1-8b-instant",
	"gpt4o-mini":    "gpt-4o-mini",
	"gpt4omini":     "gpt-4o-mini",
}

type openAIChatRequest struct {
	Model          string          `json:"model"`
	Messages       []openAIMessage `json:"messages"`
	Temperature    float64         `json:"temperature"`
	Stream         bool            `json:"stream"`
	ResponseFormat *openAIFormat   `json:"response_format,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIFormat struct {
	Type string `json:"type"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewOpenAICompleter(opts OpenAIOptions) (*OpenAICompleter, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("completion api key is required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	modelInput := strings.TrimSpace(opts.Model)
	normalizedModel, normalizationReason := normalizeOpenAIModel(modelInput)
	if normalizationReason != "" && opts.OnWarning != nil {
		detail := fmt.Sprintf("requested=%s resolved=%s", coalesce(modelInput, defaultOpenAIModel), normalizedModel)
		opts.OnWarning("model_"+normalizationReason, detail)
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: openAIDefaultTimeout}
	}
	return &OpenAICompleter{
		apiKey:  strings.TrimSpace(opts.APIKey),
		model:   normalizedModel,
		baseURL: baseURL,
		client:  client,
	}, nil
}

func (o *OpenAICompleter) Name() string { return openAIProviderName }

// Model returns the resolved model identifier.
func (o *OpenAICompleter) Model() string { return o.model }

// Complete sends the prompt as a single system message with deterministic
// sampling and a JSON object response format.
func (o *OpenAICompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	payload := openAIChatRequest{
		Model:       o.model,
		Temperature: 0,
		Stream:      false,
		ResponseFormat: &openAIFormat{
			Type: "json_object",
		},
		Messages: []openAIMessage{
			{Role: "system", Content: req.Prompt},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}
	endpoint := fmt.Sprintf("%s/chat/completions", o.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", domain.ErrProviderFailure, resp.StatusCode, truncate(strings.TrimSpace(string(body)), 256))
	}
	var out openAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrProviderFailure, err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", domain.ErrProviderFailure)
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", domain.ErrProviderFailure)
	}
	return text, nil
}

var _ Completer = (*OpenAICompleter)(nil)

// normalizeOpenAIModel resolves aliases of known models. Unknown names are
// kept as given since compatible endpoints host their own catalogues.
func normalizeOpenAIModel(name string) (string, string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return defaultOpenAIModel, ""
	}
	normalized := strings.ToLower(trimmed)
	normalized = strings.ReplaceAll(normalized, "_", "-")
	normalized = strings.ReplaceAll(normalized, " ", "-")
	if canonical, ok := openAIModelCanonical[normalized]; ok {
		return canonical, ""
	}
	if alias, ok := openAIModelAliases[normalized]; ok {
		return alias, "alias"
	}
	return trimmed, "unknown"
}
