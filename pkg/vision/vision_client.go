package vision

import (
	"Menu-Builder-Backend/domain"
	"Menu-Builder-Backend/internal/utils"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

const (
	serviceName     = "vision model"
	maxErrorBodyLen = 2048
)

type (
	VisionClient interface {
		ExtractMenu(ctx context.Context, input domain.VisionInput) (domain.ExtractedMenu, error)
	}

	VisionConfig struct {
		APIKey    string
		BaseURL   string
		Model     string
		MaxTokens int
		Timeout   time.Duration
	}

	visionClient struct {
		config     VisionConfig
		httpClient *http.Client
		validator  *validator.Validate
	}

	chatRequest struct {
		Model     string        `json:"model"`
		MaxTokens int           `json:"max_tokens"`
		Messages  []chatMessage `json:"messages"`
	}

	chatMessage struct {
		Role    string `json:"role"`
		Content any    `json:"content"`
	}

	contentPart struct {
		Type     string    `json:"type"`
		Text     string    `json:"text,omitempty"`
		ImageURL *imageURL `json:"image_url,omitempty"`
	}

	imageURL struct {
		URL string `json:"url"`
	}

	chatResponse struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
)

func LoadVisionConfig() VisionConfig {
	return VisionConfig{
		APIKey:    utils.GetConfig("VISION_API_KEY"),
		BaseURL:   utils.GetConfigOrDefault("VISION_BASE_URL", "https://api.openai.com/v1"),
		Model:     utils.GetConfigOrDefault("VISION_MODEL", "gpt-4o"),
		MaxTokens: utils.GetConfigInt("VISION_MAX_TOKENS", 4096),
		Timeout:   utils.GetConfigSeconds("VISION_TIMEOUT_SECONDS", 120*time.Second),
	}
}

func NewVisionClient(config VisionConfig, validate *validator.Validate) VisionClient {
	if config.Timeout <= 0 {
		config.Timeout = 120 * time.Second
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &visionClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		validator:  validate,
	}
}

// ExtractMenu sends exactly one request to the model. Nothing is retried.
func (c *visionClient) ExtractMenu(ctx context.Context, input domain.VisionInput) (domain.ExtractedMenu, error) {
	if isPDF(input) {
		return domain.ExtractedMenu{}, &domain.UnsupportedFormatError{
			ContentType: "application/pdf",
			Message:     domain.MessagePDFNotSupported,
		}
	}

	reqBody := chatRequest{
		Model:     c.config.Model,
		MaxTokens: c.config.MaxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: menuExtractionPrompt},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: menuExtractionUserText},
				{Type: "image_url", ImageURL: &imageURL{URL: input.ImageURL}},
			}},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return domain.ExtractedMenu{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return domain.ExtractedMenu{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.ExtractedMenu{}, &domain.ExternalServiceError{Service: serviceName, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ExtractedMenu{}, &domain.ExternalServiceError{Service: serviceName, StatusCode: resp.StatusCode, Err: err}
	}

	log.Debug().
		Str("model", c.config.Model).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("vision model responded")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.ExtractedMenu{}, &domain.ExternalServiceError{
			Service:    serviceName,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(body), maxErrorBodyLen),
		}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return domain.ExtractedMenu{}, &domain.MalformedResponseError{Reason: "invalid completion envelope", Err: err}
	}

	if len(chatResp.Choices) == 0 || strings.TrimSpace(chatResp.Choices[0].Message.Content) == "" {
		return domain.ExtractedMenu{}, &domain.MalformedResponseError{Reason: "completion has no content"}
	}

	return ParseMenu(chatResp.Choices[0].Message.Content, c.validator)
}

func isPDF(input domain.VisionInput) bool {
	if strings.EqualFold(strings.TrimSpace(strings.Split(input.ContentType, ";")[0]), "application/pdf") {
		return true
	}
	u, err := url.Parse(input.ImageURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(path.Ext(u.Path), ".pdf")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
