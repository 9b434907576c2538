// Package assistant implements the MyLife AI chat assistant on top of
// Google's Gemini API.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/vedant-maheshwari09/mylife/internal/config"
)

// ErrDisabled is returned when the assistant has no API key configured.
var ErrDisabled = errors.New("assistant is not configured")

// Client defines the interface for AI operations used by the chat endpoint.
type Client interface {
	// GenerateReply produces an assistant reply to the user's message.
	// organizerContext is a plain-text snapshot of the user's current
	// todos and goals, injected so the assistant can answer questions
	// about them.
	GenerateReply(ctx context.Context, message, organizerContext string) (string, error)
}

type sdkClient struct {
	genaiClient   *genai.Client
	log           *slog.Logger
	contentConfig *genai.GenerateContentConfig
	modelName     string
	timeout       time.Duration
	maxRetries    int
	retryDelay    time.Duration
}

// NewClient creates a new Gemini-backed assistant client. It returns
// ErrDisabled when no API key is configured; callers should degrade the
// chat feature rather than fail startup.
func NewClient(ctx context.Context, cfg config.GeminiConfig, log *slog.Logger) (Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrDisabled
	}
	if log == nil {
		log = slog.Default()
	}

	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	baseCfg := &genai.GenerateContentConfig{
		Temperature: &cfg.Temperature,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: SystemInstruction}},
		},
	}

	logger := log.With("component", "assistant")
	logger.Info("Assistant client initialized", "model", cfg.Model)

	return &sdkClient{
		genaiClient:   gi,
		log:           logger,
		contentConfig: baseCfg,
		modelName:     cfg.Model,
		timeout:       cfg.Timeout,
		maxRetries:    cfg.MaxRetries,
		retryDelay:    cfg.RetryDelay,
	}, nil
}

// GenerateReply produces an assistant reply to the user's message.
func (c *sdkClient) GenerateReply(ctx context.Context, message, organizerContext string) (string, error) {
	if message == "" {
		return "", fmt.Errorf("message is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := message
	if organizerContext != "" {
		prompt = fmt.Sprintf("%s\n\n%s\n\nUser message: %s", OrganizerContextHeader, organizerContext, message)
	}

	contents := []*genai.Content{
		{Role: genai.RoleUser, Parts: []*genai.Part{{Text: prompt}}},
	}

	resp, err := c.generateContentWithRetries(ctx, contents)
	if err != nil {
		return "", fmt.Errorf("assistant request failed: %w", err)
	}

	reply := resp.Text()
	if reply == "" {
		return "", fmt.Errorf("assistant returned an empty reply")
	}

	return reply, nil
}

func (c *sdkClient) generateContentWithRetries(ctx context.Context, contents []*genai.Content) (*genai.GenerateContentResponse, error) {
	var resp *genai.GenerateContentResponse
	var err error

	for i := 0; i <= c.maxRetries; i++ {
		resp, err = c.genaiClient.Models.GenerateContent(ctx, c.modelName, contents, c.contentConfig)
		if err == nil {
			return resp, nil
		}

		c.log.WarnContext(ctx, "Gemini API call failed, checking for retry",
			"attempt", i+1, "max_retries", c.maxRetries, "error", err)

		if i == c.maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.retryDelay):
		}
	}

	return nil, err
}
