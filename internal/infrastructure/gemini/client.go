// Package gemini adapts Google's generative models to the catalog
// capability ports: attribute inference, style-concept generation and image
// synthesis.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const (
	defaultTextModel  = "gemini-2.5-flash"
	defaultImageModel = "gemini-2.5-flash-image"
)

type Config struct {
	APIKey     string
	TextModel  string
	ImageModel string
}

type Client struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.TextModel == "" {
		cfg.TextModel = defaultTextModel
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = defaultImageModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{
		client:     client,
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
	}, nil
}

// Close exists so callers can treat the adapter like any other external
// connection; the underlying SDK client holds nothing to release.
func (c *Client) Close() error {
	return nil
}
