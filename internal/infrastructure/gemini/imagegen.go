package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// ErrNoImage reports that the model answered without an inline image part.
var ErrNoImage = errors.New("no image in model response")

// SynthesizeImage renders the prompt with the image model and returns the
// first inline image as a data URL. Callers substitute a placeholder when
// this fails.
func (c *Client) SynthesizeImage(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.imageModel, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini image synthesis: %w", err)
	}

	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			encoded := base64.StdEncoding.EncodeToString(part.InlineData.Data)
			return fmt.Sprintf("data:%s;base64,%s", part.InlineData.MIMEType, encoded), nil
		}
	}
	return "", ErrNoImage
}
