package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/styleforge/datagovern/internal/domain/catalog"
)

// InferAttributes asks the text model to describe the product image and
// returns whatever subset of the target columns came back non-empty.
// Missing fields are "no data", never an error.
func (c *Client) InferAttributes(ctx context.Context, imageRef string, targets []catalog.FieldName) (catalog.FieldValues, error) {
	if len(targets) == 0 {
		return catalog.FieldValues{}, nil
	}

	names := make([]string, 0, len(targets))
	properties := make(map[string]*genai.Schema, len(targets))
	for _, target := range targets {
		names = append(names, string(target))
		properties[string(target)] = &genai.Schema{Type: genai.TypeString}
	}

	prompt := fmt.Sprintf(
		`Analyze the fashion product image at %s.
Return a JSON object with the following properties: %s.
Make sure all string values are in Simplified Chinese (简体中文) suitable for a fashion e-commerce site.`,
		imageRef, strings.Join(names, ", "))

	resp, err := c.client.Models.GenerateContent(ctx, c.textModel,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: properties,
			},
		})
	if err != nil {
		return nil, fmt.Errorf("gemini attribute inference: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal([]byte(resp.Text()), &raw); err != nil {
		return nil, fmt.Errorf("decode inference response: %w", err)
	}

	values := catalog.FieldValues{}
	for _, target := range targets {
		if value := strings.TrimSpace(raw[string(target)]); value != "" {
			values[target] = value
		}
	}
	return values, nil
}
