package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/styleforge/datagovern/internal/domain/catalog"
)

type conceptPayload struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Material       string `json:"material"`
	Elements       string `json:"elements"`
	ColorTheme     string `json:"colorTheme"`
	PromptForImage string `json:"promptForImage"`
}

// GenerateConcepts asks the text model for new style proposals seeded by a
// theme. The image prompt stays in English; everything else is market copy.
func (c *Client) GenerateConcepts(ctx context.Context, seed string, count int) ([]catalog.StyleConcept, error) {
	prompt := fmt.Sprintf(
		`Generate %d unique fashion style concepts based on the seed theme: "%s".
Return a JSON array where each object has: name, description, material, elements (design elements), colorTheme, and a promptForImage (a detailed prompt to generate an image of this item).
Ensure 'name', 'description', 'material', 'elements', and 'colorTheme' are in Simplified Chinese (简体中文). 'promptForImage' should remain in English for better image generation results.`,
		count, seed)

	stringField := &genai.Schema{Type: genai.TypeString}
	resp, err := c.client.Models.GenerateContent(ctx, c.textModel,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &genai.Schema{
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":           stringField,
						"description":    stringField,
						"material":       stringField,
						"elements":       stringField,
						"colorTheme":     stringField,
						"promptForImage": stringField,
					},
				},
			},
		})
	if err != nil {
		return nil, fmt.Errorf("gemini concept generation: %w", err)
	}

	var payload []conceptPayload
	if err := json.Unmarshal([]byte(resp.Text()), &payload); err != nil {
		return nil, fmt.Errorf("decode concept response: %w", err)
	}

	concepts := make([]catalog.StyleConcept, 0, len(payload))
	for i, p := range payload {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("款式 %d", i+1)
		}
		concepts = append(concepts, catalog.StyleConcept{
			Name:        name,
			Description: p.Description,
			Material:    p.Material,
			Elements:    p.Elements,
			ColorTheme:  p.ColorTheme,
			ImagePrompt: p.PromptForImage,
		})
	}
	return concepts, nil
}
