package governance

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/styleforge/datagovern/internal/domain/catalog"
)

const (
	minConceptCount = 1
	maxConceptCount = 8
)

type GenerateStylesInput struct {
	Seed  string
	Count int
}

type ConceptOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Material    string `json:"material"`
	Elements    string `json:"elements"`
	ColorTheme  string `json:"color_theme"`
	ImageRef    string `json:"image_ref"`
}

type GenerateStylesOutput struct {
	Concepts []ConceptOutput `json:"concepts"`
}

type GenerateStyles interface {
	Execute(ctx context.Context, in GenerateStylesInput) (GenerateStylesOutput, error)
}

type generateStyles struct {
	concepts catalog.ConceptGenerator
	images   catalog.ImageSynthesizer
	log      *zap.Logger
}

func NewGenerateStyles(concepts catalog.ConceptGenerator, images catalog.ImageSynthesizer, log *zap.Logger) GenerateStyles {
	if log == nil {
		log = zap.NewNop()
	}
	return &generateStyles{concepts: concepts, images: images, log: log}
}

// Execute runs the two-phase flow: concept text first, then one image per
// concept. A failed image never fails the batch; the concept gets a visible
// placeholder instead so the console never renders a broken state.
func (uc *generateStyles) Execute(ctx context.Context, in GenerateStylesInput) (GenerateStylesOutput, error) {
	seed := strings.TrimSpace(in.Seed)
	if seed == "" {
		return GenerateStylesOutput{}, ErrInvalidSeed
	}

	count := in.Count
	if count < minConceptCount {
		count = minConceptCount
	}
	if count > maxConceptCount {
		count = maxConceptCount
	}

	concepts, err := uc.concepts.GenerateConcepts(ctx, seed, count)
	if err != nil {
		return GenerateStylesOutput{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(concepts) == 0 {
		return GenerateStylesOutput{}, ErrGenerationFailed
	}

	out := GenerateStylesOutput{Concepts: make([]ConceptOutput, 0, len(concepts))}
	for i, concept := range concepts {
		concept.ID = uuid.NewString()

		prompt := strings.TrimSpace(concept.ImagePrompt)
		if prompt == "" {
			prompt = fmt.Sprintf("A high quality fashion photography of a %s, %s, %s",
				concept.Name, concept.Description, concept.ColorTheme)
		}

		imageRef, err := uc.images.SynthesizeImage(ctx, prompt)
		if err != nil || imageRef == "" {
			uc.log.Warn("image synthesis failed, using placeholder",
				zap.String("concept", concept.Name),
				zap.Int("index", i),
				zap.Error(err))
			imageRef = placeholderImageRef()
		}
		concept.ImageRef = imageRef

		out.Concepts = append(out.Concepts, ConceptOutput{
			ID:          concept.ID,
			Name:        concept.Name,
			Description: concept.Description,
			Material:    concept.Material,
			Elements:    concept.Elements,
			ColorTheme:  concept.ColorTheme,
			ImageRef:    concept.ImageRef,
		})
	}
	return out, nil
}

func placeholderImageRef() string {
	return fmt.Sprintf("https://picsum.photos/400/400?random=%d", rand.Intn(1000))
}
