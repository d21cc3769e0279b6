package governance

import (
	"context"

	"github.com/styleforge/datagovern/internal/domain/catalog"
)

// EnrichmentStarter is what the start use case needs from the runner.
type EnrichmentStarter interface {
	Start(ctx context.Context, taskID string) error
}

// EnrichmentRestarter is what the retry use case needs from the runner.
type EnrichmentRestarter interface {
	Restart(ctx context.Context, taskID string) error
}

type StartEnrichmentInput struct {
	TaskID string
}

type StartEnrichmentOutput struct {
	TaskID   string `json:"task_id"`
	AIStatus string `json:"ai_status"`
}

type StartEnrichment interface {
	Execute(ctx context.Context, in StartEnrichmentInput) (StartEnrichmentOutput, error)
}

type startEnrichment struct {
	runner EnrichmentStarter
}

func NewStartEnrichment(runner EnrichmentStarter) StartEnrichment {
	return &startEnrichment{runner: runner}
}

func (uc *startEnrichment) Execute(ctx context.Context, in StartEnrichmentInput) (StartEnrichmentOutput, error) {
	if err := uc.runner.Start(ctx, in.TaskID); err != nil {
		return StartEnrichmentOutput{}, err
	}
	return StartEnrichmentOutput{
		TaskID:   in.TaskID,
		AIStatus: string(catalog.AIProcessing),
	}, nil
}

type RetryEnrichmentInput struct {
	TaskID string
}

type RetryEnrichment interface {
	Execute(ctx context.Context, in RetryEnrichmentInput) (StartEnrichmentOutput, error)
}

type retryEnrichment struct {
	runner EnrichmentRestarter
}

func NewRetryEnrichment(runner EnrichmentRestarter) RetryEnrichment {
	return &retryEnrichment{runner: runner}
}

// Execute restarts a whole batch from zero: progress back to 0, aiStatus to
// processing, then the runner walks the same pending-row set again. There is
// no mid-run resume; a retry against a live run is rejected untouched.
func (uc *retryEnrichment) Execute(ctx context.Context, in RetryEnrichmentInput) (StartEnrichmentOutput, error) {
	if err := uc.runner.Restart(ctx, in.TaskID); err != nil {
		return StartEnrichmentOutput{}, err
	}
	return StartEnrichmentOutput{
		TaskID:   in.TaskID,
		AIStatus: string(catalog.AIProcessing),
	}, nil
}
