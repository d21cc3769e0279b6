package governance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/styleforge/datagovern/internal/domain/catalog"
)

type enrichTaskRepo interface {
	Get(ctx context.Context, id string) (catalog.Task, error)
	SetStatus(ctx context.Context, id string, status catalog.TaskStatus) error
	UpdateAIState(ctx context.Context, id string, status catalog.AIStatus, progress int) error
}

type enrichRowStore interface {
	Get(ctx context.Context, taskID, rowID string) (catalog.Row, error)
	ListAll(ctx context.Context, taskID string) ([]catalog.Row, error)
	ApplyFields(ctx context.Context, taskID, rowID string, fields catalog.FieldValues) (catalog.Row, error)
}

type targetConfig interface {
	Get(ctx context.Context) (catalog.FieldConfig, error)
}

type EnrichmentRunnerConfig struct {
	// CallTimeout bounds each external inference call; a timeout is a
	// per-row failure, not a batch failure.
	CallTimeout time.Duration
}

// EnrichmentRunner drives the attribute-enrichment run for one task: it
// walks the pending rows strictly in order, invokes the inference capability
// once per row, merges results without clobbering user edits and commits
// real progress after every row. At most one run per task is active at a
// time; a second start is rejected, not queued.
type EnrichmentRunner struct {
	tasks    enrichTaskRepo
	rows     enrichRowStore
	config   targetConfig
	analyzer catalog.AttributeAnalyzer
	cfg      EnrichmentRunnerConfig
	log      *zap.Logger

	mu     sync.Mutex
	active map[string]struct{}
}

func NewEnrichmentRunner(
	tasks enrichTaskRepo,
	rows enrichRowStore,
	config targetConfig,
	analyzer catalog.AttributeAnalyzer,
	cfg EnrichmentRunnerConfig,
	log *zap.Logger,
) *EnrichmentRunner {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &EnrichmentRunner{
		tasks:    tasks,
		rows:     rows,
		config:   config,
		analyzer: analyzer,
		cfg:      cfg,
		log:      log,
	}
}

// Start validates the task, claims the per-task run slot and continues the
// row loop in the background. It returns ErrEnrichmentRunning when a run for
// the same task is still active.
func (r *EnrichmentRunner) Start(ctx context.Context, taskID string) error {
	return r.launch(ctx, taskID, false)
}

// Restart rewinds the task's AI state to processing/0 and walks the pending
// rows again. The run slot is claimed before anything is touched, so a retry
// against a live run is rejected without mutating the task.
func (r *EnrichmentRunner) Restart(ctx context.Context, taskID string) error {
	return r.launch(ctx, taskID, true)
}

func (r *EnrichmentRunner) launch(ctx context.Context, taskID string, reset bool) error {
	if err := r.acquire(taskID); err != nil {
		return err
	}

	task, err := r.tasks.Get(ctx, taskID)
	if err != nil {
		r.release(taskID)
		return err
	}

	if reset {
		if err := r.tasks.UpdateAIState(ctx, taskID, catalog.AIProcessing, 0); err != nil {
			r.release(taskID)
			return fmt.Errorf("reset ai state for retry: %w", err)
		}
		task.AIStatus = catalog.AIProcessing
		task.AIProgress = 0
	}

	go func() {
		defer r.release(taskID)
		if err := r.run(context.WithoutCancel(ctx), task); err != nil {
			r.log.Warn("enrichment run ended with error",
				zap.String("task_id", task.ID),
				zap.Error(err))
		}
	}()

	return nil
}

// Run executes a whole run synchronously. Same semantics as Start, used
// where the caller needs the outcome.
func (r *EnrichmentRunner) Run(ctx context.Context, taskID string) error {
	if err := r.acquire(taskID); err != nil {
		return err
	}
	defer r.release(taskID)

	task, err := r.tasks.Get(ctx, taskID)
	if err != nil {
		return err
	}
	return r.run(ctx, task)
}

func (r *EnrichmentRunner) run(ctx context.Context, task catalog.Task) error {
	if err := r.tasks.SetStatus(ctx, task.ID, catalog.StatusProcessing); err != nil {
		return r.failRun(ctx, task.ID, fmt.Errorf("mark task processing: %w", err))
	}

	fieldConfig, err := r.config.Get(ctx)
	if err != nil {
		return r.failRun(ctx, task.ID, fmt.Errorf("load field config: %w", err))
	}
	targets := fieldConfig.TargetsFor(task.Source)

	all, err := r.rows.ListAll(ctx, task.ID)
	if err != nil {
		return r.failRun(ctx, task.ID, fmt.Errorf("list rows: %w", err))
	}

	pending := pendingRows(all, targets)
	total := len(pending)
	if total == 0 {
		// Nothing to do is trivially done.
		if err := r.tasks.UpdateAIState(ctx, task.ID, catalog.AICompleted, 100); err != nil {
			return err
		}
		return r.tasks.SetStatus(ctx, task.ID, catalog.StatusCompleted)
	}

	// The first emission is pinned at 10 to signal "started".
	if err := r.tasks.UpdateAIState(ctx, task.ID, catalog.AIProcessing, 10); err != nil {
		return r.failRun(ctx, task.ID, fmt.Errorf("mark run started: %w", err))
	}

	done := 0
	for _, row := range pending {
		select {
		case <-ctx.Done():
			return r.failRun(ctx, task.ID, ctx.Err())
		default:
		}

		r.enrichRow(ctx, task.ID, row, targets)

		done++
		progress := 10 + (90*done)/total
		if err := r.tasks.UpdateAIState(ctx, task.ID, catalog.AIProcessing, progress); err != nil {
			return r.failRun(ctx, task.ID, fmt.Errorf("update progress: %w", err))
		}
	}

	if err := r.tasks.UpdateAIState(ctx, task.ID, catalog.AICompleted, 100); err != nil {
		return err
	}
	return r.tasks.SetStatus(ctx, task.ID, catalog.StatusCompleted)
}

// enrichRow performs one inference and commits the merge. Any failure leaves
// the row unchanged; it never aborts the batch.
func (r *EnrichmentRunner) enrichRow(ctx context.Context, taskID string, row catalog.Row, targets []catalog.FieldName) {
	callCtx, cancel := context.WithTimeout(ctx, r.cfg.CallTimeout)
	defer cancel()

	inferred, err := r.analyzer.InferAttributes(callCtx, row.ImageRef, targets)
	if err != nil {
		r.log.Warn("attribute inference failed, row left unchanged",
			zap.String("task_id", taskID),
			zap.String("row_id", row.ID),
			zap.Error(err))
		return
	}

	// Re-read before committing so an edit or confirmation made while the
	// call was in flight wins.
	latest, err := r.rows.Get(ctx, taskID, row.ID)
	if err != nil {
		r.log.Warn("row vanished during enrichment",
			zap.String("task_id", taskID),
			zap.String("row_id", row.ID),
			zap.Error(err))
		return
	}
	if latest.Confirmed {
		return
	}

	merged := MergeFields(latest.Fields, inferred, targets)
	if _, err := r.rows.ApplyFields(ctx, taskID, latest.ID, merged); err != nil {
		r.log.Warn("commit merged fields failed",
			zap.String("task_id", taskID),
			zap.String("row_id", row.ID),
			zap.Error(err))
	}
}

func (r *EnrichmentRunner) failRun(ctx context.Context, taskID string, cause error) error {
	task, err := r.tasks.Get(ctx, taskID)
	if err != nil {
		return fmt.Errorf("%v; load task for failure state: %w", cause, err)
	}
	// Progress stays at its last value so the console can show where the
	// run stopped; retry resets it.
	if err := r.tasks.UpdateAIState(ctx, taskID, catalog.AIFailed, task.AIProgress); err != nil {
		return fmt.Errorf("%v; record failure state: %w", cause, err)
	}
	return cause
}

func (r *EnrichmentRunner) acquire(taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		r.active = make(map[string]struct{})
	}
	if _, busy := r.active[taskID]; busy {
		return ErrEnrichmentRunning
	}
	r.active[taskID] = struct{}{}
	return nil
}

func (r *EnrichmentRunner) release(taskID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, taskID)
}

// pendingRows selects the rows a run will attempt: unconfirmed rows still
// missing at least one target column, in stored order.
func pendingRows(all []catalog.Row, targets []catalog.FieldName) []catalog.Row {
	pending := make([]catalog.Row, 0, len(all))
	for _, row := range all {
		if row.Confirmed {
			continue
		}
		if row.Fields.MissingAny(targets) {
			pending = append(pending, row)
		}
	}
	return pending
}
