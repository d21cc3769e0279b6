package governance

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/styleforge/datagovern/internal/domain/catalog"
)

// RowFilter narrows the projected rows by confirmation state.
type RowFilter string

const (
	FilterAll       RowFilter = "all"
	FilterConfirmed RowFilter = "confirmed"
	FilterPending   RowFilter = "pending"
)

func ParseRowFilter(raw string) (RowFilter, error) {
	switch RowFilter(strings.TrimSpace(raw)) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterConfirmed:
		return FilterConfirmed, nil
	case FilterPending:
		return FilterPending, nil
	}
	return "", fmt.Errorf("%w: unknown filter %q", ErrInvalidRowPayload, raw)
}

const DefaultPageSize = 10

type viewRowStore interface {
	ListAll(ctx context.Context, taskID string) ([]catalog.Row, error)
	SetConfirmed(ctx context.Context, taskID, rowID string, confirmed bool) (catalog.Row, error)
}

// ViewRow is a projected row plus its checkbox state.
type ViewRow struct {
	catalog.Row
	Selected bool
}

// ViewPage is the rendered slice: filter, then fixed-size pagination, then
// selection intersection, in that order.
type ViewPage struct {
	Filter        RowFilter
	Page          int
	PageSize      int
	PageCount     int
	FilteredCount int
	SelectedCount int
	Rows          []ViewRow
}

// TaskView holds one task's session view state: the active filter, current
// page and the checked-row set. Selection is scoped to row ids, so it
// survives paging; "select all" only ever acts on the visible page.
type TaskView struct {
	taskID   string
	rows     viewRowStore
	pageSize int

	mu       sync.Mutex
	filter   RowFilter
	page     int
	selected map[string]struct{}
}

func NewTaskView(taskID string, rows viewRowStore, pageSize int) *TaskView {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &TaskView{
		taskID:   taskID,
		rows:     rows,
		pageSize: pageSize,
		filter:   FilterAll,
		page:     1,
		selected: make(map[string]struct{}),
	}
}

// SetFilter switches the confirmation-state predicate and resets to page 1
// so the view never renders an out-of-range page.
func (v *TaskView) SetFilter(filter RowFilter) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.filter != filter {
		v.filter = filter
		v.page = 1
	}
}

func (v *TaskView) SetPage(page int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if page < 1 {
		page = 1
	}
	v.page = page
}

// ToggleOne flips a single row's selection regardless of the visible page.
func (v *TaskView) ToggleOne(rowID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.selected[rowID]; ok {
		delete(v.selected, rowID)
	} else {
		v.selected[rowID] = struct{}{}
	}
}

// SelectAllOnPage toggles the current page: if every visible row is already
// selected they are all deselected, otherwise all become selected. Calling
// it twice returns the page's rows to their prior state.
func (v *TaskView) SelectAllOnPage(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	visible, err := v.visibleLocked(ctx)
	if err != nil {
		return err
	}

	allSelected := len(visible) > 0
	for _, row := range visible {
		if _, ok := v.selected[row.ID]; !ok {
			allSelected = false
			break
		}
	}

	for _, row := range visible {
		if allSelected {
			delete(v.selected, row.ID)
		} else {
			v.selected[row.ID] = struct{}{}
		}
	}
	return nil
}

// ConfirmSelected marks every selected row confirmed and clears the
// selection. An empty selection is a no-op, not an error. Re-confirming an
// already-confirmed row changes nothing on that row.
func (v *TaskView) ConfirmSelected(ctx context.Context) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.selected) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(v.selected))
	for id := range v.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	confirmed := 0
	for _, id := range ids {
		if _, err := v.rows.SetConfirmed(ctx, v.taskID, id, true); err != nil {
			return confirmed, fmt.Errorf("confirm row %s: %w", id, err)
		}
		confirmed++
	}

	v.selected = make(map[string]struct{})
	return confirmed, nil
}

// Snapshot computes the page the console renders.
func (v *TaskView) Snapshot(ctx context.Context) (ViewPage, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	filtered, err := v.filteredLocked(ctx)
	if err != nil {
		return ViewPage{}, err
	}

	pageCount := (len(filtered) + v.pageSize - 1) / v.pageSize
	if v.page > pageCount && pageCount > 0 {
		v.page = pageCount
	}

	start := (v.page - 1) * v.pageSize
	end := start + v.pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	rows := make([]ViewRow, 0, end-start)
	for _, row := range filtered[start:end] {
		_, selected := v.selected[row.ID]
		rows = append(rows, ViewRow{Row: row, Selected: selected})
	}

	return ViewPage{
		Filter:        v.filter,
		Page:          v.page,
		PageSize:      v.pageSize,
		PageCount:     pageCount,
		FilteredCount: len(filtered),
		SelectedCount: len(v.selected),
		Rows:          rows,
	}, nil
}

func (v *TaskView) filteredLocked(ctx context.Context) ([]catalog.Row, error) {
	all, err := v.rows.ListAll(ctx, v.taskID)
	if err != nil {
		return nil, err
	}

	filtered := make([]catalog.Row, 0, len(all))
	for _, row := range all {
		switch v.filter {
		case FilterConfirmed:
			if !row.Confirmed {
				continue
			}
		case FilterPending:
			if row.Confirmed {
				continue
			}
		}
		filtered = append(filtered, row)
	}
	return filtered, nil
}

func (v *TaskView) visibleLocked(ctx context.Context) ([]catalog.Row, error) {
	filtered, err := v.filteredLocked(ctx)
	if err != nil {
		return nil, err
	}

	start := (v.page - 1) * v.pageSize
	if start >= len(filtered) {
		return nil, nil
	}
	end := start + v.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], nil
}

// ViewRegistry keeps one TaskView per task for the lifetime of the session.
type ViewRegistry struct {
	rows     viewRowStore
	pageSize int

	mu    sync.Mutex
	views map[string]*TaskView
}

func NewViewRegistry(rows viewRowStore, pageSize int) *ViewRegistry {
	return &ViewRegistry{
		rows:     rows,
		pageSize: pageSize,
		views:    make(map[string]*TaskView),
	}
}

func (r *ViewRegistry) For(taskID string) *TaskView {
	r.mu.Lock()
	defer r.mu.Unlock()
	view, ok := r.views[taskID]
	if !ok {
		view = NewTaskView(taskID, r.rows, r.pageSize)
		r.views[taskID] = view
	}
	return view
}

func (r *ViewRegistry) Drop(taskID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.views, taskID)
}
