// Package transmit returns finalized rows to an external destination over
// HTTP.
package transmit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/styleforge/datagovern/internal/domain/catalog"
)

type rowPayload struct {
	ID        string            `json:"id"`
	SKU       string            `json:"sku"`
	ImageRef  string            `json:"image_ref"`
	Fields    map[string]string `json:"fields"`
	Confirmed bool              `json:"confirmed"`
}

type taskPayload struct {
	TaskID   string       `json:"task_id"`
	TaskName string       `json:"task_name"`
	Source   string       `json:"source"`
	Rows     []rowPayload `json:"rows"`
}

// HTTPTransmitter posts a task's rows as JSON to the destination URL.
type HTTPTransmitter struct {
	client *http.Client
}

func NewHTTPTransmitter(timeout time.Duration) *HTTPTransmitter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPTransmitter{client: &http.Client{Timeout: timeout}}
}

func (t *HTTPTransmitter) Transmit(ctx context.Context, task catalog.Task, rows []catalog.Row, destination string) error {
	payload := taskPayload{
		TaskID:   task.ID,
		TaskName: task.Name,
		Source:   string(task.Source),
		Rows:     make([]rowPayload, 0, len(rows)),
	}
	for _, row := range rows {
		fields := make(map[string]string, len(row.Fields))
		for name, value := range row.Fields {
			fields[string(name)] = value
		}
		payload.Rows = append(payload.Rows, rowPayload{
			ID:        row.ID,
			SKU:       row.SKU,
			ImageRef:  row.ImageRef,
			Fields:    fields,
			Confirmed: row.Confirmed,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode transmit payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, destination, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build transmit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("send transmit request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("destination answered %s", resp.Status)
	}
	return nil
}
