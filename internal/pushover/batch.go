package pushover

import (
	"context"
	"log/slog"
	"time"
)

// BatchItem pairs a message with its pre-merged options.
type BatchItem struct {
	Message string
	Options Options
}

// BatchItemResult holds the outcome of one batch slot. Exactly one of Result
// and Error is set.
type BatchItemResult struct {
	Result *DispatchResult `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// BatchResult aggregates a batch dispatch. Results preserves input order and
// Sent+Failed always equals the number of input items.
type BatchResult struct {
	Results []BatchItemResult `json:"results"`
	Sent    int               `json:"sent"`
	Failed  int               `json:"failed"`
}

// SendBatch dispatches the items sequentially in input order. A failed item is
// captured in its result slot and does not abort the remaining items. The
// inter-item delay paces provider throughput, so it only runs after a
// successful send.
func (a *Adapter) SendBatch(ctx context.Context, items []BatchItem, delay time.Duration, creds Credentials) *BatchResult {
	log := a.logger.WithContext(ctx).WithComponent("pushover")

	out := &BatchResult{Results: make([]BatchItemResult, 0, len(items))}
	for i, item := range items {
		opts, err := Normalize(item.Message, item.Options)
		if err == nil {
			var res *DispatchResult
			res, err = a.Send(ctx, opts, creds)
			if err == nil {
				out.Results = append(out.Results, BatchItemResult{Result: res})
				out.Sent++
				if delay > 0 && i < len(items)-1 {
					time.Sleep(delay)
				}
				continue
			}
		}

		log.Warn("batch item failed",
			slog.Int("index", i),
			slog.String("error", err.Error()))
		out.Results = append(out.Results, BatchItemResult{Error: err.Error()})
		out.Failed++
	}

	log.Info("batch dispatch completed",
		slog.Int("total", len(items)),
		slog.Int("sent", out.Sent),
		slog.Int("failed", out.Failed))

	return out
}
