package bridge

import (
	"context"
	"log/slog"
	"sync"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
)

// ProcessBatch relays every event of one webhook delivery concurrently.
// A failing event never blocks its siblings; its result slot records
// the error instead. The returned slice is index-aligned with events.
func (m *Mailer) ProcessBatch(ctx context.Context, events []webhook.EventInterface) []EventResult {
	results := make([]EventResult, len(events))

	var wg sync.WaitGroup
	for i, ev := range events {
		wg.Add(1)
		go func(i int, ev webhook.EventInterface) {
			defer wg.Done()
			if err := m.HandleEvent(ctx, ev); err != nil {
				m.logger.Error("event relay failed", slog.Int("index", i), slog.Any("error", err))
				results[i] = EventResult{Error: err.Error()}
				return
			}
			results[i] = EventResult{OK: true}
		}(i, ev)
	}
	wg.Wait()

	return results
}
