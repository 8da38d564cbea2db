package main

import (
	"log/slog"
	"sync"

	"github.com/germanamz/modai/pkg/engine"
)

// traceEvents logs every engine event at debug level until the returned stop
// func is called. stop drains what was already published before returning.
func traceEvents(events *engine.EventBus, logger *slog.Logger) (stop func()) {
	sub := events.Subscribe(64)

	var wg sync.WaitGroup
	wg.Go(func() {
		for ev := range sub.C {
			attrs := []any{"kind", string(ev.Kind), "invocation", ev.InvocationID, "command", ev.Command}
			switch d := ev.Data.(type) {
			case engine.Result:
				attrs = append(attrs, "outcome", d.Outcome.String())
			case error:
				attrs = append(attrs, "error", d)
			}
			logger.Debug("engine event", attrs...)
		}
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			events.Unsubscribe(sub)
			wg.Wait()
		})
	}
}
