package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/forama/newsletter/internal/domain"
	"github.com/forama/newsletter/internal/pkg/ctxlog"
)

// SubscriberMarker records a successful delivery against a subscriber.
type SubscriberMarker interface {
	MarkNotified(ctx context.Context, email string) error
}

// DispatcherConfig controls batching. BatchDelay is the pause between
// consecutive batches; the first batch starts immediately.
type DispatcherConfig struct {
	BatchSize  int
	BatchDelay time.Duration
}

// DispatchResult summarizes one dispatch run. Errors holds one
// "email: reason" entry per failed recipient, in delivery order within each
// batch.
type DispatchResult struct {
	Total  int
	Sent   int
	Failed int
	Errors []string
}

// Dispatcher sends one rendered message per subscriber in fixed-size batches,
// pacing batches with a rate limiter so the mail provider is never burst past
// its throughput limit.
type Dispatcher struct {
	sender Sender
	marker SubscriberMarker
	cfg    DispatcherConfig
}

// NewDispatcher creates a dispatcher. marker may be nil when delivery stamps
// are not wanted.
func NewDispatcher(sender Sender, marker SubscriberMarker, cfg DispatcherConfig) *Dispatcher {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	return &Dispatcher{
		sender: sender,
		marker: marker,
		cfg:    cfg,
	}
}

// Dispatch builds and sends one message per subscriber. A failed build or
// send affects only that recipient; the run always continues to the end
// unless ctx is cancelled. Successfully delivered subscribers are stamped via
// the marker, and a failed stamp still counts the delivery as sent.
func (d *Dispatcher) Dispatch(ctx context.Context, subs []domain.Subscriber, build func(domain.Subscriber) (Message, error)) (*DispatchResult, error) {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	result := &DispatchResult{Total: len(subs)}
	limiter := rate.NewLimiter(rate.Every(d.cfg.BatchDelay), 1)

	var mu sync.Mutex

	for offset := 0; offset < len(subs); offset += d.cfg.BatchSize {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for batch slot: %w", err)
		}

		end := offset + d.cfg.BatchSize
		if end > len(subs) {
			end = len(subs)
		}
		batch := subs[offset:end]

		logger.Info("sending notification batch",
			"batch_start", offset,
			"batch_size", len(batch),
			"total", len(subs),
		)

		var wg sync.WaitGroup
		for _, sub := range batch {
			wg.Add(1)
			go func(sub domain.Subscriber) {
				defer wg.Done()

				err := d.sendOne(ctx, sub, build)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					result.Failed++
					result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", sub.Email, err))
					emailsSentTotal.WithLabelValues("failed").Inc()
					return
				}
				result.Sent++
				emailsSentTotal.WithLabelValues("sent").Inc()
			}(sub)
		}
		wg.Wait()
	}

	dispatchDuration.Observe(time.Since(start).Seconds())
	notificationRunsTotal.Inc()

	return result, nil
}

func (d *Dispatcher) sendOne(ctx context.Context, sub domain.Subscriber, build func(domain.Subscriber) (Message, error)) error {
	logger := ctxlog.FromContext(ctx)

	msg, err := build(sub)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	if err := d.sender.Send(ctx, msg); err != nil {
		return err
	}

	if d.marker != nil {
		if err := d.marker.MarkNotified(ctx, sub.Email); err != nil {
			logger.Error("failed to stamp last notification",
				"email", sub.Email,
				"error", err,
			)
		}
	}
	return nil
}
