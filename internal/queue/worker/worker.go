package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/davesbikeparts/partshub/internal/domain/job"
	"github.com/davesbikeparts/partshub/internal/notifications"
	"github.com/davesbikeparts/partshub/internal/observability"
)

type JobsRepository interface {
	ClaimNext(ctx context.Context, workerID string) (job.Job, error)
	MarkDone(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, errMsg string) error
	Reschedule(ctx context.Context, id string, runAt time.Time, errMsg string) error
}

type Config struct {
	PollInterval  time.Duration
	WorkerID      string
	Concurrency   int
	ShutdownGrace time.Duration
}

type Worker struct {
	cfg      Config
	repo     JobsRepository
	notifier notifications.Notifier
	prom     *observability.Prom

	readyMu sync.RWMutex
	ready   bool
}

func New(cfg Config, repo JobsRepository, notifier notifications.Notifier, prom *observability.Prom) *Worker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 500 * time.Millisecond
	}

	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}

	if cfg.ShutdownGrace <= 0 {
		cfg.ShutdownGrace = 10 * time.Second
	}

	return &Worker{
		cfg:      cfg,
		repo:     repo,
		notifier: notifier,
		prom:     prom,
	}
}

func (w *Worker) setReady(ready bool) {
	w.readyMu.Lock()
	w.ready = ready
	w.readyMu.Unlock()
}

// Run polls for runnable jobs until ctx is cancelled, processing up to
// Concurrency jobs at a time. In-flight jobs get ShutdownGrace to finish.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	var wg sync.WaitGroup

	w.setReady(true)
	defer w.setReady(false)

	for {
		select {
		case <-ctx.Done():
			log.Println("worker received shutdown signal")

			done := make(chan struct{})

			go func() {
				wg.Wait()
				close(done)
			}()

			select {
			case <-done:
			case <-time.After(w.cfg.ShutdownGrace):
				log.Println("worker shutdown grace elapsed with jobs still in flight")
			}

			return nil

		case <-ticker.C:
			select {
			case sem <- struct{}{}:
			default:
				// all slots busy; the next tick tries again
				continue
			}

			wg.Add(1)

			go func() {
				defer wg.Done()
				defer func() { <-sem }()

				_, err := w.ProcessOne(ctx)

				if err != nil {
					log.Printf("process error: %v", err)
				}
			}()
		}
	}
}
