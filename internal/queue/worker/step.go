package worker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/davesbikeparts/partshub/internal/domain/job"
	"github.com/davesbikeparts/partshub/internal/jobs"
	"github.com/davesbikeparts/partshub/internal/notifications"
)

// ProcessOne claims and executes a single job. The bool reports whether a
// job was claimed at all.
func (w *Worker) ProcessOne(ctx context.Context) (bool, error) {
	claimCtx, cancel := context.WithTimeout(ctx, 2*time.Second)

	j, err := w.repo.ClaimNext(claimCtx, w.cfg.WorkerID)
	cancel()

	if err != nil {
		if errors.Is(err, job.ErrJobNotFound) {
			return false, nil
		}

		return false, err
	}

	if w.prom != nil {
		w.prom.JobsInFlight.Inc()
		defer w.prom.JobsInFlight.Dec()
	}

	start := time.Now()

	err = w.execute(ctx, j)

	if err != nil {
		w.observeJob(j.Type, "retry", start)
		w.handleFailure(ctx, j, err)
		return true, nil
	}

	err = w.repo.MarkDone(ctx, j.ID)

	if err != nil {
		_ = w.repo.MarkFailed(ctx, j.ID, "mark_done_failed: "+err.Error())
		w.observeJob(j.Type, "failed", start)
		return true, err
	}

	w.observeJob(j.Type, "done", start)

	return true, nil
}

func (w *Worker) execute(ctx context.Context, j job.Job) error {
	switch j.Type {
	case jobs.TypeBookingReceipt:
		p, err := jobs.DecodeBookingReceipt(j.Payload)

		if err != nil {
			return err
		}

		return w.notifier.SendBookingReceipt(ctx, notifications.SendBookingReceiptInput{
			Email:         p.OwnerEmail,
			PartName:      p.PartName,
			BookingID:     p.BookingID,
			TransactionID: p.TransactionID,
			AmountCents:   p.AmountCents,
		})

	default:
		return fmt.Errorf("%w: %s", jobs.ErrUnknownJobType, j.Type)
	}
}

func (w *Worker) handleFailure(ctx context.Context, j job.Job, execErr error) {
	// a payload that can never decode will never succeed; fail it now
	if errors.Is(execErr, jobs.ErrInvalidPayload) || errors.Is(execErr, jobs.ErrUnknownJobType) {
		if err := w.repo.MarkFailed(ctx, j.ID, execErr.Error()); err != nil {
			log.Printf("mark failed error: %v", err)
		}
		return
	}

	attempt := j.Attempts + 1

	if attempt >= j.MaxAttempts {
		if err := w.repo.MarkFailed(ctx, j.ID, execErr.Error()); err != nil {
			log.Printf("mark failed error: %v", err)
		}
		return
	}

	runAt := time.Now().UTC().Add(ExponentialBackoff(j.Attempts))

	if err := w.repo.Reschedule(ctx, j.ID, runAt, execErr.Error()); err != nil {
		log.Printf("reschedule error: %v", err)
	}
}

func (w *Worker) observeJob(jobType, result string, start time.Time) {
	if w.prom == nil {
		return
	}

	w.prom.JobResults.WithLabelValues(jobType, result).Inc()
	w.prom.JobDuration.WithLabelValues(jobType, result).Observe(time.Since(start).Seconds())
}
