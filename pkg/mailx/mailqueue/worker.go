package mailqueue

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/pkg/mailx"
)

const (
	// MaxAttempts is how many times a message is tried before it is dropped
	MaxAttempts = 3

	dequeueTimeout = 5 * time.Second
	moveInterval   = 30 * time.Second
	dequeuePause   = 2 * time.Second
)

// Worker delivers queued mail with a pool of goroutines
type Worker struct {
	mailer     mailx.Mailer
	queue      Queue
	workers    int
	retryDelay func(attempt int) time.Duration
	// pause after a failed dequeue, so an unreachable queue is not polled in a tight loop
	errorPause time.Duration
	wg         sync.WaitGroup
}

// NewWorker creates a worker pool of the given size
func NewWorker(mailer mailx.Mailer, queue Queue, workers int) *Worker {
	if workers < 1 {
		workers = 1
	}
	return &Worker{
		mailer:     mailer,
		queue:      queue,
		workers:    workers,
		retryDelay: backoff,
		errorPause: dequeuePause,
	}
}

// backoff waits one, then four minutes
func backoff(attempt int) time.Duration {
	return time.Duration(attempt*attempt) * time.Minute
}

// Start launches the pool and the delayed-job mover. They stop when ctx is done.
func (w *Worker) Start(ctx context.Context) {
	logx.Infof("Starting %d mail workers", w.workers)

	w.wg.Add(1)
	go w.moveDelayedJobs(ctx)

	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i)
	}
}

// Wait blocks until every goroutine started by Start has returned
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	logx.Debugf("Mail worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Debugf("Mail worker %d stopping", workerID)
			return
		default:
		}

		job, err := w.queue.Dequeue(ctx, dequeueTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logx.Errorf("Mail worker %d dequeue error: %v", workerID, err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.errorPause):
			}
			continue
		}
		if job == nil {
			continue
		}

		w.deliver(ctx, workerID, job)
	}
}

// deliver sends one job and reschedules it on failure until MaxAttempts
func (w *Worker) deliver(ctx context.Context, workerID int, job *Job) {
	job.Attempts++

	err := w.mailer.Send(ctx, job.Message)
	if err == nil {
		logx.Infof("Mail worker %d sent %q to %s", workerID, job.Message.Subject, job.Message.To)
		return
	}

	job.LastError = err.Error()
	if job.Attempts >= MaxAttempts {
		logx.Errorf("Mail job %s to %s dropped after %d attempts: %v", job.ID, job.Message.To, job.Attempts, err)
		return
	}

	delay := w.retryDelay(job.Attempts)
	logx.Warnf("Mail job %s attempt %d failed, retrying in %s: %v", job.ID, job.Attempts, delay, err)
	if err := w.queue.EnqueueDelayed(ctx, job, delay); err != nil {
		logx.Errorf("Failed to reschedule mail job %s: %v", job.ID, err)
	}
}

func (w *Worker) moveDelayedJobs(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(moveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed mail jobs: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed mail jobs to ready queue", count)
			}
		}
	}
}
