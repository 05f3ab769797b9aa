package mailqueue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/mailx"
)

// memoryQueue is an in-process Queue; delayed jobs are ready immediately on MoveDelayedToReady
type memoryQueue struct {
	mu      sync.Mutex
	ready   []*Job
	delayed []*Job
	delays  []time.Duration
}

func (q *memoryQueue) Enqueue(_ context.Context, job *Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ready = append(q.ready, job)
	return nil
}

func (q *memoryQueue) Dequeue(_ context.Context, _ time.Duration) (*Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.ready) == 0 {
		return nil, nil
	}
	job := q.ready[0]
	q.ready = q.ready[1:]
	return job, nil
}

func (q *memoryQueue) EnqueueDelayed(_ context.Context, job *Job, delay time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.delayed = append(q.delayed, job)
	q.delays = append(q.delays, delay)
	return nil
}

func (q *memoryQueue) MoveDelayedToReady(_ context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.delayed)
	q.ready = append(q.ready, q.delayed...)
	q.delayed = nil
	return n, nil
}

type flakyMailer struct {
	mu       sync.Mutex
	failures int
	sent     []mailx.Message
	calls    int
}

func (m *flakyMailer) Send(_ context.Context, msg mailx.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.calls <= m.failures {
		return errors.New("421 try again later")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func TestDispatcherQueuesWelcome(t *testing.T) {
	q := &memoryQueue{}
	d := NewDispatcher(q)

	if err := d.SendWelcome(context.Background(), "a@x.com", "Ada"); err != nil {
		t.Fatalf("SendWelcome() error = %v", err)
	}
	if len(q.ready) != 1 {
		t.Fatalf("queued = %d, want 1", len(q.ready))
	}
	job := q.ready[0]
	if job.ID == "" || job.Message.To != "a@x.com" || job.Message.Subject != mailx.WelcomeSubject {
		t.Fatalf("queued job = %+v", job)
	}
}

func TestDeliverRetriesThenSucceeds(t *testing.T) {
	q := &memoryQueue{}
	mailer := &flakyMailer{failures: 2}
	w := NewWorker(mailer, q, 1)
	ctx := context.Background()

	job := &Job{ID: "m1", Message: mailx.WelcomeMessage("a@x.com", "")}
	for attempt := 1; attempt <= 3; attempt++ {
		w.deliver(ctx, 0, job)
		if attempt < 3 {
			if len(q.delayed) != 1 {
				t.Fatalf("attempt %d: delayed = %d, want 1", attempt, len(q.delayed))
			}
			q.MoveDelayedToReady(ctx)
			job, _ = q.Dequeue(ctx, 0)
		}
	}

	if len(mailer.sent) != 1 || job.Attempts != 3 {
		t.Fatalf("sent = %d, attempts = %d", len(mailer.sent), job.Attempts)
	}
	if len(q.delays) != 2 || q.delays[0] != time.Minute || q.delays[1] != 4*time.Minute {
		t.Fatalf("retry delays = %v", q.delays)
	}
}

func TestDeliverDropsAfterMaxAttempts(t *testing.T) {
	q := &memoryQueue{}
	mailer := &flakyMailer{failures: 10}
	w := NewWorker(mailer, q, 1)
	ctx := context.Background()

	job := &Job{ID: "m1", Message: mailx.WelcomeMessage("a@x.com", ""), Attempts: MaxAttempts - 1}
	w.deliver(ctx, 0, job)

	if len(q.delayed) != 0 || len(q.ready) != 0 {
		t.Fatalf("job rescheduled after final attempt")
	}
	if job.LastError == "" {
		t.Fatalf("LastError not recorded")
	}
}

func TestWorkerPoolDrainsQueue(t *testing.T) {
	q := &memoryQueue{}
	for i := 0; i < 5; i++ {
		q.Enqueue(context.Background(), &Job{ID: "m", Message: mailx.WelcomeMessage("a@x.com", "")})
	}
	mailer := &flakyMailer{}
	w := NewWorker(mailer, q, 2)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for {
		mailer.mu.Lock()
		n := len(mailer.sent)
		mailer.mu.Unlock()
		if n == 5 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("sent = %d, want 5", n)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	w.Wait()
}

// downQueue fails every dequeue, like a queue whose server is unreachable
type downQueue struct {
	memoryQueue
	mu    sync.Mutex
	polls int
}

func (q *downQueue) Dequeue(_ context.Context, _ time.Duration) (*Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.polls++
	return nil, errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")
}

func TestWorkerPausesAfterDequeueError(t *testing.T) {
	q := &downQueue{}
	w := NewWorker(&flakyMailer{}, q, 1)
	w.errorPause = 40 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	time.Sleep(150 * time.Millisecond)
	cancel()
	w.Wait()

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.polls < 1 || q.polls > 6 {
		t.Fatalf("dequeue polls = %d, want a handful paced by the pause", q.polls)
	}
}
