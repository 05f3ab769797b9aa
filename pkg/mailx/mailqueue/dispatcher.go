package mailqueue

import (
	"context"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/mailx"
	"github.com/google/uuid"
)

// Dispatcher queues notifications for the worker pool
type Dispatcher struct {
	queue Queue
}

// NewDispatcher creates a dispatcher writing to queue
func NewDispatcher(queue Queue) *Dispatcher {
	return &Dispatcher{queue: queue}
}

// Dispatch queues msg for delivery
func (d *Dispatcher) Dispatch(ctx context.Context, msg mailx.Message) error {
	return d.queue.Enqueue(ctx, &Job{
		ID:         uuid.NewString(),
		Message:    msg,
		EnqueuedAt: time.Now(),
	})
}

// SendWelcome queues the welcome message for an applicant
func (d *Dispatcher) SendWelcome(ctx context.Context, to kernel.Email, fullName string) error {
	return d.Dispatch(ctx, mailx.WelcomeMessage(to.String(), fullName))
}
