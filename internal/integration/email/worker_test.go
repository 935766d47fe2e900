package email

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/fianzas-manager/backend/internal/application/adapter"
	"github.com/fianzas-manager/backend/internal/domain/entity"
	"github.com/fianzas-manager/backend/internal/integration/email/templates"
)

// fakeQueue is an in-memory EmailQueueRepository.
type fakeQueue struct {
	adapter.EmailQueueRepository
	jobs map[uuid.UUID]*entity.EmailJob
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{jobs: make(map[uuid.UUID]*entity.EmailJob)}
}

func (q *fakeQueue) Create(_ context.Context, job *entity.EmailJob) error {
	copied := *job
	q.jobs[job.ID] = &copied
	return nil
}

func (q *fakeQueue) GetPendingJobs(_ context.Context, limit int) ([]*entity.EmailJob, error) {
	pending := make([]*entity.EmailJob, 0)
	for _, job := range q.jobs {
		if job.IsReadyToProcess() && len(pending) < limit {
			copied := *job
			pending = append(pending, &copied)
		}
	}
	return pending, nil
}

func (q *fakeQueue) Update(_ context.Context, job *entity.EmailJob) error {
	copied := *job
	q.jobs[job.ID] = &copied
	return nil
}

func newTestWorker(t *testing.T, queue *fakeQueue, sender *MockEmailSender) *Worker {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return NewWorker(queue, sender, renderer, WorkerConfig{BatchSize: 10})
}

func queueResetJob(t *testing.T, queue *fakeQueue, recipient string) *entity.EmailJob {
	t.Helper()
	job := entity.NewEmailJob(
		entity.TemplatePasswordReset,
		recipient,
		"Ana",
		"Restablecer tu contrasena",
		map[string]interface{}{
			"user_name":  "Ana",
			"reset_url":  "http://localhost:5173/reset-password?token=abc",
			"expires_in": "1 hour",
		},
	)
	if err := queue.Create(context.Background(), job); err != nil {
		t.Fatalf("queue.Create: %v", err)
	}
	return job
}

func TestWorker_SendsPendingJob(t *testing.T) {
	queue := newFakeQueue()
	sender := NewMockEmailSender()
	worker := newTestWorker(t, queue, sender)

	job := queueResetJob(t, queue, "ana@example.com")

	worker.ProcessNow(context.Background())

	if len(sender.SentEmails) != 1 {
		t.Fatalf("expected 1 sent email, got %d", len(sender.SentEmails))
	}
	sent := sender.SentEmails[0]
	if sent.To != "ana@example.com" {
		t.Errorf("To = %q, want ana@example.com", sent.To)
	}
	if !strings.Contains(sent.HTML, "reset-password?token=abc") {
		t.Errorf("rendered HTML does not contain the reset link")
	}

	stored := queue.jobs[job.ID]
	if stored.Status != entity.EmailStatusSent {
		t.Errorf("job status = %q, want %q", stored.Status, entity.EmailStatusSent)
	}
	if stored.ResendID == "" {
		t.Error("expected a provider id on the sent job")
	}
}

func TestWorker_TemporaryFailureSchedulesRetry(t *testing.T) {
	queue := newFakeQueue()
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("rate limited"), false)
	worker := newTestWorker(t, queue, sender)

	job := queueResetJob(t, queue, "ana@example.com")

	worker.ProcessNow(context.Background())

	stored := queue.jobs[job.ID]
	if stored.Status != entity.EmailStatusPending {
		t.Fatalf("job status = %q, want %q", stored.Status, entity.EmailStatusPending)
	}
	if stored.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", stored.Attempts)
	}
	if !stored.CanRetry() {
		t.Error("job should still be retryable")
	}
}

func TestWorker_PermanentFailureStopsRetrying(t *testing.T) {
	queue := newFakeQueue()
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("invalid recipient"), true)
	worker := newTestWorker(t, queue, sender)

	job := queueResetJob(t, queue, "bad@example.com")

	worker.ProcessNow(context.Background())

	stored := queue.jobs[job.ID]
	if stored.Status != entity.EmailStatusFailed {
		t.Fatalf("job status = %q, want %q", stored.Status, entity.EmailStatusFailed)
	}
	if stored.ProcessedAt == nil {
		t.Error("expected a processed timestamp on the failed job")
	}
}

func TestWorker_ExhaustsAttemptsThenFails(t *testing.T) {
	queue := newFakeQueue()
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("upstream 500"), false)
	worker := newTestWorker(t, queue, sender)

	job := queueResetJob(t, queue, "ana@example.com")

	// First attempt retries immediately, so the second and third runs pick
	// the job up again until MaxAttempts is reached.
	for i := 0; i < job.MaxAttempts; i++ {
		stored := queue.jobs[job.ID]
		worker.processJob(context.Background(), stored)
	}

	stored := queue.jobs[job.ID]
	if stored.Status != entity.EmailStatusFailed {
		t.Fatalf("job status = %q, want %q", stored.Status, entity.EmailStatusFailed)
	}
	if stored.Attempts != job.MaxAttempts {
		t.Errorf("attempts = %d, want %d", stored.Attempts, job.MaxAttempts)
	}
}
