package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/bangmod-market/internal/config"
	"github.com/bangmod-market/internal/provider"
	"github.com/bangmod-market/internal/queue"

	"github.com/hibiken/asynq"
)

type recordingSender struct {
	to      []string
	subject []string
	err     error
}

func (s *recordingSender) Send(_ context.Context, to, subject, _ string) error {
	s.to = append(s.to, to)
	s.subject = append(s.subject, subject)
	return s.err
}

func newMailTask(t *testing.T, payload queue.MailPayload) *asynq.Task {
	t.Helper()
	task, err := queue.NewMailTask(payload)
	if err != nil {
		t.Fatalf("new mail task failed: %v", err)
	}
	return task
}

func TestHandleMailSendDelivers(t *testing.T) {
	sender := &recordingSender{}
	consumer := NewConsumer(&provider.Container{MailSender: sender})

	err := consumer.handleMailSend(context.Background(), newMailTask(t, queue.MailPayload{
		To:      " seller@example.com ",
		Subject: "New order",
		Kind:    "order_placed",
	}))
	if err != nil {
		t.Fatalf("handle mail failed: %v", err)
	}
	if len(sender.to) != 1 || sender.to[0] != "seller@example.com" {
		t.Fatalf("unexpected receivers: %v", sender.to)
	}
}

func TestHandleMailSendSkipsEmptyReceiver(t *testing.T) {
	sender := &recordingSender{}
	consumer := NewConsumer(&provider.Container{MailSender: sender})

	if err := consumer.handleMailSend(context.Background(), newMailTask(t, queue.MailPayload{To: "  "})); err != nil {
		t.Fatalf("empty receiver should be skipped: %v", err)
	}
	if len(sender.to) != 0 {
		t.Fatalf("sender should not be called")
	}
}

func TestHandleMailSendFailureIsNotRetried(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	consumer := NewConsumer(&provider.Container{MailSender: sender})

	err := consumer.handleMailSend(context.Background(), newMailTask(t, queue.MailPayload{To: "a@example.com"}))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected skip retry error, got %v", err)
	}
}

func TestNewServiceRequiresEnabledQueue(t *testing.T) {
	if _, err := NewService(&config.QueueConfig{Enabled: false}, NewConsumer(&provider.Container{})); !errors.Is(err, ErrQueueDisabled) {
		t.Fatalf("expected queue disabled error, got %v", err)
	}
}
