package queue

import (
	"testing"

	"github.com/bangmod-market/internal/config"
	"github.com/bangmod-market/internal/constants"
)

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueMail(MailPayload{To: "a@example.com"}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close disabled client failed: %v", err)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: " ", Port: 0, DB: 2})
	if opt.Addr != "127.0.0.1:6379" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt: %+v", opt)
	}
	if cfg.Concurrency != 5 {
		t.Fatalf("unexpected concurrency: %d", cfg.Concurrency)
	}
	if cfg.Queues[constants.QueueMail] != 1 {
		t.Fatalf("mail queue should be registered: %+v", cfg.Queues)
	}
}

func TestMailTaskRoundTrip(t *testing.T) {
	task, err := NewMailTask(MailPayload{To: "seller@example.com", Subject: "New order", Body: "hi", Kind: "order_placed"})
	if err != nil {
		t.Fatalf("new mail task failed: %v", err)
	}
	if task.Type() != TaskMailSend {
		t.Fatalf("unexpected task type %s", task.Type())
	}
	payload, err := ParseMailPayload(task)
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if payload.To != "seller@example.com" || payload.Kind != "order_placed" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}
