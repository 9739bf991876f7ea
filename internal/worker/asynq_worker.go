package worker

import (
	"context"
	"fmt"
	"strings"

	"github.com/bangmod-market/internal/logger"
	"github.com/bangmod-market/internal/provider"
	"github.com/bangmod-market/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskMailSend, c.handleMailSend)
}

func (c *Consumer) handleMailSend(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_mail_send_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseMailPayload(task)
	if err != nil {
		logger.Warnw("worker_mail_send_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	receiver := strings.TrimSpace(payload.To)
	if receiver == "" {
		logger.Debugw("worker_mail_send_skip_empty_receiver", "kind", payload.Kind)
		return nil
	}
	if c.MailSender == nil {
		logger.Warnw("worker_mail_send_skip_sender_nil", "kind", payload.Kind, "receiver_email", receiver)
		return nil
	}
	if err := c.MailSender.Send(ctx, receiver, payload.Subject, payload.Body); err != nil {
		logger.Warnw("worker_mail_send_failed",
			"kind", payload.Kind,
			"receiver_email", receiver,
			"error", err,
		)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	logger.Debugw("worker_mail_send_done", "kind", payload.Kind, "receiver_email", receiver)
	return nil
}
