package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bangmod-market/internal/logger"
	"github.com/bangmod-market/internal/queue"
)

const mailSendTimeout = 30 * time.Second

// MailDispatcher 异步投递邮件，失败只记录日志，不重试
type MailDispatcher struct {
	queue  *queue.Client
	sender MailSender
	wg     sync.WaitGroup
}

// NewMailDispatcher 创建邮件投递器，队列可用时走 asynq，否则后台协程直接发送
func NewMailDispatcher(queueClient *queue.Client, sender MailSender) *MailDispatcher {
	return &MailDispatcher{queue: queueClient, sender: sender}
}

// Dispatch 投递邮件，立即返回
func (d *MailDispatcher) Dispatch(kind, to, subject, body string) {
	if d == nil {
		return
	}
	to = strings.TrimSpace(to)
	if to == "" {
		logger.Debugw("mail_dispatch_skip_empty_receiver", "kind", kind)
		return
	}
	if d.queue.Enabled() {
		payload := queue.MailPayload{To: to, Subject: subject, Body: body, Kind: kind}
		if err := d.queue.EnqueueMail(payload); err != nil {
			logger.Warnw("mail_dispatch_failed", "kind", kind, "receiver_email", to, "error", err)
		}
		return
	}
	if d.sender == nil {
		logger.Warnw("mail_dispatch_skip_sender_nil", "kind", kind, "receiver_email", to)
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), mailSendTimeout)
		defer cancel()
		if err := d.sender.Send(ctx, to, subject, body); err != nil {
			logger.Warnw("mail_dispatch_failed", "kind", kind, "receiver_email", to, "error", err)
		}
	}()
}

// Wait 等待后台发送结束
func (d *MailDispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}
