package queue

import (
	"fmt"
	"strings"

	"github.com/bangmod-market/internal/config"
	"github.com/bangmod-market/internal/constants"

	"github.com/hibiken/asynq"
)

// Client 队列客户端封装
type Client struct {
	client    *asynq.Client
	enabled   bool
	mailQueue string
}

// NewClient 创建队列客户端，未启用时返回空客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{enabled: false, mailQueue: constants.QueueMail}, nil
	}
	return &Client{
		client:    asynq.NewClient(buildRedisOpt(cfg)),
		enabled:   true,
		mailQueue: constants.QueueMail,
	}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueMail 推送邮件任务，不重试
func (c *Client) EnqueueMail(payload MailPayload) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewMailTask(payload)
	if err != nil {
		return err
	}
	_, err = c.client.Enqueue(task, asynq.Queue(c.mailQueue), asynq.MaxRetry(0))
	return err
}

// BuildServerConfig 生成队列服务配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	concurrency := 5
	if cfg != nil && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}
	queues := map[string]int{constants.QueueDefault: 1, constants.QueueMail: 1}
	if cfg != nil && len(cfg.Queues) > 0 {
		queues = cfg.Queues
	}
	return buildRedisOpt(cfg), asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	opt.Addr = fmt.Sprintf("%s:%d", host, port)
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}
