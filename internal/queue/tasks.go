package queue

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskMailSend 邮件发送任务
const TaskMailSend = "mail:send"

// MailPayload 邮件任务载荷
type MailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	// Kind 仅用于日志区分，例如 verify_email / reset_password / order_placed
	Kind string `json:"kind"`
}

// NewMailTask 创建邮件任务
func NewMailTask(payload MailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMailSend, body), nil
}

// ParseMailPayload 解析邮件任务载荷
func ParseMailPayload(task *asynq.Task) (MailPayload, error) {
	var payload MailPayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
