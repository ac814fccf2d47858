package queue

import (
	"encoding/json"

	"github.com/kahve-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCartReconcile 会话镜像对账任务
	TaskCartReconcile = constants.TaskCartReconcile
)

// CartReconcilePayload 对账任务载荷
type CartReconcilePayload struct {
	OwnerID string `json:"owner_id"`
}

// NewCartReconcileTask 创建对账任务
func NewCartReconcileTask(payload CartReconcilePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCartReconcile, body), nil
}
