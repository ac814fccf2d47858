package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/kahve-next/internal/logger"
	"github.com/kahve-next/internal/provider"
	"github.com/kahve-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
	reconcileDisabled bool
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// DisableCartReconcile 关闭购物车对账消费
// 对账读写的是进程内会话镜像，独立 worker 进程没有镜像可对；
// 不注册处理器让任务留在队列里重试，而不是被空跑确认掉
func (c *Consumer) DisableCartReconcile() {
	c.reconcileDisabled = true
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	if c.reconcileDisabled {
		logger.Warnw("worker_cart_reconcile_handler_disabled")
		return
	}
	mux.HandleFunc(queue.TaskCartReconcile, c.handleCartReconcile)
}

func (c *Consumer) handleCartReconcile(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_cart_reconcile_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CartReconcilePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_cart_reconcile_unmarshal_failed", "error", err)
		return err
	}
	ownerID := strings.TrimSpace(payload.OwnerID)
	if ownerID == "" {
		logger.Debugw("worker_cart_reconcile_skip_empty_owner")
		return nil
	}
	if c.SyncService == nil {
		logger.Warnw("worker_cart_reconcile_skip_sync_service_nil", "owner_id", ownerID)
		return nil
	}

	remaining, err := c.SyncService.Reconcile(ctx, ownerID)
	if err != nil {
		logger.Warnw("worker_cart_reconcile_failed", "owner_id", ownerID, "error", err)
		return err
	}
	if remaining > 0 {
		logger.Infow("worker_cart_reconcile_partial", "owner_id", ownerID, "remaining", remaining)
	} else {
		logger.Infow("worker_cart_reconcile_done", "owner_id", ownerID)
	}
	return nil
}
