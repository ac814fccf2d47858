package worker

import (
	"context"
	"testing"

	"github.com/kahve-next/internal/provider"
	"github.com/kahve-next/internal/queue"

	"github.com/hibiken/asynq"
)

func TestHandleCartReconcileInvalidPayload(t *testing.T) {
	c := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskCartReconcile, []byte("not-json"))

	if err := c.handleCartReconcile(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error for invalid payload")
	}
}

func TestHandleCartReconcileEmptyOwnerSkipped(t *testing.T) {
	c := NewConsumer(&provider.Container{})
	payload, err := queue.NewCartReconcileTask(queue.CartReconcilePayload{OwnerID: "  "})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}

	if err := c.handleCartReconcile(context.Background(), payload); err != nil {
		t.Fatalf("empty owner should be skipped, got %v", err)
	}
}

func TestRegisterSkipsReconcileWhenDisabled(t *testing.T) {
	c := NewConsumer(&provider.Container{})
	c.DisableCartReconcile()
	mux := asynq.NewServeMux()
	c.Register(mux)

	task, err := queue.NewCartReconcileTask(queue.CartReconcilePayload{OwnerID: "owner-1"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	// 处理器未注册，任务必须报错重试而不是被空跑确认
	if err := mux.ProcessTask(context.Background(), task); err == nil {
		t.Fatal("expected unregistered task type to error")
	}
}

func TestRegisterHandlesReconcileWhenEnabled(t *testing.T) {
	c := NewConsumer(&provider.Container{})
	mux := asynq.NewServeMux()
	c.Register(mux)

	task, err := queue.NewCartReconcileTask(queue.CartReconcilePayload{OwnerID: " "})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := mux.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("registered handler should process the task, got %v", err)
	}
}

func TestHandleCartReconcileNilSyncService(t *testing.T) {
	c := NewConsumer(&provider.Container{})
	payload, err := queue.NewCartReconcileTask(queue.CartReconcilePayload{OwnerID: "owner-1"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}

	if err := c.handleCartReconcile(context.Background(), payload); err != nil {
		t.Fatalf("nil sync service should be skipped, got %v", err)
	}
}
