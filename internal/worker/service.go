package worker

import (
	"context"
	"errors"
	"time"

	"github.com/kahve-next/internal/config"
	"github.com/kahve-next/internal/logger"
	"github.com/kahve-next/internal/queue"

	"github.com/hibiken/asynq"
)

const defaultReconcileSweepInterval = time.Minute

// Service 异步队列服务
type Service struct {
	name          string
	server        *asynq.Server
	mux           *asynq.ServeMux
	consumer      *Consumer
	sweepInterval time.Duration
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	sweepInterval := defaultReconcileSweepInterval
	if cfg.ReconcileSweepSeconds > 0 {
		sweepInterval = time.Duration(cfg.ReconcileSweepSeconds) * time.Second
	}
	return &Service{
		name:          "worker",
		server:        server,
		mux:           mux,
		consumer:      consumer,
		sweepInterval: sweepInterval,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && !s.consumer.reconcileDisabled && s.consumer.SyncService != nil {
		go s.runReconcileSweepLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runReconcileSweepLoop 周期兜底巡检：把仍有待同步条目的会话重新入队
func (s *Service) runReconcileSweepLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.Sessions == nil {
		return
	}
	runOnce := func() {
		owners := s.consumer.Sessions.OwnersWithPending()
		for _, ownerID := range owners {
			remaining, err := s.consumer.SyncService.Reconcile(ctx, ownerID)
			if err != nil {
				logger.Warnw("worker_reconcile_sweep_failed", "owner_id", ownerID, "error", err)
				continue
			}
			if remaining > 0 {
				logger.Infow("worker_reconcile_sweep_partial", "owner_id", ownerID, "remaining", remaining)
			}
		}
	}
	runOnce()

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
