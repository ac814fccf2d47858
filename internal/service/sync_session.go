package service

import (
	"context"
	"time"

	"github.com/kahve-next/internal/logger"
	"github.com/kahve-next/internal/models"
	"github.com/kahve-next/internal/queue"
	"github.com/kahve-next/internal/repository"
	"github.com/kahve-next/internal/session"
)

// SyncService 购物车与收藏的同步服务
// 所有读写先落会话镜像，远端文档库写入失败时条目打 SyncPending
// 标记留在镜像里，由对账任务补写
type SyncService struct {
	cartRepo repository.CartRepository
	favRepo  repository.FavoriteRepository
	saleRepo repository.SaleRepository
	sessions *session.Manager
	queue    *queue.Client
}

// NewSyncService 创建同步服务
func NewSyncService(
	cartRepo repository.CartRepository,
	favRepo repository.FavoriteRepository,
	saleRepo repository.SaleRepository,
	sessions *session.Manager,
	queueClient *queue.Client,
) *SyncService {
	return &SyncService{
		cartRepo: cartRepo,
		favRepo:  favRepo,
		saleRepo: saleRepo,
		sessions: sessions,
		queue:    queueClient,
	}
}

// Bootstrap 用远端快照整体装载会话镜像
// 覆盖式替换：镜像里未同步的本地条目会被远端状态取代
func (s *SyncService) Bootstrap(ctx context.Context, ownerID string) error {
	cartRows, err := s.cartRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	favRows, err := s.favRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return err
	}

	cart := make([]models.CartEntry, 0, len(cartRows))
	for _, row := range cartRows {
		cart = append(cart, models.EntryFromCartRow(row))
	}
	favorites := make([]models.FavoriteEntry, 0, len(favRows))
	for _, row := range favRows {
		favorites = append(favorites, models.EntryFromFavoriteRow(row))
	}

	s.sessions.Get(ownerID).Replace(cart, favorites)
	return nil
}

// EnsureLoaded 会话未装载时先拉远端快照
// 远端不可达时以空镜像继续，后续写入走乐观回退
func (s *SyncService) EnsureLoaded(ctx context.Context, ownerID string) *session.Session {
	sess := s.sessions.Get(ownerID)
	if sess.Loaded() {
		return sess
	}
	if err := s.Bootstrap(ctx, ownerID); err != nil {
		logger.Warnw("session_bootstrap_failed", "owner_id", ownerID, "error", err)
		sess.Replace(nil, nil)
	}
	return sess
}

// ClearSession 丢弃会话镜像
func (s *SyncService) ClearSession(ownerID string) {
	s.sessions.Drop(ownerID)
}

// SignIn 登录成功后重置会话镜像并全量装载远端快照
// 先丢弃旧镜像，上次会话遗留的本地占位条目一并作废；
// 远端不可达时记日志，镜像留空待下次请求重试装载
func (s *SyncService) SignIn(ctx context.Context, ownerID string) {
	s.ClearSession(ownerID)
	if err := s.Bootstrap(ctx, ownerID); err != nil {
		logger.Warnw("session_signin_bootstrap_failed", "owner_id", ownerID, "error", err)
	}
}

// Reconcile 把镜像里的待同步条目补写到远端
// 逐条处理，单条失败不影响其余条目，返回剩余待同步条数
func (s *SyncService) Reconcile(ctx context.Context, ownerID string) (int, error) {
	sess := s.sessions.Get(ownerID)
	if !sess.Loaded() {
		return 0, nil
	}

	for _, entry := range sess.PendingCartEntries() {
		if models.IsLocalKey(entry.Key) {
			row := models.CartRowFromEntry(entry, time.Now())
			remoteKey, err := s.cartRepo.Upsert(ctx, &row)
			if err != nil {
				logger.Warnw("reconcile_cart_upsert_failed", "owner_id", ownerID, "item_id", entry.ItemID, "error", err)
				continue
			}
			sess.ReplaceCartKey(entry.Key, remoteKey)
			continue
		}
		if err := s.cartRepo.UpdateQuantity(ctx, entry.Key, entry.Quantity); err != nil {
			logger.Warnw("reconcile_cart_update_failed", "owner_id", ownerID, "key", entry.Key, "error", err)
			continue
		}
		sess.MarkCartSynced(entry.Key)
	}

	for _, entry := range sess.PendingFavoriteEntries() {
		row := models.FavoriteRowFromEntry(entry, time.Now())
		if err := s.favRepo.Insert(ctx, &row); err != nil {
			logger.Warnw("reconcile_favorite_insert_failed", "owner_id", ownerID, "item_id", entry.ItemID, "error", err)
			continue
		}
		sess.MarkFavoriteSynced(entry.ItemID)
	}

	remaining := len(sess.PendingCartEntries()) + len(sess.PendingFavoriteEntries())
	return remaining, nil
}

// enqueueReconcile 有待同步条目时推一个对账任务，失败只记日志
func (s *SyncService) enqueueReconcile(ownerID string) {
	if s.queue == nil {
		return
	}
	if err := s.queue.EnqueueCartReconcile(queue.CartReconcilePayload{OwnerID: ownerID}); err != nil {
		logger.Warnw("reconcile_enqueue_failed", "owner_id", ownerID, "error", err)
	}
}
