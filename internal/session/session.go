// Package session 维护每个用户在内存中的购物车与收藏镜像。
// 镜像是远端文档库的乐观副本：远端写入失败时条目仍保留在镜像里，
// 打上 SyncPending 标记等待对账。
package session

import (
	"sync"

	"github.com/kahve-next/internal/models"
)

// Session 单个用户的会话镜像
type Session struct {
	mu        sync.Mutex
	ownerID   string
	loaded    bool
	cart      []models.CartEntry
	favorites []models.FavoriteEntry
}

// Manager 按用户 ID 管理会话镜像
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager 创建会话管理器
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Get 取用户会话，不存在时创建空会话
func (m *Manager) Get(ownerID string) *Session {
	m.mu.RLock()
	s, ok := m.sessions[ownerID]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[ownerID]; ok {
		return s
	}
	s = &Session{ownerID: ownerID}
	m.sessions[ownerID] = s
	return s
}

// Drop 丢弃用户会话（登出时调用）
func (m *Manager) Drop(ownerID string) {
	m.mu.Lock()
	delete(m.sessions, ownerID)
	m.mu.Unlock()
}

// OwnersWithPending 返回存在待同步条目的用户列表
func (m *Manager) OwnersWithPending() []string {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	owners := make([]string, 0)
	for _, s := range sessions {
		if s.HasPending() {
			owners = append(owners, s.ownerID)
		}
	}
	return owners
}

// Loaded 会话是否已完成首次远端装载
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Replace 用远端快照整体替换镜像
func (s *Session) Replace(cart []models.CartEntry, favorites []models.FavoriteEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = append([]models.CartEntry(nil), cart...)
	s.favorites = append([]models.FavoriteEntry(nil), favorites...)
	s.loaded = true
}

// Cart 购物车快照副本
func (s *Session) Cart() []models.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartEntry(nil), s.cart...)
}

// Favorites 收藏快照副本
func (s *Session) Favorites() []models.FavoriteEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.FavoriteEntry(nil), s.favorites...)
}

// CartEntryByItem 按商品号查购物车条目
func (s *Session) CartEntryByItem(itemID int) (models.CartEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.cart {
		if e.ItemID == itemID {
			return e, true
		}
	}
	return models.CartEntry{}, false
}

// UpsertCartEntry 按 key 更新条目，key 不存在则追加
func (s *Session) UpsertCartEntry(entry models.CartEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.cart {
		if e.Key == entry.Key {
			s.cart[i] = entry
			return
		}
	}
	s.cart = append(s.cart, entry)
}

// ReplaceCartKey 本地 key 对账成功后换成远端 key
func (s *Session) ReplaceCartKey(oldKey, newKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.cart {
		if e.Key == oldKey {
			s.cart[i].Key = newKey
			s.cart[i].SyncPending = false
			return true
		}
	}
	return false
}

// MarkCartSynced 清除条目的待同步标记
func (s *Session) MarkCartSynced(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.cart {
		if e.Key == key {
			s.cart[i].SyncPending = false
			return
		}
	}
}

// RemoveCartEntry 按 key 移除条目，返回是否命中
func (s *Session) RemoveCartEntry(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.cart {
		if e.Key == key {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			return true
		}
	}
	return false
}

// ClearCart 清空购物车镜像
func (s *Session) ClearCart() {
	s.mu.Lock()
	s.cart = nil
	s.mu.Unlock()
}

// HasFavorite 商品是否已在收藏镜像中
func (s *Session) HasFavorite(itemID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.favorites {
		if e.ItemID == itemID {
			return true
		}
	}
	return false
}

// AddFavorite 追加收藏条目
func (s *Session) AddFavorite(entry models.FavoriteEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.favorites {
		if e.ItemID == entry.ItemID {
			s.favorites[i] = entry
			return
		}
	}
	s.favorites = append(s.favorites, entry)
}

// MarkFavoriteSynced 清除收藏条目的待同步标记
func (s *Session) MarkFavoriteSynced(itemID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.favorites {
		if e.ItemID == itemID {
			s.favorites[i].SyncPending = false
			return
		}
	}
}

// RemoveFavorite 按商品号移除收藏，返回是否命中
func (s *Session) RemoveFavorite(itemID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.favorites {
		if e.ItemID == itemID {
			s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
			return true
		}
	}
	return false
}

// HasPending 是否存在待同步条目
func (s *Session) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.cart {
		if e.SyncPending {
			return true
		}
	}
	for _, e := range s.favorites {
		if e.SyncPending {
			return true
		}
	}
	return false
}

// PendingCartEntries 待同步购物车条目副本
func (s *Session) PendingCartEntries() []models.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := make([]models.CartEntry, 0)
	for _, e := range s.cart {
		if e.SyncPending {
			pending = append(pending, e)
		}
	}
	return pending
}

// PendingFavoriteEntries 待同步收藏条目副本
func (s *Session) PendingFavoriteEntries() []models.FavoriteEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := make([]models.FavoriteEntry, 0)
	for _, e := range s.favorites {
		if e.SyncPending {
			pending = append(pending, e)
		}
	}
	return pending
}
