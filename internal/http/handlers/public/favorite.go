package public

import (
	"strconv"

	"github.com/kahve-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// FavoriteAddRequest 加入收藏请求
type FavoriteAddRequest struct {
	ItemID int `json:"item_id" binding:"required"`
}

// GetFavorites 获取收藏列表
func (h *Handler) GetFavorites(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	entries, err := h.SyncService.Favorites(c.Request.Context(), userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.favorite_fetch_failed", err)
		return
	}

	response.Success(c, gin.H{"favorites": entries})
}

// AddFavorite 加入收藏
func (h *Handler) AddFavorite(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req FavoriteAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	entry, err := h.SyncService.AddFavorite(c.Request.Context(), userID, req.ItemID)
	if err != nil {
		respondFavoriteError(c, err)
		return
	}

	response.Success(c, gin.H{"favorite": entry})
}

// RemoveFavorite 按商品移除收藏
func (h *Handler) RemoveFavorite(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.SyncService.RemoveFavorite(c.Request.Context(), userID, itemID); err != nil {
		respondFavoriteError(c, err)
		return
	}

	response.Success(c, gin.H{"removed": true})
}
