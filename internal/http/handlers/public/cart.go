package public

import (
	"github.com/kahve-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CartAddRequest 加入购物车请求
type CartAddRequest struct {
	ItemID int `json:"item_id" binding:"required"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	view, err := h.SyncService.Cart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}

	response.Success(c, view)
}

// AddCartItem 加入购物车（重复加入累加数量）
func (h *Handler) AddCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	entry, err := h.SyncService.AddToCart(c.Request.Context(), userID, req.ItemID)
	if err != nil {
		respondCartError(c, err)
		return
	}

	response.Success(c, gin.H{"entry": entry})
}

// RemoveCartItem 按条目键移除购物车条目
func (h *Handler) RemoveCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	key := c.Param("key")
	if err := h.SyncService.RemoveFromCart(c.Request.Context(), userID, key); err != nil {
		respondCartError(c, err)
		return
	}

	response.Success(c, gin.H{"removed": true})
}

// Checkout 结算购物车
func (h *Handler) Checkout(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	result, err := h.SyncService.Checkout(c.Request.Context(), userID)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	response.Success(c, result)
}
