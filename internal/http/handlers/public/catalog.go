package public

import (
	"strconv"

	"github.com/kahve-next/internal/catalog"
	"github.com/kahve-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCatalog 获取全部分类及商品
func (h *Handler) GetCatalog(c *gin.Context) {
	response.Success(c, gin.H{
		"categories": catalog.Categories(),
		"item_count": catalog.Size(),
	})
}

// GetCategoryItems 获取指定分类下的商品
func (h *Handler) GetCategoryItems(c *gin.Context) {
	key := c.Param("key")
	items, ok := catalog.ItemsByCategory(key)
	if !ok {
		respondError(c, response.CodeNotFound, "error.category_not_found", nil)
		return
	}
	response.Success(c, gin.H{"items": items})
}

// GetCatalogItem 获取单个商品
func (h *Handler) GetCatalogItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, ok := catalog.ItemByID(id)
	if !ok {
		respondError(c, response.CodeNotFound, "error.item_not_found", nil)
		return
	}
	response.Success(c, gin.H{"item": item})
}
