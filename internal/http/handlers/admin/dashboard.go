package admin

import (
	"strconv"
	"strings"

	"github.com/kahve-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetSalesOverview 获取销售总览
func (h *Handler) GetSalesOverview(c *gin.Context) {
	forceRefresh := parseBoolQuery(c, "refresh")

	data, err := h.DashboardService.GetOverview(c.Request.Context(), forceRefresh)
	if err != nil {
		respondError(c, response.CodeInternal, "error.dashboard_fetch_failed", err)
		return
	}

	response.Success(c, data)
}

// ListSalesBaskets 获取按篮子分组的销售明细
func (h *Handler) ListSalesBaskets(c *gin.Context) {
	limit := int64(0)
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		limit = parsed
	}
	forceRefresh := parseBoolQuery(c, "refresh")

	baskets, err := h.DashboardService.ListBaskets(c.Request.Context(), limit, forceRefresh)
	if err != nil {
		respondError(c, response.CodeInternal, "error.dashboard_fetch_failed", err)
		return
	}

	response.Success(c, gin.H{"baskets": baskets})
}

func parseBoolQuery(c *gin.Context, name string) bool {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return value
}
