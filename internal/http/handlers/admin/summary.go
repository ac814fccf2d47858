package admin

import (
	"errors"

	"github.com/kahve-next/internal/http/response"
	"github.com/kahve-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GenerateSalesSummary 生成销售 AI 摘要
func (h *Handler) GenerateSalesSummary(c *gin.Context) {
	summary, err := h.SummaryService.Generate(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSummaryDisabled):
			respondError(c, response.CodeUnavailable, "error.summary_disabled", nil)
		case errors.Is(err, service.ErrSummaryUnavailable):
			respondError(c, response.CodeUnavailable, "error.summary_unavailable", nil)
		default:
			respondError(c, response.CodeInternal, "error.summary_failed", err)
		}
		return
	}

	response.Success(c, summary)
}
