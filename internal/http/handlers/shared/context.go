package shared

import (
	"strings"

	"github.com/kahve-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextUserID 从上下文读取用户 ID 并统一处理错误响应。
func GetContextUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return "", false
	}

	id, ok := value.(string)
	if !ok || strings.TrimSpace(id) == "" {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return "", false
	}
	return id, true
}
