package public

import (
	handlershared "github.com/kahve-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (string, bool) {
	return handlershared.GetContextUserID(c)
}
