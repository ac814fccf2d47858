package public

import (
	"errors"

	"github.com/kahve-next/internal/http/response"
	"github.com/kahve-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var cartMutationErrorRules = []mappedHandlerError{
	{target: service.ErrItemNotFound, code: response.CodeNotFound, key: "error.item_not_found"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.quantity_invalid"},
	{target: service.ErrCartEntryNotFound, code: response.CodeNotFound, key: "error.cart_entry_not_found"},
}

var favoriteMutationErrorRules = []mappedHandlerError{
	{target: service.ErrItemNotFound, code: response.CodeNotFound, key: "error.item_not_found"},
	{target: service.ErrFavoriteExists, code: response.CodeConflict, key: "error.favorite_exists"},
	{target: service.ErrFavoriteNotFound, code: response.CodeNotFound, key: "error.favorite_not_found"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartMutationErrorRules, response.CodeInternal, "error.cart_update_failed")
}

func respondFavoriteError(c *gin.Context, err error) {
	respondWithMappedError(c, err, favoriteMutationErrorRules, response.CodeInternal, "error.favorite_update_failed")
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.checkout_failed")
}
