package service

import "errors"

// 服务层哨兵错误，处理器据此映射响应码与文案
var (
	ErrNotFound           = errors.New("resource not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("email invalid")
	ErrWeakPassword       = errors.New("password too weak")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user disabled")
	ErrCaptchaInvalid     = errors.New("captcha invalid")
	ErrItemNotFound       = errors.New("catalog item not found")
	ErrInvalidQuantity    = errors.New("quantity invalid")
	ErrCartEntryNotFound  = errors.New("cart entry not found")
	ErrCartEmpty          = errors.New("cart empty")
	ErrFavoriteExists     = errors.New("favorite already exists")
	ErrFavoriteNotFound   = errors.New("favorite not found")
	ErrSummaryDisabled    = errors.New("summary disabled")
	ErrSummaryUnavailable = errors.New("summary unavailable")
)
