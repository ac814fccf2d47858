package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// Locale 语言标识
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleTR Locale = "tr"
)

const defaultLocale = LocaleEN

var messages = map[Locale]map[string]string{
	LocaleEN: {
		"error.internal":                 "internal server error",
		"error.bad_request":              "invalid request",
		"error.unauthorized":             "unauthorized",
		"error.forbidden":                "forbidden",
		"error.not_found":                "resource not found",
		"error.auth_header_missing":      "authorization header missing",
		"error.auth_header_invalid":      "authorization header invalid",
		"error.token_invalid":            "token invalid or expired",
		"error.token_revoked":            "token has been revoked",
		"error.jwt_secret_missing":       "authentication is not configured",
		"error.user_disabled":            "account is disabled",
		"error.email_exists":             "email is already registered",
		"error.email_invalid":            "email address is invalid",
		"error.invalid_credentials":      "email or password is incorrect",
		"error.captcha_invalid":          "captcha verification failed",
		"error.item_not_found":           "item not found",
		"error.quantity_invalid":         "quantity must be positive",
		"error.cart_entry_not_found":     "cart entry not found",
		"error.cart_empty":               "cart is empty",
		"error.favorite_exists":          "item is already in favorites",
		"error.favorite_not_found":       "favorite not found",
		"error.checkout_failed":          "checkout could not be completed",
		"error.cart_fetch_failed":        "cart could not be loaded",
		"error.cart_update_failed":       "cart could not be updated",
		"error.favorite_fetch_failed":    "favorites could not be loaded",
		"error.favorite_update_failed":   "favorites could not be updated",
		"error.category_not_found":       "category not found",
		"error.user_not_found":           "user not found",
		"error.login_invalid":            "email or password is incorrect",
		"error.login_failed":             "login failed",
		"error.logout_failed":            "logout failed",
		"error.register_failed":          "registration failed",
		"error.password_weak":            "password does not meet requirements",
		"error.profile_fetch_failed":     "profile could not be loaded",
		"error.profile_update_failed":    "profile could not be updated",
		"error.captcha_unavailable":      "captcha is not available",
		"error.captcha_generate_failed":  "captcha could not be generated",
		"error.dashboard_fetch_failed":   "sales statistics could not be loaded",
		"error.summary_failed":           "summary could not be generated",
		"error.summary_disabled":         "summary generation is disabled",
		"error.summary_unavailable":      "summary service is unavailable",
		"error.rate_limit_unavailable":   "rate limiter temporarily unavailable",
		"error.rate_limited":             "too many requests, retry in %d seconds",
		"error.password_min_length":      "password must be at least %d characters",
		"error.password_require_upper":   "password must contain an uppercase letter",
		"error.password_require_lower":   "password must contain a lowercase letter",
		"error.password_require_number":  "password must contain a digit",
		"error.password_require_special": "password must contain a special character",
	},
	LocaleTR: {
		"error.internal":                 "sunucu hatası",
		"error.bad_request":              "geçersiz istek",
		"error.unauthorized":             "oturum açmanız gerekiyor",
		"error.forbidden":                "bu işlem için yetkiniz yok",
		"error.not_found":                "kayıt bulunamadı",
		"error.auth_header_missing":      "yetkilendirme başlığı eksik",
		"error.auth_header_invalid":      "yetkilendirme başlığı geçersiz",
		"error.token_invalid":            "oturum geçersiz veya süresi dolmuş",
		"error.token_revoked":            "oturum sonlandırılmış",
		"error.jwt_secret_missing":       "kimlik doğrulama yapılandırılmamış",
		"error.user_disabled":            "hesap devre dışı bırakılmış",
		"error.email_exists":             "bu e-posta zaten kayıtlı",
		"error.email_invalid":            "e-posta adresi geçersiz",
		"error.invalid_credentials":      "e-posta veya şifre hatalı",
		"error.captcha_invalid":          "doğrulama kodu hatalı",
		"error.item_not_found":           "ürün bulunamadı",
		"error.quantity_invalid":         "adet pozitif olmalı",
		"error.cart_entry_not_found":     "sepet kaydı bulunamadı",
		"error.cart_empty":               "sepet boş",
		"error.favorite_exists":          "ürün zaten favorilerde",
		"error.favorite_not_found":       "favori kaydı bulunamadı",
		"error.checkout_failed":          "ödeme tamamlanamadı",
		"error.cart_fetch_failed":        "sepet yüklenemedi",
		"error.cart_update_failed":       "sepet güncellenemedi",
		"error.favorite_fetch_failed":    "favoriler yüklenemedi",
		"error.favorite_update_failed":   "favoriler güncellenemedi",
		"error.category_not_found":       "kategori bulunamadı",
		"error.user_not_found":           "kullanıcı bulunamadı",
		"error.login_invalid":            "e-posta veya şifre hatalı",
		"error.login_failed":             "giriş başarısız",
		"error.logout_failed":            "çıkış başarısız",
		"error.register_failed":          "kayıt başarısız",
		"error.password_weak":            "şifre gereksinimleri karşılamıyor",
		"error.profile_fetch_failed":     "profil yüklenemedi",
		"error.profile_update_failed":    "profil güncellenemedi",
		"error.captcha_unavailable":      "doğrulama kodu kullanılamıyor",
		"error.captcha_generate_failed":  "doğrulama kodu üretilemedi",
		"error.dashboard_fetch_failed":   "satış istatistikleri yüklenemedi",
		"error.summary_failed":           "özet üretilemedi",
		"error.summary_disabled":         "özet üretimi kapalı",
		"error.summary_unavailable":      "özet servisi kullanılamıyor",
		"error.rate_limit_unavailable":   "hız sınırlayıcı geçici olarak kullanılamıyor",
		"error.rate_limited":             "çok fazla istek, %d saniye sonra tekrar deneyin",
		"error.password_min_length":      "şifre en az %d karakter olmalı",
		"error.password_require_upper":   "şifre en az bir büyük harf içermeli",
		"error.password_require_lower":   "şifre en az bir küçük harf içermeli",
		"error.password_require_number":  "şifre en az bir rakam içermeli",
		"error.password_require_special": "şifre en az bir özel karakter içermeli",
	},
}

// ResolveLocale 按 query 参数和 Accept-Language 依次解析请求语言
func ResolveLocale(c *gin.Context) Locale {
	if c == nil {
		return defaultLocale
	}
	if raw := c.Query("lang"); raw != "" {
		if loc, ok := normalize(raw); ok {
			return loc
		}
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if loc, ok := normalize(tag); ok {
			return loc
		}
	}
	return defaultLocale
}

func normalize(tag string) (Locale, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if idx := strings.IndexByte(tag, '-'); idx > 0 {
		tag = tag[:idx]
	}
	switch Locale(tag) {
	case LocaleEN, LocaleTR:
		return Locale(tag), true
	}
	return "", false
}

// T 查翻译文案，未命中时回退英文，再回退 key 本身
func T(locale Locale, key string) string {
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[defaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 带参数的翻译文案
func Sprintf(locale Locale, key string, args ...any) string {
	return fmt.Sprintf(T(locale, key), args...)
}
