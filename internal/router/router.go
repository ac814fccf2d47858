package router

import (
	"fmt"
	"strings"

	"github.com/kahve-next/internal/cache"
	"github.com/kahve-next/internal/config"
	adminhandlers "github.com/kahve-next/internal/http/handlers/admin"
	publichandlers "github.com/kahve-next/internal/http/handlers/public"
	"github.com/kahve-next/internal/logger"
	"github.com/kahve-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按用户侧/管理端分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "kh"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.rate_limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/catalog", publicHandler.GetCatalog)
			public.GET("/catalog/categories/:key", publicHandler.GetCategoryItems)
			public.GET("/catalog/items/:id", publicHandler.GetCatalogItem)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.POST("/auth/logout", publicHandler.UserLogout)
			user.GET("/me", publicHandler.UserProfile)
			user.PUT("/me/profile", publicHandler.UserUpdateProfile)
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.DELETE("/cart/items/:key", publicHandler.RemoveCartItem)
			user.POST("/cart/checkout", publicHandler.Checkout)
			user.GET("/favorites", publicHandler.GetFavorites)
			user.POST("/favorites", publicHandler.AddFavorite)
			user.DELETE("/favorites/:item_id", publicHandler.RemoveFavorite)
		}

		// 管理员接口（JWT + RBAC）
		admin := apiV1.Group("/admin")
		admin.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo), AdminRBACMiddleware(c.AuthzService))
		{
			admin.GET("/sales/overview", adminHandler.GetSalesOverview)
			admin.GET("/sales/baskets", adminHandler.ListSalesBaskets)
			admin.POST("/sales/summary", adminHandler.GenerateSalesSummary)
		}
	}

	return r
}
