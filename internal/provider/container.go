package provider

import (
	"context"
	"time"

	"github.com/kahve-next/internal/authz"
	"github.com/kahve-next/internal/cache"
	"github.com/kahve-next/internal/config"
	"github.com/kahve-next/internal/logger"
	"github.com/kahve-next/internal/queue"
	"github.com/kahve-next/internal/repository"
	"github.com/kahve-next/internal/service"
	"github.com/kahve-next/internal/session"

	"go.mongodb.org/mongo-driver/mongo"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	MongoClient *mongo.Client
	MongoDB     *mongo.Database

	Sessions *session.Manager

	// Repositories
	UserRepo      repository.UserRepository
	CartRepo      repository.CartRepository
	FavoriteRepo  repository.FavoriteRepository
	SaleRepo      repository.SaleRepository
	DashboardRepo repository.DashboardRepository

	// Services
	AuthzService     *authz.Service
	UserAuthService  *service.UserAuthService
	SyncService      *service.SyncService
	CaptchaService   *service.CaptchaService
	DashboardService *service.DashboardService
	SummaryService   *service.SummaryService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Sessions:    session.NewManager(),
	}

	// 1. 连接远端文档库
	c.initMongo()

	// 2. 初始化 Repositories
	c.initRepositories()

	// 3. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initMongo() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, db, err := repository.Connect(ctx, c.Config.Mongo)
	if err != nil {
		logger.Errorw("provider_init_mongo_failed", "error", err)
		panic(err)
	}
	c.MongoClient = client
	c.MongoDB = db
}

func (c *Container) initRepositories() {
	db := c.MongoDB
	c.UserRepo = repository.NewUserRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.FavoriteRepo = repository.NewFavoriteRepository(db)
	c.SaleRepo = repository.NewSaleRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	for name, ensure := range map[string]func(context.Context) error{
		"users":     c.UserRepo.EnsureIndexes,
		"carts":     c.CartRepo.EnsureIndexes,
		"favorites": c.FavoriteRepo.EnsureIndexes,
		"sales":     c.SaleRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			logger.Warnw("provider_ensure_indexes_failed", "collection", name, "error", err)
		}
	}
}

func (c *Container) initServices() {
	authzDB, err := authz.InitDB(c.Config.Authz.Driver, c.Config.Authz.DSN)
	if err != nil {
		logger.Errorw("provider_init_authz_db_failed", "error", err)
		panic(err)
	}
	authzService, err := authz.NewService(authzDB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.Sessions)
	c.SyncService = service.NewSyncService(c.CartRepo, c.FavoriteRepo, c.SaleRepo, c.Sessions, c.QueueClient)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
	c.SummaryService = service.NewSummaryService(c.Config.Summary, c.DashboardService)
}

// Close 释放容器持有的外部连接
func (c *Container) Close() {
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
	if c.MongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.MongoClient.Disconnect(ctx); err != nil {
			logger.Warnw("provider_close_mongo_failed", "error", err)
		}
	}
}
