package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/kahve-next/internal/authz"
	"github.com/kahve-next/internal/config"
	"github.com/kahve-next/internal/constants"
	"github.com/kahve-next/internal/logger"
	"github.com/kahve-next/internal/models"
	"github.com/kahve-next/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 初始化管理员账号并授予内置管理角色。
// 账号信息通过 KH_ADMIN_EMAIL / KH_ADMIN_PASSWORD 环境变量提供。
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	adminEmail := strings.ToLower(strings.TrimSpace(os.Getenv("KH_ADMIN_EMAIL")))
	adminPassword := os.Getenv("KH_ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		stdLog.Fatalf("缺少 KH_ADMIN_EMAIL / KH_ADMIN_PASSWORD 环境变量")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := repository.Connect(ctx, cfg.Mongo)
	if err != nil {
		stdLog.Fatalf("文档库连接失败: %v", err)
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	userRepo := repository.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		stdLog.Printf("警告: 用户索引创建失败: %v", err)
	}

	user, err := userRepo.GetByEmail(ctx, adminEmail)
	if err != nil {
		stdLog.Fatalf("查询管理员账号失败: %v", err)
	}
	if user == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Fatalf("密码散列失败: %v", err)
		}
		user = &models.UserProfile{
			Email:        adminEmail,
			PasswordHash: string(hash),
			DisplayName:  "admin",
			Status:       constants.UserStatusActive,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			stdLog.Fatalf("创建管理员账号失败: %v", err)
		}
		stdLog.Printf("已创建管理员账号: %s", adminEmail)
	} else {
		stdLog.Printf("管理员账号已存在: %s", adminEmail)
	}

	authzDB, err := authz.InitDB(cfg.Authz.Driver, cfg.Authz.DSN)
	if err != nil {
		stdLog.Fatalf("策略库初始化失败: %v", err)
	}
	authzService, err := authz.NewService(authzDB)
	if err != nil {
		stdLog.Fatalf("授权服务初始化失败: %v", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		stdLog.Fatalf("内置角色初始化失败: %v", err)
	}
	if err := authzService.SetUserRoles(user.OwnerID(), []string{constants.RoleAdmin}); err != nil {
		stdLog.Fatalf("授予管理角色失败: %v", err)
	}
	stdLog.Printf("已授予管理角色: %s -> %s", adminEmail, constants.RoleAdmin)
}
