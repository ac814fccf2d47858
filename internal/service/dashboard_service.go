package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kahve-next/internal/cache"
	"github.com/kahve-next/internal/models"
	"github.com/kahve-next/internal/repository"
)

const (
	dashboardCacheTTL       = 45 * time.Second
	dashboardDefaultBaskets = 50
	dashboardDefaultTopN    = 10
)

// DashboardService 销售统计服务
// 说明：聚合后台销售核心数据。
type DashboardService struct {
	repo repository.DashboardRepository
}

// NewDashboardService 创建统计服务
func NewDashboardService(repo repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// DashboardOverviewResponse 销售总览响应
type DashboardOverviewResponse struct {
	Revenue     string              `json:"revenue"`
	LinesTotal  int64               `json:"lines_total"`
	UnitsTotal  int64               `json:"units_total"`
	BasketCount int64               `json:"basket_count"`
	BuyerCount  int64               `json:"buyer_count"`
	TopItems    []DashboardItemRank `json:"top_items"`
	GeneratedAt string              `json:"generated_at"`
}

// DashboardItemRank 商品排行项
type DashboardItemRank struct {
	ItemID  int    `json:"item_id"`
	Name    string `json:"name"`
	Units   int64  `json:"units"`
	Revenue string `json:"revenue"`
}

// DashboardBasketLineView 篮子行视图
type DashboardBasketLineView struct {
	ItemID    int    `json:"item_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

// DashboardBasketView 篮子视图
type DashboardBasketView struct {
	BasketID string                    `json:"basket_id"`
	OwnerID  string                    `json:"owner_id"`
	Lines    []DashboardBasketLineView `json:"lines"`
	Total    string                    `json:"total"`
	SoldAt   time.Time                 `json:"sold_at"`
}

// GetOverview 获取销售总览，短 TTL 缓存
func (s *DashboardService) GetOverview(ctx context.Context, forceRefresh bool) (*DashboardOverviewResponse, error) {
	cacheKey := "dashboard:overview"
	if !forceRefresh {
		var cached DashboardOverviewResponse
		if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	row, err := s.repo.GetOverview(ctx)
	if err != nil {
		return nil, err
	}
	topRows, err := s.repo.GetTopItems(ctx, dashboardDefaultTopN)
	if err != nil {
		return nil, err
	}

	topItems := make([]DashboardItemRank, 0, len(topRows))
	for _, item := range topRows {
		topItems = append(topItems, DashboardItemRank{
			ItemID:  item.ItemID,
			Name:    item.Name,
			Units:   item.Units,
			Revenue: models.MoneyFromCents(item.RevenueCents).String(),
		})
	}

	resp := &DashboardOverviewResponse{
		Revenue:     models.MoneyFromCents(row.RevenueCents).String(),
		LinesTotal:  row.LinesTotal,
		UnitsTotal:  row.UnitsTotal,
		BasketCount: row.BasketCount,
		BuyerCount:  row.BuyerCount,
		TopItems:    topItems,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	_ = cache.SetJSON(ctx, cacheKey, resp, dashboardCacheTTL)
	return resp, nil
}

// ListBaskets 按篮子分组的销售明细
func (s *DashboardService) ListBaskets(ctx context.Context, limit int64, forceRefresh bool) ([]DashboardBasketView, error) {
	if limit <= 0 {
		limit = dashboardDefaultBaskets
	}
	cacheKey := fmt.Sprintf("dashboard:baskets:%d", limit)
	if !forceRefresh {
		var cached []DashboardBasketView
		if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	rows, err := s.repo.ListBaskets(ctx, limit)
	if err != nil {
		return nil, err
	}

	views := make([]DashboardBasketView, 0, len(rows))
	for _, row := range rows {
		lines := make([]DashboardBasketLineView, 0, len(row.Lines))
		for _, line := range row.Lines {
			unitPrice := models.MoneyFromCents(line.UnitPriceCents)
			lines = append(lines, DashboardBasketLineView{
				ItemID:    line.ItemID,
				Name:      line.Name,
				UnitPrice: unitPrice.String(),
				Quantity:  line.Quantity,
				LineTotal: unitPrice.MulInt(int64(line.Quantity)).String(),
			})
		}
		views = append(views, DashboardBasketView{
			BasketID: row.BasketID,
			OwnerID:  row.OwnerID,
			Lines:    lines,
			Total:    models.MoneyFromCents(row.TotalCents).String(),
			SoldAt:   row.SoldAt,
		})
	}

	_ = cache.SetJSON(ctx, cacheKey, views, dashboardCacheTTL)
	return views, nil
}
