package service

import (
	"context"
	"sync"
	"time"

	"github.com/kahve-next/internal/logger"
	"github.com/kahve-next/internal/models"

	"github.com/google/uuid"
)

// CheckoutLineResult 结算单行结果
type CheckoutLineResult struct {
	Key       string       `json:"key"`
	ItemID    int          `json:"item_id"`
	Name      string       `json:"name"`
	Quantity  int          `json:"quantity"`
	LineTotal models.Money `json:"line_total"`
	Succeeded bool         `json:"succeeded"`
}

// CheckoutResult 结算结果
// 行与行之间相互独立，允许部分成功；失败行留在购物车里
type CheckoutResult struct {
	BasketID  string               `json:"basket_id"`
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
	Total     models.Money         `json:"total"`
	Lines     []CheckoutLineResult `json:"lines"`
}

// Checkout 结算购物车
// 为本次结算生成篮子号，每行并发写一条销售记录并删除对应
// 购物车文档。任何一行失败不回滚其余行。
func (s *SyncService) Checkout(ctx context.Context, ownerID string) (CheckoutResult, error) {
	sess := s.EnsureLoaded(ctx, ownerID)
	entries := sess.Cart()
	if len(entries) == 0 {
		return CheckoutResult{}, ErrCartEmpty
	}

	basketID := uuid.NewString()
	now := time.Now()
	results := make([]CheckoutLineResult, len(entries))

	var wg sync.WaitGroup
	for i, entry := range entries {
		wg.Add(1)
		go func(idx int, entry models.CartEntry) {
			defer wg.Done()
			line := CheckoutLineResult{
				Key:       entry.Key,
				ItemID:    entry.ItemID,
				Name:      entry.Name,
				Quantity:  entry.Quantity,
				LineTotal: entry.LineTotal(),
			}

			sale := models.SaleRowFromCartEntry(entry, basketID, now)
			if err := s.saleRepo.Insert(ctx, &sale); err != nil {
				logger.Warnw("checkout_sale_insert_failed",
					"owner_id", ownerID,
					"basket_id", basketID,
					"item_id", entry.ItemID,
					"error", err)
				results[idx] = line
				return
			}

			if !models.IsLocalKey(entry.Key) {
				if err := s.cartRepo.DeleteByID(ctx, entry.Key); err != nil {
					// 销售已入账，残留的购物车文档由下次装载兜底
					logger.Warnw("checkout_cart_delete_failed",
						"owner_id", ownerID,
						"basket_id", basketID,
						"key", entry.Key,
						"error", err)
				}
			}

			line.Succeeded = true
			results[idx] = line
		}(i, entry)
	}
	wg.Wait()

	result := CheckoutResult{
		BasketID: basketID,
		Total:    models.MoneyFromCents(0),
		Lines:    results,
	}
	for _, line := range results {
		if line.Succeeded {
			result.Succeeded++
			result.Total = result.Total.Add(line.LineTotal)
			sess.RemoveCartEntry(line.Key)
		} else {
			result.Failed++
		}
	}

	logger.Infow("checkout_completed",
		"owner_id", ownerID,
		"basket_id", basketID,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"total", result.Total.String())

	return result, nil
}
