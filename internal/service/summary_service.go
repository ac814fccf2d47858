package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kahve-next/internal/config"
	"github.com/kahve-next/internal/logger"
)

// SummaryService 管理端销售摘要服务
// 把最近的篮子明细拼成受限长度的提示词，调用 OpenAI 兼容接口
// 生成一段经营摘要。接口失败不影响统计数据本身。
type SummaryService struct {
	cfg        config.SummaryConfig
	dashboard  *DashboardService
	httpClient *http.Client
}

// NewSummaryService 创建摘要服务
func NewSummaryService(cfg config.SummaryConfig, dashboard *DashboardService) *SummaryService {
	timeout := cfg.TimeoutMS
	if timeout < 500 || timeout > 60000 {
		timeout = 8000
	}
	return &SummaryService{
		cfg:       cfg,
		dashboard: dashboard,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Millisecond,
		},
	}
}

// SummaryResponse 摘要响应
type SummaryResponse struct {
	Summary     string `json:"summary"`
	Model       string `json:"model"`
	BasketCount int    `json:"basket_count"`
	GeneratedAt string `json:"generated_at"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate 生成销售摘要
func (s *SummaryService) Generate(ctx context.Context) (*SummaryResponse, error) {
	if !s.cfg.Enabled || strings.TrimSpace(s.cfg.APIKey) == "" {
		return nil, ErrSummaryDisabled
	}

	maxBaskets := s.cfg.MaxBaskets
	if maxBaskets <= 0 {
		maxBaskets = 20
	}
	baskets, err := s.dashboard.ListBaskets(ctx, int64(maxBaskets), false)
	if err != nil {
		return nil, err
	}
	overview, err := s.dashboard.GetOverview(ctx, false)
	if err != nil {
		return nil, err
	}

	prompt := buildSummaryPrompt(overview, baskets)
	content, err := s.complete(ctx, prompt)
	if err != nil {
		logger.Warnw("summary_generate_failed", "error", err)
		return nil, ErrSummaryUnavailable
	}

	return &SummaryResponse{
		Summary:     content,
		Model:       s.cfg.Model,
		BasketCount: len(baskets),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *SummaryService) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "Sen bir kafe işletmesinin satış analistisin. Kısa ve somut yaz."},
			{Role: "user", Content: prompt},
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := strings.TrimRight(strings.TrimSpace(s.cfg.BaseURL), "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		if result.Error != nil {
			return "", fmt.Errorf("summary api status %d: %s", resp.StatusCode, result.Error.Message)
		}
		return "", fmt.Errorf("summary api status %d", resp.StatusCode)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("summary api returned no choices")
	}
	content := strings.TrimSpace(result.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("summary api returned empty content")
	}
	return content, nil
}

func buildSummaryPrompt(overview *DashboardOverviewResponse, baskets []DashboardBasketView) string {
	var b strings.Builder
	b.WriteString("Satış özeti çıkar.\n")
	fmt.Fprintf(&b, "Toplam ciro: %s, sepet sayısı: %d, müşteri sayısı: %d, satılan adet: %d.\n",
		overview.Revenue, overview.BasketCount, overview.BuyerCount, overview.UnitsTotal)

	if len(overview.TopItems) > 0 {
		b.WriteString("En çok satanlar:\n")
		for _, item := range overview.TopItems {
			fmt.Fprintf(&b, "- %s: %d adet, %s\n", item.Name, item.Units, item.Revenue)
		}
	}

	if len(baskets) > 0 {
		b.WriteString("Son sepetler:\n")
		for _, basket := range baskets {
			fmt.Fprintf(&b, "- %s toplam %s, %d kalem\n",
				basket.SoldAt.Format("2006-01-02 15:04"), basket.Total, len(basket.Lines))
		}
	}

	b.WriteString("3-4 cümlelik bir değerlendirme ve bir öneri yaz.")
	return b.String()
}
