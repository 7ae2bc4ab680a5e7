package source

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fusion-recipe-generator/internal/core/fusion"
	"fusion-recipe-generator/internal/core/source/cache"
	"fusion-recipe-generator/internal/infrastructure/config"
	"fusion-recipe-generator/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// FlavorDBClient FlavorDB 風味配對資料源客戶端
type FlavorDBClient struct {
	client *resty.Client
	config *config.FlavorDBConfig
	store  cache.Store
}

// NewFlavorDBClient 創建 FlavorDB 客戶端，store 可為 nil（不快取）
func NewFlavorDBClient(cfg *config.Config, store cache.Store) *FlavorDBClient {
	client := resty.New().
		SetBaseURL(cfg.FlavorDB.BaseURL).
		SetTimeout(cfg.FlavorDB.Timeout).
		SetHeader("Content-Type", "application/json")

	return &FlavorDBClient{
		client: client,
		config: &cfg.FlavorDB,
		store:  store,
	}
}

// FetchPairings 查詢食材的風味配對建議。
// 配對是錦上添花的資訊，任何失敗都回傳空清單而非錯誤
func (c *FlavorDBClient) FetchPairings(ctx context.Context, ingredient string) []string {
	if ingredient == "" {
		return nil
	}

	cacheKey := fmt.Sprintf("flavordb:pairings:%s", ingredient)
	if c.store != nil {
		if cached, err := c.store.Get(ctx, cacheKey); err == nil {
			var pairings []string
			if err := common.ParseJSON(cached, &pairings); err == nil {
				return pairings
			}
		}
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("ingredient", ingredient).
		Get("/foodpairing/get_pairings")
	common.LogSourceCall("flavordb", "get_pairings", time.Since(start), err)

	if err != nil || resp.IsError() {
		return nil
	}

	pairings := parsePairings(resp.Body())
	if pairings == nil {
		common.LogDebug("配對回應形狀不符，回傳空清單",
			zap.String("ingredient", ingredient),
		)
		return nil
	}

	if c.store != nil {
		if data, err := common.ToJSON(pairings); err == nil {
			_ = c.store.Set(ctx, cacheKey, data)
		}
	}

	return pairings
}

// FetchEntitiesByName 依名稱模糊查詢風味實體，失敗回傳空清單
func (c *FlavorDBClient) FetchEntitiesByName(ctx context.Context, name string) []string {
	if name == "" {
		return nil
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("entity", name).
		Get("/entities_json")
	common.LogSourceCall("flavordb", "entities_json", time.Since(start), err)

	if err != nil || resp.IsError() {
		return nil
	}

	return parsePairings(resp.Body())
}

// LookupNutrient 查詢食材的粗略營養資訊，作為主要來源失敗時的備援
func (c *FlavorDBClient) LookupNutrient(ctx context.Context, ingredient string) (*fusion.NutrientAmounts, error) {
	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("entity", ingredient).
		Get("/nutrition_json")
	common.LogSourceCall("flavordb", "nutrition_json", time.Since(start), err)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch nutrition: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch nutrition: %s", resp.Status())
	}

	var body struct {
		Data *struct {
			Calories float64 `json:"calories"`
			Protein  float64 `json:"protein"`
			Carbs    float64 `json:"carbs"`
			Fat      float64 `json:"fat"`
			Fiber    float64 `json:"fiber"`
			Sodium   float64 `json:"sodium"`
		} `json:"data"`
	}
	if err := common.ParseJSONBytes(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to parse nutrition response: %w", err)
	}
	if body.Data == nil {
		return nil, fmt.Errorf("no nutrition data for ingredient")
	}

	data := body.Data
	multiplier := fusion.ScaleFactor(ingredient)
	return &fusion.NutrientAmounts{
		Calories: data.Calories * multiplier,
		Protein:  data.Protein * multiplier,
		Carbs:    data.Carbs * multiplier,
		Fat:      data.Fat * multiplier,
		Fiber:    data.Fiber * multiplier,
		Sodium:   data.Sodium * multiplier,
	}, nil
}

// parsePairings 配對回應的形狀不固定，依序嘗試三種已知形狀：
// {data: [{name}...]}、{data: [string...]}、頂層字串陣列
func parsePairings(raw []byte) []string {
	var withObjects struct {
		Data []struct {
			Name       string `json:"name"`
			Ingredient string `json:"ingredient"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &withObjects); err == nil && len(withObjects.Data) > 0 {
		out := make([]string, 0, len(withObjects.Data))
		for _, item := range withObjects.Data {
			name := item.Name
			if name == "" {
				name = item.Ingredient
			}
			if name != "" {
				out = append(out, name)
			}
		}
		if len(out) > 0 {
			return out
		}
	}

	var withStrings struct {
		Data []string `json:"data"`
	}
	if err := json.Unmarshal(raw, &withStrings); err == nil && len(withStrings.Data) > 0 {
		return withStrings.Data
	}

	var topLevel []string
	if err := json.Unmarshal(raw, &topLevel); err == nil && len(topLevel) > 0 {
		return topLevel
	}

	return nil
}
