package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fusion-recipe-generator/internal/core/fusion"
	"fusion-recipe-generator/internal/core/source/cache"
	"fusion-recipe-generator/internal/infrastructure/config"
	"fusion-recipe-generator/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// apiRecipe RecipeDB 的外部食譜記錄，欄位全部視為可缺漏，
// 形狀轉換只在這個 I/O 邊界做一次
type apiRecipe struct {
	ID              string          `json:"_id"`
	RecipeID        json.RawMessage `json:"Recipe_id"`
	RecipeTitle     string          `json:"Recipe_title"`
	Region          string          `json:"Region"`
	SubRegion       string          `json:"Sub_region"`
	Processes       string          `json:"Processes"`
	Ingredients     json.RawMessage `json:"Ingredients"`
	Vegan           json.RawMessage `json:"vegan"`
	LactoVegetarian json.RawMessage `json:"lacto_vegetarian"`
	OvoVegetarian   json.RawMessage `json:"ovo_vegetarian"`
}

// RecipeDBClient RecipeDB API 客戶端
type RecipeDBClient struct {
	client *resty.Client
	config *config.RecipeDBConfig
	store  cache.Store
}

// NewRecipeDBClient 創建 RecipeDB 客戶端，store 可為 nil（不快取）
func NewRecipeDBClient(cfg *config.Config, store cache.Store) *RecipeDBClient {
	client := resty.New().
		SetBaseURL(cfg.RecipeDB.BaseURL).
		SetTimeout(cfg.RecipeDB.Timeout).
		SetHeader("Content-Type", "application/json")

	if cfg.RecipeDB.APIKey != "" {
		client.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.RecipeDB.APIKey))
	}

	return &RecipeDBClient{
		client: client,
		config: &cfg.RecipeDB,
		store:  store,
	}
}

// FetchRecipes 抓取一頁外部食譜並轉成內部 Recipe。
// 非 2xx 或解析失敗時回傳錯誤，由呼叫端決定降級
func (c *RecipeDBClient) FetchRecipes(ctx context.Context, page, limit int) ([]common.Recipe, error) {
	cacheKey := fmt.Sprintf("recipedb:recipes:%d:%d", page, limit)
	if c.store != nil {
		if cached, err := c.store.Get(ctx, cacheKey); err == nil {
			var recipes []common.Recipe
			if err := common.ParseJSON(cached, &recipes); err == nil {
				return recipes, nil
			}
		}
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("page", fmt.Sprintf("%d", page)).
		SetQueryParam("limit", fmt.Sprintf("%d", limit)).
		Get("/recipe2-api/recipe/recipesinfo")
	common.LogSourceCall("recipedb", "recipesinfo", time.Since(start), err)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipes: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch recipes: %s", resp.Status())
	}

	var body struct {
		Payload struct {
			Data []apiRecipe `json:"data"`
		} `json:"payload"`
	}
	if err := common.ParseJSONBytes(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to parse recipes response: %w", err)
	}

	recipes := make([]common.Recipe, 0, len(body.Payload.Data))
	for _, item := range body.Payload.Data {
		recipes = append(recipes, mapAPIRecipe(item))
	}

	if c.store != nil {
		if data, err := common.ToJSON(recipes); err == nil {
			_ = c.store.Set(ctx, cacheKey, data)
		}
	}

	return recipes, nil
}

// FetchRecipeOfDay 抓取每日精選食譜，任何失敗都回傳 nil（不拋錯）
func (c *RecipeDBClient) FetchRecipeOfDay(ctx context.Context) *common.Recipe {
	cacheKey := "recipedb:recipeofday"
	if c.store != nil {
		if cached, err := c.store.Get(ctx, cacheKey); err == nil {
			var recipe common.Recipe
			if err := common.ParseJSON(cached, &recipe); err == nil {
				return &recipe
			}
		}
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		Get("/recipe2-api/recipe/recipeofday")
	common.LogSourceCall("recipedb", "recipeofday", time.Since(start), err)

	if err != nil || resp.IsError() {
		return nil
	}

	var body struct {
		Payload struct {
			Data *apiRecipe `json:"data"`
		} `json:"payload"`
	}
	if err := common.ParseJSONBytes(resp.Body(), &body); err != nil || body.Payload.Data == nil {
		return nil
	}

	recipe := mapAPIRecipe(*body.Payload.Data)

	if c.store != nil {
		if data, err := common.ToJSON(recipe); err == nil {
			_ = c.store.Set(ctx, cacheKey, data)
		}
	}

	return &recipe
}

// LookupNutrient 查詢單一食材的營養資訊（每 100 單位基準），
// 作為營養估算的主要遠端來源；查無或失敗回傳錯誤
func (c *RecipeDBClient) LookupNutrient(ctx context.Context, ingredient string) (*fusion.NutrientAmounts, error) {
	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("ingredient", ingredient).
		Get("/nutrition-api/nutritioninfo")
	common.LogSourceCall("recipedb", "nutritioninfo", time.Since(start), err)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch nutrition: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch nutrition: %s", resp.Status())
	}

	var body struct {
		Payload struct {
			Data *struct {
				Calories float64 `json:"calories"`
				Protein  float64 `json:"protein"`
				Carbs    float64 `json:"carbs"`
				Fat      float64 `json:"fat"`
				Fiber    float64 `json:"fiber"`
				Sodium   float64 `json:"sodium"`
			} `json:"data"`
		} `json:"payload"`
	}
	if err := common.ParseJSONBytes(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to parse nutrition response: %w", err)
	}
	if body.Payload.Data == nil {
		return nil, fmt.Errorf("no nutrition data for ingredient")
	}

	data := body.Payload.Data
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

// mapAPIRecipe 外部記錄轉內部 Recipe，每個欄位都有預設值
func mapAPIRecipe(item apiRecipe) common.Recipe {
	name := item.RecipeTitle
	if name == "" {
		name = "Untitled Recipe"
	}

	baseCuisine := item.Region
	if baseCuisine == "" {
		baseCuisine = "Global"
	}

	targetCuisine := item.SubRegion
	if targetCuisine == "" {
		targetCuisine = item.Region
	}
	if targetCuisine == "" {
		targetCuisine = "Fusion"
	}

	ingredients := parseIngredients(item.Ingredients)

	var steps []string
	if item.Processes != "" {
		for _, step := range strings.Split(item.Processes, "||") {
			if step != "" {
				steps = append(steps, step)
			}
		}
	}

	region := item.Region
	if region == "" {
		region = "unknown"
	}
	flavorLogic := fmt.Sprintf("Source: %s.", region)

	var badges []string
	if flagSet(item.Vegan) {
		badges = append(badges, "Vegan")
	}
	if flagSet(item.LactoVegetarian) {
		badges = append(badges, "Lacto-Vegetarian")
	}
	if flagSet(item.OvoVegetarian) {
		badges = append(badges, "Ovo-Vegetarian")
	}
	if len(badges) == 0 {
		badges = append(badges, "From RecipeDB")
	}

	return common.Recipe{
		Name:          name,
		BaseCuisine:   baseCuisine,
		TargetCuisine: targetCuisine,
		Ingredients:   ingredients,
		Steps:         steps,
		FlavorLogic:   flavorLogic,
		Badges:        badges,
	}
}

// parseIngredients 食材欄位可能是字串陣列或 {name} 物件陣列，統一正規化
func parseIngredients(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var asStrings []string
	if err := json.Unmarshal(raw, &asStrings); err == nil {
		return asStrings
	}

	var asObjects []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &asObjects); err == nil {
		out := make([]string, 0, len(asObjects))
		for _, obj := range asObjects {
			if obj.Name != "" {
				out = append(out, obj.Name)
			}
		}
		return out
	}

	common.LogDebug("無法解析食材欄位，略過",
		zap.Int("raw_length", len(raw)),
	)
	return nil
}

// flagSet 外部旗標可能是數字或字串，等值 1 視為開啟
func flagSet(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}

	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber == 1
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return strings.TrimSpace(asString) == "1"
	}

	return false
}
