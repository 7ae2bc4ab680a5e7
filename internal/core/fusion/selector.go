package fusion

import (
	"context"
	"math/rand"
	"strings"

	"fusion-recipe-generator/internal/pkg/common"

	"go.uber.org/zap"
)

// RecipeSource 外部食譜資料源介面（非 2xx 或解析失敗時回傳錯誤）
type RecipeSource interface {
	FetchRecipes(ctx context.Context, page, limit int) ([]common.Recipe, error)
}

// SelectorService 食譜選擇服務
// 三層依序解析：遠端資料源、靜態模板、合成備援，任一層命中即停。
// 整體永不對外失敗，遠端掛掉只會靜默落到下一層
type SelectorService struct {
	source    RecipeSource
	pageLimit int
	pick      func(n int) int // 均勻隨機選取，測試時可替換
}

// NewSelectorService 創建食譜選擇服務，source 可為 nil（略過遠端層）
func NewSelectorService(source RecipeSource, pageLimit int) *SelectorService {
	if pageLimit <= 0 {
		pageLimit = 6
	}
	return &SelectorService{
		source:    source,
		pageLimit: pageLimit,
		pick:      rand.Intn,
	}
}

// Select 解析一份融合食譜，保證回傳可用結果
func (s *SelectorService) Select(ctx context.Context, baseCuisine, targetCuisine string, dietary, health []string) common.Recipe {
	// 第一層：遠端資料源
	if recipe, ok := s.selectRemote(ctx, baseCuisine, targetCuisine); ok {
		return recipe
	}

	// 第二層：靜態模板
	if recipe, ok := s.selectTemplate(baseCuisine, targetCuisine, dietary, health); ok {
		return recipe
	}

	// 第三層：合成備援
	common.LogDebug("模板未命中，合成備援食譜",
		zap.String("base_cuisine", baseCuisine),
		zap.String("target_cuisine", targetCuisine),
	)
	return synthesizeFallback(baseCuisine, targetCuisine, dietary, health)
}

// selectRemote 第一層：抓一頁遠端食譜，比對菜系後隨機取一
func (s *SelectorService) selectRemote(ctx context.Context, baseCuisine, targetCuisine string) (common.Recipe, bool) {
	if s.source == nil {
		return common.Recipe{}, false
	}

	recipes, err := s.source.FetchRecipes(ctx, 1, s.pageLimit)
	if err != nil {
		// 遠端失敗不往上拋，落到下一層
		common.LogWarn("遠端食譜資料源不可用，改用本地解析",
			zap.Error(err),
		)
		return common.Recipe{}, false
	}

	var matches []common.Recipe
	for _, recipe := range recipes {
		if cuisineMatches(recipe, baseCuisine) || cuisineMatches(recipe, targetCuisine) {
			matches = append(matches, recipe)
		}
	}

	if len(matches) == 0 {
		return common.Recipe{}, false
	}

	selected := matches[s.pick(len(matches))].Clone()
	common.LogInfo("遠端資料源命中",
		zap.String("name", selected.Name),
		zap.Int("matches", len(matches)),
	)
	return selected, true
}

// cuisineMatches 菜系名稱是否出現在食譜的基底或目標欄位（不分大小寫的包含比對）
func cuisineMatches(recipe common.Recipe, cuisine string) bool {
	if cuisine == "" {
		return false
	}
	lower := strings.ToLower(cuisine)
	return strings.Contains(strings.ToLower(recipe.BaseCuisine), lower) ||
		strings.Contains(strings.ToLower(recipe.TargetCuisine), lower)
}

// selectTemplate 第二層：菜系配對模板，命中後補上請求帶入的標籤
func (s *SelectorService) selectTemplate(baseCuisine, targetCuisine string, dietary, health []string) (common.Recipe, bool) {
	templates := templatesForPair(baseCuisine, targetCuisine)
	if len(templates) == 0 {
		return common.Recipe{}, false
	}

	recipe := templates[s.pick(len(templates))].Clone()

	if common.ContainsOption(dietary, common.DietVegetarian) {
		recipe.AddBadge("Vegetarian")
	}
	if common.ContainsOption(dietary, common.DietGlutenFree) {
		recipe.AddBadge("Gluten-Free")
	}
	if common.ContainsOption(health, common.HealthHighProtein) {
		recipe.AddBadge("High Protein")
	}

	return recipe, true
}
