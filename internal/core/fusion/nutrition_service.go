package fusion

import (
	"context"
	"math"

	"fusion-recipe-generator/internal/pkg/common"

	"go.uber.org/zap"
)

// NutrientLookup 遠端營養查詢介面，查無或失敗回傳錯誤
type NutrientLookup interface {
	LookupNutrient(ctx context.Context, ingredient string) (*NutrientAmounts, error)
}

// NutritionService 營養估算服務
// 預設走本地基準表；設定開啟遠端查詢時，逐食材依序嘗試主要與備援來源，
// 兩者都失敗才退回本地估算。查詢嚴格逐一進行，不做並發
type NutritionService struct {
	primary  NutrientLookup
	fallback NutrientLookup
	remote   bool
}

// NewNutritionService 創建營養估算服務
func NewNutritionService(primary, fallback NutrientLookup, remoteEnabled bool) *NutritionService {
	return &NutritionService{
		primary:  primary,
		fallback: fallback,
		remote:   remoteEnabled,
	}
}

// EstimateTotal 估算整批食材的營養總量
// 回傳 nil 僅發生在每一項食材都無法取得任何估算值時
func (s *NutritionService) EstimateTotal(ctx context.Context, ingredients []string) *common.NutritionInfo {
	if !s.remote || (s.primary == nil && s.fallback == nil) {
		return EstimateTotal(ingredients)
	}

	var calories, protein, carbs, fat, fiber, sodium float64
	resolved := 0

	for _, ingredient := range ingredients {
		amounts, ok := s.lookupOne(ctx, ingredient)
		if !ok {
			continue
		}
		resolved++
		calories += amounts.Calories
		protein += amounts.Protein
		carbs += amounts.Carbs
		fat += amounts.Fat
		fiber += amounts.Fiber
		sodium += amounts.Sodium
	}

	if len(ingredients) > 0 && resolved == 0 {
		return nil
	}

	return &common.NutritionInfo{
		Calories: math.Round(calories),
		Protein:  round1(protein),
		Carbs:    round1(carbs),
		Fat:      round1(fat),
		Fiber:    round1(fiber),
		Sodium:   math.Round(sodium),
		Per:      "recipe",
	}
}

// lookupOne 單一食材查詢：主要來源、備援來源、本地估算，依序嘗試
func (s *NutritionService) lookupOne(ctx context.Context, ingredient string) (NutrientAmounts, bool) {
	if s.primary != nil {
		if amounts, err := s.primary.LookupNutrient(ctx, ingredient); err == nil && amounts != nil {
			return *amounts, true
		}
	}
	if s.fallback != nil {
		if amounts, err := s.fallback.LookupNutrient(ctx, ingredient); err == nil && amounts != nil {
			return *amounts, true
		}
	}

	common.LogDebug("遠端營養查詢未命中，改用本地估算",
		zap.String("食材", ingredient),
	)
	return Estimate(ingredient), true
}
