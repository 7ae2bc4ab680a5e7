package fusion

import (
	"math"
	"strings"

	"fusion-recipe-generator/internal/pkg/common"
)

// NutrientAmounts 單一食材的營養量（以 100g/100ml 為基準換算後的實際量）
type NutrientAmounts struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Fiber    float64
	Sodium   float64
}

// nutrientProfile 營養基準表的一列：key 為小寫子字串，值為每 100 單位的營養量
type nutrientProfile struct {
	key     string
	amounts NutrientAmounts
}

// 常見食材的每 100g/100ml 營養基準表。
// 依序比對子字串，第一個命中者生效，順序不可隨意調換
var nutrientProfiles = []nutrientProfile{
	{"pasta", NutrientAmounts{131, 5, 25, 1.1, 1.8, 3}},
	{"rice", NutrientAmounts{130, 2.7, 28, 0.3, 0.4, 2}},
	{"chicken", NutrientAmounts{165, 31, 0, 3.6, 0, 74}},
	{"beef", NutrientAmounts{250, 26, 0, 16, 0, 75}},
	{"tofu", NutrientAmounts{76, 8, 1.9, 4.8, 1, 11}},
	{"salmon", NutrientAmounts{208, 20, 0, 13, 0, 75}},
	{"broccoli", NutrientAmounts{34, 2.8, 7, 0.4, 2.4, 64}},
	{"tomato", NutrientAmounts{18, 0.9, 3.9, 0.2, 1.2, 5}},
	{"olive oil", NutrientAmounts{119, 0, 0, 13.5, 0, 0}},
	{"garlic", NutrientAmounts{149, 6.4, 33, 0.5, 2.1, 17}},
	{"onion", NutrientAmounts{40, 1.1, 9, 0.1, 1.7, 4}},
	{"egg", NutrientAmounts{155, 13, 1.1, 11, 0, 140}},
	{"milk", NutrientAmounts{61, 3.2, 4.8, 3.3, 0, 44}},
	{"cheese", NutrientAmounts{402, 25, 1.3, 33, 0, 714}},
	{"butter", NutrientAmounts{717, 0.9, 0, 81, 0, 15}},
	{"beans", NutrientAmounts{127, 8.7, 23, 0.4, 6.4, 2}},
	{"lentils", NutrientAmounts{116, 9.2, 20, 0.4, 8, 2}},
	{"quinoa", NutrientAmounts{120, 4.4, 21, 1.9, 2.8, 7}},
	{"avocado", NutrientAmounts{160, 2, 9, 15, 7, 7}},
	{"banana", NutrientAmounts{89, 1.1, 23, 0.3, 2.6, 1}},
	{"carrot", NutrientAmounts{41, 0.9, 10, 0.2, 2.8, 69}},
	{"potato", NutrientAmounts{77, 2, 17, 0.1, 2.1, 6}},
}

// 查無食材時的預設營養量（每基準量）
var defaultProfile = NutrientAmounts{Calories: 50, Protein: 2, Carbs: 8, Fat: 1, Fiber: 1, Sodium: 20}

// round1 四捨五入到一位小數
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Estimate 估算單一食材的營養量：小寫比對基準表（第一個子字串命中者生效），
// 查無則用預設值，最後乘上數量單位換算出的倍率。永不失敗。
func Estimate(ingredientText string) NutrientAmounts {
	lower := strings.ToLower(ingredientText)

	base := defaultProfile
	for _, profile := range nutrientProfiles {
		if strings.Contains(lower, profile.key) {
			base = profile.amounts
			break
		}
	}

	multiplier := ScaleFactor(ingredientText)

	return NutrientAmounts{
		Calories: math.Round(base.Calories * multiplier),
		Protein:  round1(base.Protein * multiplier),
		Carbs:    round1(base.Carbs * multiplier),
		Fat:      round1(base.Fat * multiplier),
		Fiber:    round1(base.Fiber * multiplier),
		Sodium:   math.Round(base.Sodium * multiplier),
	}
}

// EstimateTotal 逐項估算並加總整批食材的營養量，標記為整份食譜總量（per: "recipe"）。
// 空列表回傳全零總量
func EstimateTotal(ingredients []string) *common.NutritionInfo {
	var calories, protein, carbs, fat, fiber, sodium float64

	for _, ingredient := range ingredients {
		amounts := Estimate(ingredient)
		calories += amounts.Calories
		protein += amounts.Protein
		carbs += amounts.Carbs
		fat += amounts.Fat
		fiber += amounts.Fiber
		sodium += amounts.Sodium
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
