package fusion

import (
	"math"
	"regexp"
	"strings"

	"fusion-recipe-generator/internal/pkg/common"
)

// 食材替換規則用的正則，啟動時編譯一次
var (
	meatPattern   = regexp.MustCompile(`(?i)chicken|beef|pork`)
	butterPattern = regexp.MustCompile(`(?i)butter`)
	milkPattern   = regexp.MustCompile(`(?i)milk`)
	cheesePattern = regexp.MustCompile(`(?i)cheese`)
	eggPattern    = regexp.MustCompile(`(?i)egg`)
	creamPattern  = regexp.MustCompile(`(?i)cream`)
	pastaPattern  = regexp.MustCompile(`(?i)pasta`)
	flourPattern  = regexp.MustCompile(`(?i)flour`)
	breadPattern  = regexp.MustCompile(`(?i)bread`)

	// 低卡時把油量壓到固定一匙
	oilQuantityPattern    = regexp.MustCompile(`(\d+\s*)(?:tbsp|cup|ml)\s+oil`)
	butterQuantityPattern = regexp.MustCompile(`(\d+\s*)(?:tbsp)\s+butter`)
)

// Adapt 依當前飲食偏好與健康目標調整食譜。
// 純函數：回傳新值，不改動輸入；同樣輸入重複呼叫結果一致（標籤不會重複累加）
func Adapt(recipe common.Recipe, dietary, health []string) common.Recipe {
	adapted := recipe.Clone()

	applyBadges(&adapted, dietary, health)
	adapted.Ingredients = substituteIngredients(adapted.Ingredients, dietary, health)
	adjustNutrition(&adapted, health)

	return adapted
}

// applyBadges 將偏好對應的顯示標籤聯集進來（完全相符去重）
func applyBadges(recipe *common.Recipe, dietary, health []string) {
	for _, id := range []string{
		common.DietVegetarian,
		common.DietVegan,
		common.DietGlutenFree,
		common.DietDairyFree,
		common.DietNutFree,
	} {
		if common.ContainsOption(dietary, id) {
			recipe.AddBadge(common.DietaryLabel(id))
		}
	}
	for _, id := range []string{
		common.HealthLowCalorie,
		common.HealthHighProtein,
		common.HealthDiabeticFriendly,
	} {
		if common.ContainsOption(health, id) {
			recipe.AddBadge(common.HealthLabel(id))
		}
	}
}

// substituteIngredients 依勾選的偏好逐條改寫食材字串，
// 每條規則獨立套用，同一條食材可被多條規則改寫
func substituteIngredients(ingredients []string, dietary, health []string) []string {
	vegan := common.ContainsOption(dietary, common.DietVegan)
	vegetarian := common.ContainsOption(dietary, common.DietVegetarian)
	dairyFree := common.ContainsOption(dietary, common.DietDairyFree)
	glutenFree := common.ContainsOption(dietary, common.DietGlutenFree)
	lowCalorie := common.ContainsOption(health, common.HealthLowCalorie)

	out := make([]string, len(ingredients))
	for i, ing := range ingredients {
		if vegan || vegetarian {
			ing = meatPattern.ReplaceAllString(ing, "tofu or plant-based protein")
		}
		if vegan {
			ing = butterPattern.ReplaceAllString(ing, "vegan butter")
			ing = milkPattern.ReplaceAllString(ing, "plant-based milk")
			ing = cheesePattern.ReplaceAllString(ing, "vegan cheese")
			ing = eggPattern.ReplaceAllString(ing, "flax egg (1 tbsp ground flax + 3 tbsp water)")
		}
		if dairyFree {
			ing = butterPattern.ReplaceAllString(ing, "coconut oil")
			ing = milkPattern.ReplaceAllString(ing, "almond milk")
			ing = cheesePattern.ReplaceAllString(ing, "nutritional yeast")
			ing = creamPattern.ReplaceAllString(ing, "coconut cream")
		}
		if glutenFree {
			ing = pastaPattern.ReplaceAllString(ing, "gluten-free pasta")
			ing = flourPattern.ReplaceAllString(ing, "gluten-free flour")
			ing = breadPattern.ReplaceAllString(ing, "gluten-free bread")
		}
		if lowCalorie {
			lower := strings.ToLower(ing)
			if strings.Contains(lower, "oil") {
				ing = oilQuantityPattern.ReplaceAllString(ing, "1 tbsp oil (or cooking spray)")
			}
			if strings.Contains(lower, "butter") {
				ing = butterQuantityPattern.ReplaceAllString(ing, "1 tbsp butter (or oil spray)")
			}
		}
		out[i] = ing
	}
	return out
}

// adjustNutrition 健康目標的固定倍率調整：
// 低卡 ×0.8（熱量、脂肪），高蛋白 ×1.25（蛋白質），兩者獨立可疊加。
// 沒有營養資訊或沒勾健康目標時不動作
func adjustNutrition(recipe *common.Recipe, health []string) {
	if recipe.Nutrition == nil || len(health) == 0 {
		return
	}

	nutrition := *recipe.Nutrition

	if common.ContainsOption(health, common.HealthLowCalorie) {
		if nutrition.Calories != 0 {
			nutrition.Calories = math.Round(nutrition.Calories * 0.8)
		}
		if nutrition.Fat != 0 {
			nutrition.Fat = round1(nutrition.Fat * 0.8)
		}
	}

	if common.ContainsOption(health, common.HealthHighProtein) {
		if nutrition.Protein != 0 {
			nutrition.Protein = round1(nutrition.Protein * 1.25)
		}
	}

	recipe.Nutrition = &nutrition
}
