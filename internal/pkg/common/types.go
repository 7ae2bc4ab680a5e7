package common

// NutritionInfo 營養資訊（整份食譜的總量，除以份數是呈現層的事）
// 數值為 0 視為缺漏，呈現層以 "N/A" 處理
type NutritionInfo struct {
	Calories    float64 `json:"calories,omitempty"`
	Protein     float64 `json:"protein,omitempty"`
	Carbs       float64 `json:"carbs,omitempty"`
	Fat         float64 `json:"fat,omitempty"`
	Fiber       float64 `json:"fiber,omitempty"`
	Sodium      float64 `json:"sodium,omitempty"`
	Sugars      float64 `json:"sugars,omitempty"`
	ServingSize string  `json:"servingSize,omitempty"`
	Per         string  `json:"per,omitempty"`
}

// IngredientNutrition 單一食材的營養資訊
type IngredientNutrition struct {
	Name     string  `json:"name"`
	Quantity string  `json:"quantity,omitempty"`
	Calories float64 `json:"calories,omitempty"`
	Protein  float64 `json:"protein,omitempty"`
	Carbs    float64 `json:"carbs,omitempty"`
	Fat      float64 `json:"fat,omitempty"`
}

// 難度等級
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Recipe 融合食譜
// 注意：JSON 欄位名稱沿用對外匯出格式（camelCase），不可隨意更動
type Recipe struct {
	Name                string                `json:"name"`
	BaseCuisine         string                `json:"baseCuisine"`
	TargetCuisine       string                `json:"targetCuisine"`
	Ingredients         []string              `json:"ingredients"`
	Steps               []string              `json:"steps"`
	FlavorLogic         string                `json:"flavorLogic"`
	Badges              []string              `json:"badges"`
	Nutrition           *NutritionInfo        `json:"nutrition,omitempty"`
	IngredientNutrition []IngredientNutrition `json:"ingredientNutrition,omitempty"`
	Servings            int                   `json:"servings,omitempty"`
	PrepTime            int                   `json:"prepTime,omitempty"`
	CookTime            int                   `json:"cookTime,omitempty"`
	Difficulty          string                `json:"difficulty,omitempty"`
}

// Clone 深拷貝食譜，偏好調整不可變動原值
func (r Recipe) Clone() Recipe {
	out := r
	out.Ingredients = append([]string(nil), r.Ingredients...)
	out.Steps = append([]string(nil), r.Steps...)
	out.Badges = append([]string(nil), r.Badges...)
	if r.Nutrition != nil {
		n := *r.Nutrition
		out.Nutrition = &n
	}
	if r.IngredientNutrition != nil {
		out.IngredientNutrition = append([]IngredientNutrition(nil), r.IngredientNutrition...)
	}
	return out
}

// HasBadge 檢查標籤是否已存在（完全相符，大小寫敏感）
func (r Recipe) HasBadge(badge string) bool {
	for _, b := range r.Badges {
		if b == badge {
			return true
		}
	}
	return false
}

// AddBadge 加入標籤，已存在則不動作
func (r *Recipe) AddBadge(badge string) {
	if !r.HasBadge(badge) {
		r.Badges = append(r.Badges, badge)
	}
}

// 飲食偏好選項 ID
const (
	DietVegetarian = "vegetarian"
	DietVegan      = "vegan"
	DietGlutenFree = "gluten-free"
	DietDairyFree  = "dairy-free"
	DietNutFree    = "nut-free"
)

// 健康目標選項 ID
const (
	HealthLowCalorie       = "low-calorie"
	HealthHighProtein      = "high-protein"
	HealthDiabeticFriendly = "diabetic-friendly"
)

// 可選的菜系
var Cuisines = []string{
	"Indian",
	"Italian",
	"Mexican",
	"Chinese",
	"Japanese",
	"Thai",
	"French",
	"Korean",
}

var dietaryLabels = map[string]string{
	DietVegetarian: "Vegetarian",
	DietVegan:      "Vegan",
	DietGlutenFree: "Gluten-Free",
	DietDairyFree:  "Dairy-Free",
	DietNutFree:    "Nut-Free",
}

var healthLabels = map[string]string{
	HealthLowCalorie:       "Low Calorie",
	HealthHighProtein:      "High Protein",
	HealthDiabeticFriendly: "Diabetic Friendly",
}

// DietaryLabel 將飲食偏好 ID 轉成顯示標籤，未知 ID 原樣返回
func DietaryLabel(id string) string {
	if label, ok := dietaryLabels[id]; ok {
		return label
	}
	return id
}

// HealthLabel 將健康目標 ID 轉成顯示標籤，未知 ID 原樣返回
func HealthLabel(id string) string {
	if label, ok := healthLabels[id]; ok {
		return label
	}
	return id
}

// DietaryLabels 批次轉換飲食偏好標籤
func DietaryLabels(ids []string) []string {
	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = DietaryLabel(id)
	}
	return labels
}

// HealthLabels 批次轉換健康目標標籤
func HealthLabels(ids []string) []string {
	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = HealthLabel(id)
	}
	return labels
}

// ContainsOption 檢查選項 ID 是否被勾選
func ContainsOption(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
