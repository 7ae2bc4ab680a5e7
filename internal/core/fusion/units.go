package fusion

import (
	"regexp"
	"strconv"
)

// 食材字串中的數量+單位 token，例如 "400g penne pasta"、"2 tbsp oil"
// 單位大小寫敏感，只取第一個匹配
var quantityPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(g|kg|ml|tbsp|tsp|cup|oz|lb|piece)`)

// ScaleFactor 解析食材字串中的數量單位，換算為相對 100g/100ml 基準量的倍率。
// 沒有匹配視為一份基準量，回傳 1；純函數，無失敗路徑。
// 湯匙／茶匙／量杯採「不除以 100」的換算（2 tbsp = 30 倍基準量）
func ScaleFactor(ingredientText string) float64 {
	match := quantityPattern.FindStringSubmatch(ingredientText)
	if match == nil {
		return 1
	}

	quantity, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 1
	}

	switch match[2] {
	case "kg":
		return quantity * 1000 / 100
	case "g":
		return quantity / 100
	case "ml":
		return quantity / 100
	case "tbsp":
		return quantity * 15
	case "tsp":
		return quantity * 5
	case "cup":
		return quantity * 240 / 100
	case "oz":
		return quantity * 28.35 / 100
	case "lb":
		return quantity * 454 / 100
	case "piece":
		return quantity
	}

	return 1
}
