package export

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fusion-recipe-generator/internal/pkg/common"
)

// Format 匯出格式
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatHTML     Format = "html" // 可直接列印的版面，欄位同 markdown
)

// Data 匯出信封：食譜加上生成時的中繼資料。
// JSON 匯出就是這個結構原樣序列化，鍵順序即欄位順序
type Data struct {
	Recipe             common.Recipe `json:"recipe"`
	Pairings           []string      `json:"pairings"`
	DietaryPreferences []string      `json:"dietaryPreferences"`
	HealthFocus        []string      `json:"healthFocus"`
	GeneratedAt        string        `json:"generatedAt"`
}

// Render 將食譜序列化為指定格式的文件內容
func Render(data Data, format Format) (string, error) {
	switch format {
	case FormatJSON:
		return common.ToJSONIndent(data)
	case FormatMarkdown:
		return renderMarkdown(data), nil
	case FormatCSV:
		return renderCSV(data), nil
	case FormatHTML:
		return renderHTML(data), nil
	}
	return "", common.ErrUnknownFormat
}

// MIMEType 格式對應的 Content-Type
func MIMEType(format Format) string {
	switch format {
	case FormatMarkdown:
		return "text/markdown"
	case FormatCSV:
		return "text/csv"
	case FormatHTML:
		return "text/html"
	default:
		return "application/json"
	}
}

// Extension 格式對應的副檔名
func Extension(format Format) string {
	switch format {
	case FormatMarkdown:
		return ".md"
	case FormatCSV:
		return ".csv"
	case FormatHTML:
		return ".html"
	default:
		return ".json"
	}
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// Filename 依食譜名稱產生下載檔名：
// 小寫化、非 [a-z0-9-_.] 字符換成底線，再接生成時間戳與副檔名
func Filename(recipeName string, generatedAt time.Time, format Format) string {
	safe := strings.ToLower(unsafeFilenameChars.ReplaceAllString(recipeName, "_"))
	return fmt.Sprintf("%s_%d%s", safe, generatedAt.UnixMilli(), Extension(format))
}

// servingsOf 份數缺漏時以 1 計
func servingsOf(recipe common.Recipe) int {
	if recipe.Servings > 0 {
		return recipe.Servings
	}
	return 1
}

// perServing 每份數值，一位小數；缺漏（0）顯示 N/A
func perServing(value float64, servings int) string {
	if value == 0 {
		return "N/A"
	}
	return strconv.FormatFloat(value/float64(servings), 'f', 1, 64)
}

// formatTimestamp 解析生成時間戳，回傳日期與時間字串；解析失敗時原樣輸出
func formatTimestamp(generatedAt string) (string, string) {
	t, err := time.Parse(time.RFC3339, generatedAt)
	if err != nil {
		return generatedAt, generatedAt
	}
	return t.Format("2006-01-02"), t.Format("15:04:05")
}

func renderMarkdown(data Data) string {
	recipe := data.Recipe
	servings := servingsOf(recipe)
	dateStr, timeStr := formatTimestamp(data.GeneratedAt)

	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", recipe.Name)
	fmt.Fprintf(&b, "**Fusion:** %s × %s\n", recipe.BaseCuisine, recipe.TargetCuisine)
	fmt.Fprintf(&b, "**Generated:** %s at %s\n\n", dateStr, timeStr)

	// 偏好
	b.WriteString("## Recipe Preferences\n\n")
	if len(data.DietaryPreferences) > 0 {
		fmt.Fprintf(&b, "**Dietary Preferences:** %s\n", strings.Join(common.DietaryLabels(data.DietaryPreferences), ", "))
	}
	if len(data.HealthFocus) > 0 {
		fmt.Fprintf(&b, "**Health Focus:** %s\n", strings.Join(common.HealthLabels(data.HealthFocus), ", "))
	}
	b.WriteString("\n")

	// 快速資訊
	b.WriteString("## Quick Info\n\n")
	fmt.Fprintf(&b, "- **Servings:** %d\n", servings)
	if recipe.PrepTime > 0 {
		fmt.Fprintf(&b, "- **Prep Time:** %d minutes\n", recipe.PrepTime)
	}
	if recipe.CookTime > 0 {
		fmt.Fprintf(&b, "- **Cook Time:** %d minutes\n", recipe.CookTime)
	}
	if recipe.Difficulty != "" {
		fmt.Fprintf(&b, "- **Difficulty Level:** %s\n", recipe.Difficulty)
	}
	b.WriteString("\n")

	// 營養表（每份量）
	if recipe.Nutrition != nil {
		nutrition := recipe.Nutrition
		b.WriteString("## Nutrition Information (Per Serving)\n\n")
		b.WriteString("| Nutrient | Amount |\n")
		b.WriteString("|----------|--------|\n")
		fmt.Fprintf(&b, "| Calories | %s |\n", perServing(nutrition.Calories, servings))
		fmt.Fprintf(&b, "| Protein | %sg |\n", perServing(nutrition.Protein, servings))
		fmt.Fprintf(&b, "| Carbohydrates | %sg |\n", perServing(nutrition.Carbs, servings))
		fmt.Fprintf(&b, "| Fat | %sg |\n", perServing(nutrition.Fat, servings))
		if nutrition.Fiber != 0 {
			fmt.Fprintf(&b, "| Fiber | %sg |\n", perServing(nutrition.Fiber, servings))
		}
		if nutrition.Sodium != 0 {
			fmt.Fprintf(&b, "| Sodium | %smg |\n", perServing(nutrition.Sodium, servings))
		}
		if nutrition.Sugars != 0 {
			fmt.Fprintf(&b, "| Sugars | %sg |\n", perServing(nutrition.Sugars, servings))
		}
		b.WriteString("\n")
	}

	// 食材
	fmt.Fprintf(&b, "## Ingredients (%d Servings)\n\n", servings)
	for _, ingredient := range recipe.Ingredients {
		fmt.Fprintf(&b, "- %s\n", ingredient)
	}
	b.WriteString("\n")

	// 步驟
	b.WriteString("## Cooking Instructions\n\n")
	for i, step := range recipe.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	b.WriteString("\n")

	// 風味邏輯
	b.WriteString("## Flavor Profile\n\n")
	fmt.Fprintf(&b, "%s\n\n", recipe.FlavorLogic)

	// 配對建議（最多 10 筆）
	if len(data.Pairings) > 0 {
		b.WriteString("## Suggested Ingredient Pairings\n\n")
		pairings := data.Pairings
		if len(pairings) > 10 {
			pairings = pairings[:10]
		}
		for i, pairing := range pairings {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "- %s", pairing)
		}
		b.WriteString("\n\n")
	}

	// 標籤
	if len(recipe.Badges) > 0 {
		b.WriteString("## Tags\n\n")
		for i, badge := range recipe.Badges {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "- %s", badge)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// csvNumber 每份數值的原始除法結果（不固定小數位）
func csvNumber(value float64, servings int) string {
	return strconv.FormatFloat(value/float64(servings), 'f', -1, 64)
}

func renderCSV(data Data) string {
	recipe := data.Recipe
	servings := servingsOf(recipe)

	var b strings.Builder

	fmt.Fprintf(&b, "\"Recipe Name\",\"%s\"\n", recipe.Name)
	fmt.Fprintf(&b, "\"Base Cuisine\",\"%s\"\n", recipe.BaseCuisine)
	fmt.Fprintf(&b, "\"Target Cuisine\",\"%s\"\n", recipe.TargetCuisine)
	fmt.Fprintf(&b, "\"Generated At\",\"%s\"\n", data.GeneratedAt)
	fmt.Fprintf(&b, "\"Servings\",\"%d\"\n", servings)
	if recipe.PrepTime > 0 {
		fmt.Fprintf(&b, "\"Prep Time (min)\",\"%d\"\n", recipe.PrepTime)
	} else {
		b.WriteString("\"Prep Time (min)\",\"N/A\"\n")
	}
	if recipe.CookTime > 0 {
		fmt.Fprintf(&b, "\"Cook Time (min)\",\"%d\"\n", recipe.CookTime)
	} else {
		b.WriteString("\"Cook Time (min)\",\"N/A\"\n")
	}
	if recipe.Difficulty != "" {
		fmt.Fprintf(&b, "\"Difficulty\",\"%s\"\n\n", recipe.Difficulty)
	} else {
		b.WriteString("\"Difficulty\",\"N/A\"\n\n")
	}

	fmt.Fprintf(&b, "\"Dietary Preferences\",\"%s\"\n", strings.Join(common.DietaryLabels(data.DietaryPreferences), ", "))
	fmt.Fprintf(&b, "\"Health Focus\",\"%s\"\n\n", strings.Join(common.HealthLabels(data.HealthFocus), ", "))

	if recipe.Nutrition != nil {
		nutrition := recipe.Nutrition
		fmt.Fprintf(&b, "\"Calories (per serving)\",\"%s\"\n", csvNumber(nutrition.Calories, servings))
		fmt.Fprintf(&b, "\"Protein (g)\",\"%s\"\n", csvNumber(nutrition.Protein, servings))
		fmt.Fprintf(&b, "\"Carbs (g)\",\"%s\"\n", csvNumber(nutrition.Carbs, servings))
		fmt.Fprintf(&b, "\"Fat (g)\",\"%s\"\n", csvNumber(nutrition.Fat, servings))
		if nutrition.Fiber != 0 {
			fmt.Fprintf(&b, "\"Fiber (g)\",\"%s\"\n", csvNumber(nutrition.Fiber, servings))
		}
		if nutrition.Sodium != 0 {
			fmt.Fprintf(&b, "\"Sodium (mg)\",\"%s\"\n", csvNumber(nutrition.Sodium, servings))
		}
		b.WriteString("\n")
	}

	b.WriteString("\"Ingredients\"\n")
	for _, ingredient := range recipe.Ingredients {
		fmt.Fprintf(&b, "\"%s\"\n", ingredient)
	}
	b.WriteString("\n")

	b.WriteString("\"Cooking Steps\"\n")
	for i, step := range recipe.Steps {
		fmt.Fprintf(&b, "\"%d. %s\"\n", i+1, step)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "\"Flavor Logic\",\"%s\"\n", recipe.FlavorLogic)

	if len(data.Pairings) > 0 {
		pairings := data.Pairings
		if len(pairings) > 5 {
			pairings = pairings[:5]
		}
		fmt.Fprintf(&b, "\"Suggested Pairings\",\"%s\"\n", strings.Join(pairings, ", "))
	}

	return b.String()
}

func renderHTML(data Data) string {
	recipe := data.Recipe
	servings := servingsOf(recipe)
	dateStr, timeStr := formatTimestamp(data.GeneratedAt)

	var b strings.Builder

	b.WriteString(`<!DOCTYPE html>
<html>
  <head>
    <title>` + html.EscapeString(recipe.Name) + `</title>
    <style>
      body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; max-width: 900px; margin: 0 auto; padding: 40px; color: #333; line-height: 1.6; }
      h1 { color: #2c3e50; border-bottom: 3px solid #3498db; padding-bottom: 10px; }
      h2 { color: #34495e; margin-top: 30px; }
      .header-info { background: #ecf0f1; padding: 15px; border-radius: 5px; margin-bottom: 20px; }
      .nutrition-table { width: 100%; border-collapse: collapse; margin: 15px 0; }
      .nutrition-table td, .nutrition-table th { padding: 10px; border: 1px solid #bdc3c7; text-align: left; }
      .nutrition-table th { background: #3498db; color: white; }
      .ingredients { background: #f9f9f9; padding: 15px; border-left: 4px solid #27ae60; }
      .steps { background: #f9f9f9; padding: 15px; border-left: 4px solid #e74c3c; }
      .step { margin-bottom: 12px; }
      .tags { display: flex; flex-wrap: wrap; gap: 8px; margin-top: 10px; }
      .tag { background: #3498db; color: white; padding: 5px 12px; border-radius: 20px; font-size: 12px; }
      @media print { body { padding: 0; } .no-print { display: none; } }
    </style>
  </head>
  <body>
`)

	fmt.Fprintf(&b, "    <h1>%s</h1>\n", html.EscapeString(recipe.Name))

	b.WriteString("    <div class=\"header-info\">\n")
	fmt.Fprintf(&b, "      <strong>Fusion:</strong> %s × %s<br>\n", html.EscapeString(recipe.BaseCuisine), html.EscapeString(recipe.TargetCuisine))
	fmt.Fprintf(&b, "      <strong>Generated:</strong> %s %s<br>\n", dateStr, timeStr)
	if len(data.DietaryPreferences) > 0 {
		fmt.Fprintf(&b, "      <strong>Dietary:</strong> %s<br>\n", html.EscapeString(strings.Join(common.DietaryLabels(data.DietaryPreferences), ", ")))
	}
	if len(data.HealthFocus) > 0 {
		fmt.Fprintf(&b, "      <strong>Health Focus:</strong> %s<br>\n", html.EscapeString(strings.Join(common.HealthLabels(data.HealthFocus), ", ")))
	}
	fmt.Fprintf(&b, "      <strong>Servings:</strong> %d\n", servings)
	b.WriteString("    </div>\n")

	if recipe.Nutrition != nil {
		nutrition := recipe.Nutrition
		b.WriteString("    <h2>Nutrition Information (Per Serving)</h2>\n")
		b.WriteString("    <table class=\"nutrition-table\">\n")
		b.WriteString("      <tr><th>Nutrient</th><th>Amount</th></tr>\n")
		fmt.Fprintf(&b, "      <tr><td>Calories</td><td>%s</td></tr>\n", perServing(nutrition.Calories, servings))
		fmt.Fprintf(&b, "      <tr><td>Protein</td><td>%sg</td></tr>\n", perServing(nutrition.Protein, servings))
		fmt.Fprintf(&b, "      <tr><td>Carbohydrates</td><td>%sg</td></tr>\n", perServing(nutrition.Carbs, servings))
		fmt.Fprintf(&b, "      <tr><td>Fat</td><td>%sg</td></tr>\n", perServing(nutrition.Fat, servings))
		if nutrition.Fiber != 0 {
			fmt.Fprintf(&b, "      <tr><td>Fiber</td><td>%sg</td></tr>\n", perServing(nutrition.Fiber, servings))
		}
		if nutrition.Sodium != 0 {
			fmt.Fprintf(&b, "      <tr><td>Sodium</td><td>%smg</td></tr>\n", perServing(nutrition.Sodium, servings))
		}
		b.WriteString("    </table>\n")
	}

	b.WriteString("    <h2>Ingredients</h2>\n    <div class=\"ingredients\">\n      <ul>\n")
	for _, ingredient := range recipe.Ingredients {
		fmt.Fprintf(&b, "        <li>%s</li>\n", html.EscapeString(ingredient))
	}
	b.WriteString("      </ul>\n    </div>\n")

	b.WriteString("    <h2>Cooking Instructions</h2>\n    <div class=\"steps\">\n")
	for i, step := range recipe.Steps {
		fmt.Fprintf(&b, "      <div class=\"step\"><strong>%d.</strong> %s</div>\n", i+1, html.EscapeString(step))
	}
	b.WriteString("    </div>\n")

	b.WriteString("    <h2>Flavor Profile</h2>\n")
	fmt.Fprintf(&b, "    <p>%s</p>\n", html.EscapeString(recipe.FlavorLogic))

	if len(recipe.Badges) > 0 {
		b.WriteString("    <div class=\"tags\">\n")
		for _, badge := range recipe.Badges {
			fmt.Fprintf(&b, "      <span class=\"tag\">%s</span>\n", html.EscapeString(badge))
		}
		b.WriteString("    </div>\n")
	}

	b.WriteString("  </body>\n</html>\n")

	return b.String()
}
