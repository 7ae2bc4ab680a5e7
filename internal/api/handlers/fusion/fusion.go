package fusion

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	coreFusion "fusion-recipe-generator/internal/core/fusion"
	"fusion-recipe-generator/internal/core/export"
	"fusion-recipe-generator/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 配對查詢最多涵蓋的食材數與回傳的配對數
const (
	maxPairingIngredients = 3
	maxPairings           = 10
)

// PairingSource 風味配對資料源介面（永遠回傳結果，失敗時為空清單）
type PairingSource interface {
	FetchPairings(ctx context.Context, ingredient string) []string
}

// GenerateRequest 生成融合食譜請求
type GenerateRequest struct {
	BaseCuisine        string   `json:"base_cuisine"`
	TargetCuisine      string   `json:"target_cuisine"`
	DietaryPreferences []string `json:"dietary_preferences,omitempty"`
	HealthFocus        []string `json:"health_focus,omitempty"`
	RefreshNutrition   bool     `json:"refresh_nutrition,omitempty"` // 重新估算營養（取代所選食譜自帶的數值）
}

// GenerateResponse 生成融合食譜響應
type GenerateResponse struct {
	Recipe     common.Recipe `json:"recipe"`
	Pairings   []string      `json:"pairings"`
	Generation int64         `json:"generation"`
}

// AdaptRequest 偏好調整請求
type AdaptRequest struct {
	Recipe             common.Recipe `json:"recipe"`
	DietaryPreferences []string      `json:"dietary_preferences,omitempty"`
	HealthFocus        []string      `json:"health_focus,omitempty"`
	Generation         int64         `json:"generation,omitempty"`
	RecomputeNutrition bool          `json:"recompute_nutrition,omitempty"`
}

// AdaptResponse 偏好調整響應。
// stale 表示請求附帶的世代已不是最新發出的一代，呼叫端應丟棄結果
type AdaptResponse struct {
	Recipe common.Recipe `json:"recipe"`
	Stale  bool          `json:"stale"`
}

// ExportRequest 匯出請求
type ExportRequest struct {
	Recipe             common.Recipe `json:"recipe"`
	Pairings           []string      `json:"pairings,omitempty"`
	DietaryPreferences []string      `json:"dietary_preferences,omitempty"`
	HealthFocus        []string      `json:"health_focus,omitempty"`
	GeneratedAt        string        `json:"generated_at,omitempty"`
	Format             string        `json:"format,omitempty"` // json / markdown / csv / html，預設 json
}

// Handler 融合食譜處理程序
type Handler struct {
	selector  *coreFusion.SelectorService
	nutrition *coreFusion.NutritionService
	pairings  PairingSource
	tokens    *coreFusion.TokenSource
}

// NewHandler 創建融合食譜處理程序，pairings 可為 nil（略過配對查詢）
func NewHandler(selector *coreFusion.SelectorService, nutrition *coreFusion.NutritionService, pairings PairingSource, tokens *coreFusion.TokenSource) *Handler {
	return &Handler{
		selector:  selector,
		nutrition: nutrition,
		pairings:  pairings,
		tokens:    tokens,
	}
}

// HandleGenerate 生成融合食譜
func (h *Handler) HandleGenerate(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// 菜系前置條件在邊界擋下，核心服務假設輸入已合法
	if err := validateCuisines(req.BaseCuisine, req.TargetCuisine); err != nil {
		common.LogWarn("菜系參數無效",
			zap.String("base_cuisine", req.BaseCuisine),
			zap.String("target_cuisine", req.TargetCuisine),
			zap.String("request_id", requestID),
		)
		writeCustomError(c, err)
		return
	}

	common.LogInfo("開始處理融合食譜生成請求",
		zap.String("base_cuisine", req.BaseCuisine),
		zap.String("target_cuisine", req.TargetCuisine),
		zap.Strings("dietary_preferences", req.DietaryPreferences),
		zap.Strings("health_focus", req.HealthFocus),
		zap.String("request_id", requestID),
	)

	// 每次生成發出新的世代令牌，後續的調整請求以此判斷是否過期
	generation := h.tokens.Next()

	recipe := h.selector.Select(c.Request.Context(), req.BaseCuisine, req.TargetCuisine, req.DietaryPreferences, req.HealthFocus)
	recipe = coreFusion.Adapt(recipe, req.DietaryPreferences, req.HealthFocus)

	if req.RefreshNutrition {
		if info := h.nutrition.EstimateTotal(c.Request.Context(), recipe.Ingredients); info != nil {
			recipe.Nutrition = info
		}
	}

	pairings := h.collectPairings(c.Request.Context(), recipe.Ingredients)

	c.JSON(http.StatusOK, GenerateResponse{
		Recipe:     recipe,
		Pairings:   pairings,
		Generation: generation,
	})
}

// HandleAdapt 依偏好調整既有食譜
func (h *Handler) HandleAdapt(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	var req AdaptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	recipe := req.Recipe

	// 重新估算時不套乘數調整：先清空原營養，替換後的食材
	// 直接走估算路徑，兩條路徑不疊加
	if req.RecomputeNutrition {
		recipe.Nutrition = nil
	}

	adapted := coreFusion.Adapt(recipe, req.DietaryPreferences, req.HealthFocus)

	if req.RecomputeNutrition {
		if info := h.nutrition.EstimateTotal(c.Request.Context(), adapted.Ingredients); info != nil {
			adapted.Nutrition = info
		}
	}

	stale := req.Generation != 0 && !h.tokens.IsLatest(req.Generation)
	if stale {
		common.LogDebug("世代令牌已過期",
			zap.Int64("generation", req.Generation),
			zap.Int64("latest", h.tokens.Latest()),
			zap.String("request_id", requestID),
		)
	}

	c.JSON(http.StatusOK, AdaptResponse{
		Recipe: adapted,
		Stale:  stale,
	})
}

// HandleExport 匯出食譜文件
func (h *Handler) HandleExport(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	format := export.FormatJSON
	if req.Format != "" {
		format = export.Format(req.Format)
	}

	now := time.Now()
	generatedAt := req.GeneratedAt
	if generatedAt == "" {
		generatedAt = now.Format(time.RFC3339)
	}

	body, err := export.Render(export.Data{
		Recipe:             req.Recipe,
		Pairings:           req.Pairings,
		DietaryPreferences: req.DietaryPreferences,
		HealthFocus:        req.HealthFocus,
		GeneratedAt:        generatedAt,
	}, format)
	if err != nil {
		common.LogWarn("匯出格式不支持",
			zap.String("format", req.Format),
			zap.String("request_id", requestID),
		)
		writeCustomError(c, err)
		return
	}

	filename := export.Filename(req.Recipe.Name, now, format)

	common.LogInfo("匯出食譜文件",
		zap.String("format", string(format)),
		zap.String("filename", filename),
		zap.String("request_id", requestID),
	)

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, export.MIMEType(format), []byte(body))
}

// validateCuisines 兩種菜系必須都指定且不相同（不分大小寫）
func validateCuisines(base, target string) error {
	if strings.TrimSpace(base) == "" || strings.TrimSpace(target) == "" {
		return common.ErrMissingCuisine
	}
	if strings.EqualFold(strings.TrimSpace(base), strings.TrimSpace(target)) {
		return common.ErrSameCuisinePair
	}
	return nil
}

// writeCustomError 以預定義錯誤的狀態碼與代碼回應
func writeCustomError(c *gin.Context, err error) {
	if customErr, ok := err.(*common.CustomError); ok {
		c.JSON(customErr.Status, common.ErrorResponse{
			Code:    customErr.Code,
			Message: customErr.Message,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, common.ErrorResponse{
		Code:    common.ErrCodeInternalError,
		Message: "服務器內部錯誤",
	})
}

var leadingQuantity = regexp.MustCompile(`^\d+(?:\.\d+)?\s*(?:g|kg|ml|tbsp|tsp|cup|oz|lb|piece)?\s+`)

// collectPairings 依序查詢前幾項食材的風味配對並去重，
// 配對是附加資訊，查詢失敗不影響主流程
func (h *Handler) collectPairings(ctx context.Context, ingredients []string) []string {
	pairings := []string{}
	if h.pairings == nil {
		return pairings
	}

	seen := make(map[string]bool)
	limit := maxPairingIngredients
	if len(ingredients) < limit {
		limit = len(ingredients)
	}

	for _, ingredient := range ingredients[:limit] {
		name := strings.TrimSpace(leadingQuantity.ReplaceAllString(ingredient, ""))
		if name == "" {
			continue
		}
		for _, pairing := range h.pairings.FetchPairings(ctx, name) {
			if pairing == "" || seen[pairing] {
				continue
			}
			seen[pairing] = true
			pairings = append(pairings, pairing)
			if len(pairings) >= maxPairings {
				return pairings
			}
		}
	}

	return pairings
}
