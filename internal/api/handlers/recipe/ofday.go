package recipe

import (
	"context"
	"net/http"

	"fusion-recipe-generator/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OfDaySource 每日精選食譜來源（失敗時回傳 nil）
type OfDaySource interface {
	FetchRecipeOfDay(ctx context.Context) *common.Recipe
}

// HandleRecipeOfDay 每日精選食譜。
// 來源不可用時回 204，這個端點沒有本地備援
func HandleRecipeOfDay(source OfDaySource) gin.HandlerFunc {
	return func(c *gin.Context) {
		if source == nil {
			c.Status(http.StatusNoContent)
			return
		}

		recipe := source.FetchRecipeOfDay(c.Request.Context())
		if recipe == nil {
			common.LogInfo("每日精選來源不可用",
				zap.String("client_ip", c.ClientIP()),
			)
			c.Status(http.StatusNoContent)
			return
		}

		c.JSON(http.StatusOK, gin.H{"recipe": recipe})
	}
}
