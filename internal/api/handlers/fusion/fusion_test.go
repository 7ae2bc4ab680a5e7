package fusion

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	coreFusion "fusion-recipe-generator/internal/core/fusion"
	"fusion-recipe-generator/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubPairings struct {
	pairings map[string][]string
}

func (s *stubPairings) FetchPairings(_ context.Context, ingredient string) []string {
	return s.pairings[ingredient]
}

func newTestRouter(pairings PairingSource) (*gin.Engine, *coreFusion.TokenSource) {
	selector := coreFusion.NewSelectorService(nil, 6)
	nutrition := coreFusion.NewNutritionService(nil, nil, false)
	tokens := &coreFusion.TokenSource{}
	handler := NewHandler(selector, nutrition, pairings, tokens)

	router := gin.New()
	router.POST("/generate", handler.HandleGenerate)
	router.POST("/adapt", handler.HandleAdapt)
	router.POST("/export", handler.HandleExport)
	return router, tokens
}

func postJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGenerateMissingCuisine(t *testing.T) {
	router, _ := newTestRouter(nil)

	rec := postJSON(router, "/generate", GenerateRequest{BaseCuisine: "Indian"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp common.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "MISSING_CUISINE", resp.Code)
}

func TestGenerateSameCuisinePair(t *testing.T) {
	router, _ := newTestRouter(nil)

	rec := postJSON(router, "/generate", GenerateRequest{
		BaseCuisine:   "Indian",
		TargetCuisine: "indian",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp common.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "SAME_CUISINE_PAIR", resp.Code)
}

func TestGenerateTemplatePair(t *testing.T) {
	router, _ := newTestRouter(nil)

	rec := postJSON(router, "/generate", GenerateRequest{
		BaseCuisine:   "Indian",
		TargetCuisine: "Italian",
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp GenerateResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Masala Arrabbiata Pasta", resp.Recipe.Name)
	assert.Equal(t, int64(1), resp.Generation)
	assert.NotNil(t, resp.Pairings)
}

func TestGenerateAppliesPreferences(t *testing.T) {
	router, _ := newTestRouter(nil)

	rec := postJSON(router, "/generate", GenerateRequest{
		BaseCuisine:        "Indian",
		TargetCuisine:      "Italian",
		DietaryPreferences: []string{common.DietVegan},
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp GenerateResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Recipe.Badges, "Vegan")
}

func TestGenerateIncrementsGeneration(t *testing.T) {
	router, tokens := newTestRouter(nil)

	postJSON(router, "/generate", GenerateRequest{BaseCuisine: "Indian", TargetCuisine: "Italian"})
	rec := postJSON(router, "/generate", GenerateRequest{BaseCuisine: "Thai", TargetCuisine: "Mexican"})

	var resp GenerateResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Generation)
	assert.Equal(t, int64(2), tokens.Latest())
}

func TestGenerateCollectsPairings(t *testing.T) {
	pairings := &stubPairings{pairings: map[string][]string{
		"penne pasta": {"basil", "garlic"},
	}}
	router, _ := newTestRouter(pairings)

	rec := postJSON(router, "/generate", GenerateRequest{
		BaseCuisine:   "Indian",
		TargetCuisine: "Italian",
	})

	var resp GenerateResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Pairings, "basil")
	assert.Contains(t, resp.Pairings, "garlic")
}

func TestAdaptAppliesPreferences(t *testing.T) {
	router, _ := newTestRouter(nil)

	rec := postJSON(router, "/adapt", AdaptRequest{
		Recipe: common.Recipe{
			Name:        "Test",
			Ingredients: []string{"200g chicken breast"},
			Nutrition:   &common.NutritionInfo{Calories: 500},
		},
		DietaryPreferences: []string{common.DietVegan},
		HealthFocus:        []string{common.HealthLowCalorie},
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp AdaptResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Recipe.Ingredients[0], "tofu or plant-based protein")
	assert.Equal(t, 400.0, resp.Recipe.Nutrition.Calories)
	assert.False(t, resp.Stale)
}

func TestAdaptStaleGeneration(t *testing.T) {
	router, tokens := newTestRouter(nil)
	stale := tokens.Next()
	tokens.Next()

	rec := postJSON(router, "/adapt", AdaptRequest{
		Recipe:     common.Recipe{Name: "Test"},
		Generation: stale,
	})

	var resp AdaptResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Stale)
}

func TestAdaptRecomputeNutrition(t *testing.T) {
	router, _ := newTestRouter(nil)

	rec := postJSON(router, "/adapt", AdaptRequest{
		Recipe: common.Recipe{
			Name:        "Test",
			Ingredients: []string{"100g rice"},
			Nutrition:   &common.NutritionInfo{Calories: 999},
		},
		HealthFocus:        []string{common.HealthLowCalorie},
		RecomputeNutrition: true,
	})

	var resp AdaptResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// 重新估算取代原數值，不再套乘數
	assert.Equal(t, 130.0, resp.Recipe.Nutrition.Calories)
	assert.Equal(t, "recipe", resp.Recipe.Nutrition.Per)
}

func TestExportMarkdown(t *testing.T) {
	router, _ := newTestRouter(nil)

	rec := postJSON(router, "/export", ExportRequest{
		Recipe: common.Recipe{Name: "Masala Arrabbiata Pasta", BaseCuisine: "Indian", TargetCuisine: "Italian"},
		Format: "markdown",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "masala_arrabbiata_pasta_")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".md")
	assert.Contains(t, rec.Body.String(), "# Masala Arrabbiata Pasta")
}

func TestExportDefaultsToJSON(t *testing.T) {
	router, _ := newTestRouter(nil)

	rec := postJSON(router, "/export", ExportRequest{
		Recipe: common.Recipe{Name: "Test"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var decoded map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Contains(t, decoded, "recipe")
}

func TestExportUnknownFormat(t *testing.T) {
	router, _ := newTestRouter(nil)

	rec := postJSON(router, "/export", ExportRequest{
		Recipe: common.Recipe{Name: "Test"},
		Format: "xml",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp common.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "UNKNOWN_EXPORT_FORMAT", resp.Code)
}
