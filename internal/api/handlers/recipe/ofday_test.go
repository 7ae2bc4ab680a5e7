package recipe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

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

type stubOfDaySource struct {
	recipe *common.Recipe
}

func (s *stubOfDaySource) FetchRecipeOfDay(_ context.Context) *common.Recipe {
	return s.recipe
}

func TestRecipeOfDay(t *testing.T) {
	router := gin.New()
	router.GET("/of-day", HandleRecipeOfDay(&stubOfDaySource{
		recipe: &common.Recipe{Name: "Bibimbap", BaseCuisine: "Korean"},
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/of-day", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Recipe common.Recipe `json:"recipe"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Bibimbap", resp.Recipe.Name)
}

func TestRecipeOfDaySourceDown(t *testing.T) {
	router := gin.New()
	router.GET("/of-day", HandleRecipeOfDay(&stubOfDaySource{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/of-day", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRecipeOfDayNilSource(t *testing.T) {
	router := gin.New()
	router.GET("/of-day", HandleRecipeOfDay(nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/of-day", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
