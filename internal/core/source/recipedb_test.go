package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"fusion-recipe-generator/internal/infrastructure/config"
	"fusion-recipe-generator/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		RecipeDB: config.RecipeDBConfig{
			Enabled:   true,
			BaseURL:   baseURL,
			PageLimit: 6,
			Timeout:   5 * time.Second,
		},
		FlavorDB: config.FlavorDBConfig{
			BaseURL: baseURL,
			Timeout: 5 * time.Second,
		},
	}
}

func TestFetchRecipesMapsFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipe2-api/recipe/recipesinfo", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "6", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"payload":{"data":[{
			"Recipe_title": "Paneer Tikka",
			"Region": "Indian Subcontinent",
			"Sub_region": "Indian",
			"Processes": "Marinate||Grill||",
			"Ingredients": ["paneer", "yogurt"],
			"vegan": 0,
			"lacto_vegetarian": 1
		}]}}`))
	}))
	defer server.Close()

	client := NewRecipeDBClient(testConfig(server.URL), nil)
	recipes, err := client.FetchRecipes(context.Background(), 1, 6)

	assert.NoError(t, err)
	assert.Len(t, recipes, 1)
	recipe := recipes[0]
	assert.Equal(t, "Paneer Tikka", recipe.Name)
	assert.Equal(t, "Indian Subcontinent", recipe.BaseCuisine)
	assert.Equal(t, "Indian", recipe.TargetCuisine)
	assert.Equal(t, []string{"paneer", "yogurt"}, recipe.Ingredients)
	assert.Equal(t, []string{"Marinate", "Grill"}, recipe.Steps)
	assert.Equal(t, "Source: Indian Subcontinent.", recipe.FlavorLogic)
	assert.Equal(t, []string{"Lacto-Vegetarian"}, recipe.Badges)
}

func TestFetchRecipesDefensiveDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"payload":{"data":[{}]}}`))
	}))
	defer server.Close()

	client := NewRecipeDBClient(testConfig(server.URL), nil)
	recipes, err := client.FetchRecipes(context.Background(), 1, 6)

	assert.NoError(t, err)
	assert.Len(t, recipes, 1)
	recipe := recipes[0]
	assert.Equal(t, "Untitled Recipe", recipe.Name)
	assert.Equal(t, "Global", recipe.BaseCuisine)
	assert.Equal(t, "Fusion", recipe.TargetCuisine)
	assert.Empty(t, recipe.Ingredients)
	assert.Empty(t, recipe.Steps)
	assert.Equal(t, "Source: unknown.", recipe.FlavorLogic)
	assert.Equal(t, []string{"From RecipeDB"}, recipe.Badges)
}

func TestFetchRecipesIngredientObjects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"payload":{"data":[{
			"Recipe_title": "Tacos",
			"Ingredients": [{"name": "tortilla"}, {"name": ""}, {"name": "salsa"}]
		}]}}`))
	}))
	defer server.Close()

	client := NewRecipeDBClient(testConfig(server.URL), nil)
	recipes, err := client.FetchRecipes(context.Background(), 1, 6)

	assert.NoError(t, err)
	assert.Equal(t, []string{"tortilla", "salsa"}, recipes[0].Ingredients)
}

func TestFetchRecipesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewRecipeDBClient(testConfig(server.URL), nil)
	recipes, err := client.FetchRecipes(context.Background(), 1, 6)

	assert.Error(t, err)
	assert.Nil(t, recipes)
}

func TestFetchRecipeOfDay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipe2-api/recipe/recipeofday", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"payload":{"data":{"Recipe_title": "Bibimbap", "Region": "Korean"}}}`))
	}))
	defer server.Close()

	client := NewRecipeDBClient(testConfig(server.URL), nil)
	recipe := client.FetchRecipeOfDay(context.Background())

	assert.NotNil(t, recipe)
	assert.Equal(t, "Bibimbap", recipe.Name)
	assert.Equal(t, "Korean", recipe.BaseCuisine)
}

func TestFetchRecipeOfDayNilOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewRecipeDBClient(testConfig(server.URL), nil)

	assert.Nil(t, client.FetchRecipeOfDay(context.Background()))
}

func TestLookupNutrientScalesByQuantity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nutrition-api/nutritioninfo", r.URL.Path)
		assert.Equal(t, "200g rice", r.URL.Query().Get("ingredient"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"payload":{"data":{"calories": 130, "protein": 2.7}}}`))
	}))
	defer server.Close()

	client := NewRecipeDBClient(testConfig(server.URL), nil)
	amounts, err := client.LookupNutrient(context.Background(), "200g rice")

	assert.NoError(t, err)
	assert.Equal(t, 260.0, amounts.Calories)
	assert.InDelta(t, 5.4, amounts.Protein, 0.001)
}

func TestLookupNutrientMissingData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"payload":{}}`))
	}))
	defer server.Close()

	client := NewRecipeDBClient(testConfig(server.URL), nil)
	amounts, err := client.LookupNutrient(context.Background(), "rice")

	assert.Error(t, err)
	assert.Nil(t, amounts)
}
