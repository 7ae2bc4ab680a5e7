package fusion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateKnownIngredient(t *testing.T) {
	amounts := Estimate("100g rice")

	assert.Equal(t, 130.0, amounts.Calories)
	assert.Equal(t, 2.7, amounts.Protein)
	assert.Equal(t, 28.0, amounts.Carbs)
	assert.Equal(t, 0.3, amounts.Fat)
	assert.Equal(t, 0.4, amounts.Fiber)
	assert.Equal(t, 2.0, amounts.Sodium)
}

func TestEstimateScalesWithQuantity(t *testing.T) {
	amounts := Estimate("200g chicken breast")

	assert.Equal(t, 330.0, amounts.Calories)
	assert.Equal(t, 62.0, amounts.Protein)
	assert.Equal(t, 7.2, amounts.Fat)
	assert.Equal(t, 148.0, amounts.Sodium)
}

func TestEstimateUnknownIngredientUsesDefault(t *testing.T) {
	amounts := Estimate("mystery spice blend")

	assert.Equal(t, 50.0, amounts.Calories)
	assert.Equal(t, 2.0, amounts.Protein)
	assert.Equal(t, 8.0, amounts.Carbs)
	assert.Equal(t, 1.0, amounts.Fat)
	assert.Equal(t, 1.0, amounts.Fiber)
	assert.Equal(t, 20.0, amounts.Sodium)
}

func TestEstimateUnknownIngredientScalesDefault(t *testing.T) {
	amounts := Estimate("200g mystery spice blend")

	assert.Equal(t, 100.0, amounts.Calories)
	assert.Equal(t, 4.0, amounts.Protein)
}

func TestEstimateFirstProfileMatchWins(t *testing.T) {
	// "pasta" 排在 "tomato" 之前，同時出現時取前者
	amounts := Estimate("100g pasta with tomato")

	assert.Equal(t, 131.0, amounts.Calories)
}

func TestEstimateTotalEmptyList(t *testing.T) {
	info := EstimateTotal(nil)

	assert.NotNil(t, info)
	assert.Equal(t, 0.0, info.Calories)
	assert.Equal(t, 0.0, info.Protein)
	assert.Equal(t, "recipe", info.Per)
}

func TestEstimateTotalSumsIngredients(t *testing.T) {
	info := EstimateTotal([]string{"100g rice", "100g rice"})

	assert.Equal(t, 260.0, info.Calories)
	assert.Equal(t, 5.4, info.Protein)
	assert.Equal(t, "recipe", info.Per)
}

type stubLookup struct {
	amounts *NutrientAmounts
	err     error
	calls   []string
}

func (s *stubLookup) LookupNutrient(_ context.Context, ingredient string) (*NutrientAmounts, error) {
	s.calls = append(s.calls, ingredient)
	return s.amounts, s.err
}

func TestNutritionServiceLocalWhenRemoteDisabled(t *testing.T) {
	primary := &stubLookup{amounts: &NutrientAmounts{Calories: 999}}
	svc := NewNutritionService(primary, nil, false)

	info := svc.EstimateTotal(context.Background(), []string{"100g rice"})

	assert.Empty(t, primary.calls)
	assert.Equal(t, 130.0, info.Calories)
}

func TestNutritionServiceRemotePrimary(t *testing.T) {
	primary := &stubLookup{amounts: &NutrientAmounts{Calories: 200, Protein: 10}}
	svc := NewNutritionService(primary, nil, true)

	info := svc.EstimateTotal(context.Background(), []string{"100g rice", "100g tofu"})

	assert.Len(t, primary.calls, 2)
	assert.Equal(t, 400.0, info.Calories)
	assert.Equal(t, 20.0, info.Protein)
	assert.Equal(t, "recipe", info.Per)
}

func TestNutritionServiceFallbackThenLocal(t *testing.T) {
	primary := &stubLookup{err: errors.New("timeout")}
	fallback := &stubLookup{err: errors.New("timeout")}
	svc := NewNutritionService(primary, fallback, true)

	info := svc.EstimateTotal(context.Background(), []string{"100g rice"})

	assert.Len(t, primary.calls, 1)
	assert.Len(t, fallback.calls, 1)
	// 兩個遠端來源都失敗時退回本地估算
	assert.Equal(t, 130.0, info.Calories)
}
