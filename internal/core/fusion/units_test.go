package fusion

import (
	"os"
	"testing"

	"fusion-recipe-generator/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func TestScaleFactorNoQuantity(t *testing.T) {
	assert.Equal(t, 1.0, ScaleFactor("Fresh basil"))
	assert.Equal(t, 1.0, ScaleFactor(""))
	assert.Equal(t, 1.0, ScaleFactor("a pinch of salt"))
}

func TestScaleFactorGrams(t *testing.T) {
	assert.Equal(t, 4.0, ScaleFactor("400g penne pasta"))
	assert.Equal(t, 2.0, ScaleFactor("200 g chicken breast"))
	assert.Equal(t, 0.5, ScaleFactor("50g butter"))
}

func TestScaleFactorKilograms(t *testing.T) {
	assert.Equal(t, 10.0, ScaleFactor("1kg rice"))
	assert.Equal(t, 5.0, ScaleFactor("0.5kg beef"))
}

func TestScaleFactorMilliliters(t *testing.T) {
	assert.Equal(t, 2.0, ScaleFactor("200ml coconut milk"))
}

func TestScaleFactorSpoonsAndCups(t *testing.T) {
	// 湯匙／茶匙／量杯不除以 100
	assert.Equal(t, 30.0, ScaleFactor("2 tbsp olive oil"))
	assert.Equal(t, 5.0, ScaleFactor("1 tsp soy sauce"))
	assert.Equal(t, 4.8, ScaleFactor("2 cup tomato puree"))
}

func TestScaleFactorImperialWeights(t *testing.T) {
	assert.InDelta(t, 0.567, ScaleFactor("2 oz cheese"), 0.001)
	assert.InDelta(t, 4.54, ScaleFactor("1 lb pork"), 0.001)
}

func TestScaleFactorPieces(t *testing.T) {
	assert.Equal(t, 3.0, ScaleFactor("3 piece tortillas"))
}

func TestScaleFactorFirstMatchWins(t *testing.T) {
	// 只取第一個數量 token
	assert.Equal(t, 2.0, ScaleFactor("200g beef with 2 tbsp sauce"))
}
