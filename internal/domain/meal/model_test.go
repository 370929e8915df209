package meal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomMeal_Portion(t *testing.T) {
	oats := CustomMeal{ID: "m1", Name: "Oats", Calories: 150, Protein: 5, Carbs: 27, Fat: 3, Fiber: 4}

	tests := []struct {
		name     string
		qty      float64
		wantName string
		wantCal  float64
		wantErr  error
	}{
		{name: "single serving", qty: 1, wantName: "Oats", wantCal: 150},
		{name: "double", qty: 2, wantName: "Oats x2", wantCal: 300},
		{name: "half", qty: 0.5, wantName: "Oats x0.5", wantCal: 75},
		{name: "zero", qty: 0, wantErr: ErrInvalidQuantity},
		{name: "negative", qty: -1, wantErr: ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := oats.Portion(tt.qty)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name)
			assert.Equal(t, tt.wantCal, p.Totals.Calories)
		})
	}
}

func TestPortion_ToLog(t *testing.T) {
	oats := CustomMeal{ID: "m1", Name: "Oats", Calories: 150, Protein: 5}
	p, err := oats.Portion(3)
	require.NoError(t, err)

	l := p.ToLog("L9", "2024-01-01")
	assert.Equal(t, "L9", l.ID)
	assert.Equal(t, "2024-01-01", l.Date)
	assert.Equal(t, "Oats x3", l.Meal)
	require.NotNil(t, l.Nutrition)
	assert.Equal(t, 450.0, l.Totals().Calories)
	assert.Equal(t, 15.0, l.Totals().Protein)
	assert.NoError(t, l.Validate())
}

func TestCustomMeal_Validate(t *testing.T) {
	assert.NoError(t, CustomMeal{ID: "m1", Name: "Salad"}.Validate())
	assert.ErrorIs(t, CustomMeal{Name: "Salad"}.Validate(), ErrInvalidData)
	assert.ErrorIs(t, CustomMeal{ID: "m1"}.Validate(), ErrInvalidData)
	assert.ErrorIs(t, CustomMeal{ID: "m1", Name: "Salad", Fat: -2}.Validate(), ErrInvalidData)
}
