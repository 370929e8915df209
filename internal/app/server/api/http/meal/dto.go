package meal

import (
	"weightloss/internal/domain/logbook"
	"weightloss/internal/domain/meal"
)

type listInput struct{}

type listOutput struct {
	Body []meal.CustomMeal
}

type idInput struct {
	ID string `path:"id" doc:"Custom meal id"`
}

type mealOutput struct {
	Body meal.CustomMeal
}

type saveInput struct {
	Body meal.CustomMeal
}

type logPortionInput struct {
	ID   string `path:"id" doc:"Custom meal id"`
	Body struct {
		Qty   float64 `json:"qty" exclusiveMinimum:"0" doc:"Number of servings"`
		Date  string  `json:"date" doc:"Day to log the portion on (YYYY-MM-DD)"`
		LogID string  `json:"logId,omitempty" doc:"Id of the created log entry, generated when empty"`
	}
}

type logOutput struct {
	Body logbook.Log
}
